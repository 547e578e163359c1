package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows how many cases have passed and failed so far.
// The total is unknown while sets are still being registered.
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	passed  int
	failed  int
	stopped bool
}

// NewProgressBar creates a new indeterminate progress bar on stderr
func NewProgressBar() *ProgressBar {
	return NewProgressBarTo(os.Stderr)
}

// NewProgressBarTo creates a new indeterminate progress bar on w
func NewProgressBarTo(w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(passed, failed int) string {
	return color.CyanString("Running cases: ") +
		color.GreenString("[success: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// Record counts one finished case
func (p *ProgressBar) Record(success bool) {
	if p.stopped {
		return
	}
	if success {
		p.passed++
	} else {
		p.failed++
	}
	p.bar.Describe(describe(p.passed, p.failed))
	_ = p.bar.Add(1)
}

// Counts returns the passed and failed cases recorded so far
func (p *ProgressBar) Counts() (int, int) {
	return p.passed, p.failed
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.stopped {
		return
	}
	p.stopped = true
	_ = p.bar.Finish()
}
