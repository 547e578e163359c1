package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"setrunner/internal/domain"
	"setrunner/internal/execution"
)

var _ execution.Reporter = &Formatter{}

// Formatter prints run progress and the final summary to the console
type Formatter struct {
	out io.Writer
	err io.Writer

	progress *ProgressBar
	table    bool

	mu sync.Mutex
}

// FormatterOption configures a Formatter
type FormatterOption func(*Formatter)

// WithWriters redirects standard and error output
func WithWriters(out, err io.Writer) FormatterOption {
	return func(f *Formatter) {
		f.out = out
		f.err = err
	}
}

// WithProgress attaches a progress bar updated after every case
func WithProgress(p *ProgressBar) FormatterOption {
	return func(f *Formatter) {
		f.progress = p
	}
}

// WithTable appends a results table to the summary
func WithTable(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.table = enabled
	}
}

// NewFormatter creates a new Formatter writing to stdout and stderr
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		out: os.Stdout,
		err: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetStarted prints the header of a test set as it starts
func (f *Formatter) SetStarted(set string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	color.New(color.FgBlue).Fprintf(f.out, "Test set %s starts.\n", set)
}

// CaseStarted prints a line as a test case starts
func (f *Formatter) CaseStarted(_, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	color.New(color.FgYellow).Fprintf(f.out, "Test case %s starts.\n", name)
}

// CaseFinished prints failures to the error stream for diagnosis
func (f *Formatter) CaseFinished(set string, result domain.TestCaseResult) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !result.Success {
		color.New(color.FgRed).Fprintf(f.err, "%s/%s: %v\n", set, result.Name, result.Err)
		if result.Stack != "" {
			fmt.Fprintln(f.err, result.Stack)
		}
	}
	if f.progress != nil {
		f.progress.Record(result.Success)
	}
}

// EntryFailed prints a configuration or set-level hook error
func (f *Formatter) EntryFailed(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	color.New(color.FgRed, color.Bold).Fprintf(f.err, "%s %v\n", entryLabel(err), err)
}

// Summarize prints one header per set and one marked line per case,
// followed by entry errors and totals
func (f *Formatter) Summarize(summary *domain.Summary) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.progress != nil {
		f.progress.Finish()
	}

	for _, set := range summary.Sets {
		color.New(color.FgMagenta).Fprintf(f.out, "\nTest set %s result:\n", set.Name)
		for _, c := range set.Cases {
			if c.Success {
				color.New(color.FgGreen).Fprintf(f.out, "✓ %s success!\n", c.Name)
			} else {
				color.New(color.FgRed).Fprintf(f.out, "✗ %s failed!\n", c.Name)
			}
		}
	}

	if len(summary.Errors) > 0 {
		fmt.Fprintln(f.out)
		for _, err := range summary.Errors {
			color.New(color.FgRed, color.Bold).Fprintf(f.out, "%s %v\n", entryLabel(err), err)
		}
	}

	fmt.Fprintln(f.out)
	stats := summary.Stats
	if summary.Passed() {
		color.New(color.FgGreen).Fprintf(f.out, "✓ All %d test case(s) in %d test set(s) passed (%s)\n",
			stats.Total, stats.Sets, formatDuration(summary.Duration))
	} else {
		color.New(color.FgRed).Fprintf(f.out, "✗ %d of %d test case(s) failed, %d run error(s) (%s)\n",
			stats.Failed, stats.Total, len(summary.Errors), formatDuration(summary.Duration))
	}

	if f.table {
		RenderTable(f.out, summary)
	}
}

// entryLabel distinguishes filter typos from broken environments
func entryLabel(err error) string {
	var hookErr *execution.HookError
	switch {
	case execution.IsConfigError(err):
		return "[CONFIG]"
	case errors.As(err, &hookErr):
		return "[HOOK]"
	default:
		return "[ERROR]"
	}
}
