package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"setrunner/internal/config"
	"setrunner/internal/domain"
	"setrunner/internal/execution"
	"setrunner/internal/metrics"
	"setrunner/internal/ui"
)

// RunCommand handles running the registered test sets
type RunCommand struct {
	config   *config.Config
	register RegisterFunc
	opts     Options
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, register RegisterFunc, opts Options) *RunCommand {
	return &RunCommand{
		config:   cfg,
		register: register,
		opts:     opts,
	}
}

// summaryReporter keeps the summary it forwards so the exit callback can use it.
// Summarize and exit both run on the scheduler worker.
type summaryReporter struct {
	execution.Reporter
	summary *domain.Summary
}

func (r *summaryReporter) Summarize(summary *domain.Summary) {
	r.Reporter.Summarize(summary)
	r.summary = summary
}

// Execute registers every set with a fresh scheduler, closes registration and
// waits for the drain. The exit callback fires from the scheduler once the
// summary has been printed.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.New().String()
	recorder := metrics.New(runID)

	formatterOpts := []ui.FormatterOption{
		ui.WithWriters(rc.opts.Out, rc.opts.Err),
		ui.WithTable(rc.config.Table),
	}
	if rc.config.Progress {
		formatterOpts = append(formatterOpts, ui.WithProgress(ui.NewProgressBarTo(rc.opts.Err)))
	}
	reporter := &summaryReporter{Reporter: ui.NewFormatter(formatterOpts...)}

	scheduler := execution.NewScheduler(execution.Config{
		Context:  ctx,
		Filter:   execution.NewFilter(rc.config.SetName, rc.config.CaseName),
		Reporter: reporter,
		Recorder: recorder,
		RunID:    runID,
		Exit: func(code int) {
			rc.afterRun(reporter.summary, recorder)
			rc.opts.Exit(code)
		},
	})

	rc.register(scheduler)

	if _, err := scheduler.Finish(ctx); err != nil {
		return fmt.Errorf("waiting for test sets: %w", err)
	}
	return nil
}

// afterRun writes the metrics file and opens the failures viewer if requested
func (rc *RunCommand) afterRun(summary *domain.Summary, recorder *metrics.Metrics) {
	if path := rc.config.MetricsTextfile; path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			fmt.Fprintln(rc.opts.Err, color.RedString("Failed to write metrics: %v", err))
		}
	}

	if !rc.config.OpenFailures || summary == nil || len(summary.Failures()) == 0 {
		return
	}
	if err := rc.opts.Viewer.View(summary); err != nil {
		fmt.Fprintln(rc.opts.Err, color.RedString("Failed to open failures viewer: %v", err))
	}
}
