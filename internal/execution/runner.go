package execution

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"setrunner/internal/domain"
)

// Runner executes a single test set with its setup/teardown lifecycle
type Runner struct {
	reporter Reporter
	recorder Recorder
}

// NewRunner creates a new Runner
func NewRunner(reporter Reporter, recorder Recorder) *Runner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Runner{reporter: reporter, recorder: recorder}
}

// RunSet runs every case of the set in declared order.
// A nil result means the set-level setup failed and nothing was recorded.
// A non-nil result together with an error means the set-level teardown failed.
func (r *Runner) RunSet(ctx context.Context, set domain.TestSet) (*domain.TestSetResult, error) {
	return r.run(ctx, set, set.Cases)
}

// RunCase runs only the named case, bracketed by the set's Environment.
// A missing case is a ConfigError and no hook runs.
func (r *Runner) RunCase(ctx context.Context, set domain.TestSet, name string) (*domain.TestSetResult, error) {
	tc, ok := set.FindCase(name)
	if !ok {
		return nil, &ConfigError{Set: set.Name, Case: name, Err: ErrCaseNotFound}
	}
	return r.run(ctx, set, []domain.TestCase{tc})
}

func (r *Runner) run(ctx context.Context, set domain.TestSet, cases []domain.TestCase) (*domain.TestSetResult, error) {
	start := time.Now()
	r.reporter.SetStarted(set.Name)

	if set.Environment != nil {
		if err := safeCall(func() error { return set.Environment.SetUp(ctx) }); err != nil {
			return nil, &HookError{Set: set.Name, Phase: PhaseSetUp, Err: err}
		}
	}

	result := &domain.TestSetResult{
		Name:  set.Name,
		Cases: make([]domain.TestCaseResult, 0, len(cases)),
	}
	for _, tc := range cases {
		caseResult := r.runCase(ctx, set, tc)
		result.Cases = append(result.Cases, caseResult)
		r.reporter.CaseFinished(set.Name, caseResult)
		r.recorder.RecordCase(set.Name, caseResult)
	}

	var err error
	if set.Environment != nil {
		if tdErr := safeCall(func() error { return set.Environment.TearDown(ctx) }); tdErr != nil {
			err = &HookError{Set: set.Name, Phase: PhaseTearDown, Err: tdErr}
		}
	}
	result.Duration = time.Since(start)
	return result, err
}

// runCase runs one case. Failures in any phase are recovered and recorded;
// the case teardown runs regardless of the earlier phases.
func (r *Runner) runCase(ctx context.Context, set domain.TestSet, tc domain.TestCase) domain.TestCaseResult {
	r.reporter.CaseStarted(set.Name, tc.Name)
	start := time.Now()

	err := callPhase(ctx, set.Environment, "setup", tc.SetUp)
	if err == nil {
		if tc.Execute == nil {
			err = ErrNoExecute
		} else {
			err = callPhase(ctx, set.Environment, "execute", tc.Execute)
		}
	}
	err = errors.Join(err, callPhase(ctx, set.Environment, "teardown", tc.TearDown))

	result := domain.TestCaseResult{
		Name:     tc.Name,
		Success:  err == nil,
		Err:      err,
		Duration: time.Since(start),
	}
	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		result.Stack = panicErr.Stack
	}
	return result
}

func callPhase(ctx context.Context, env domain.Environment, phase string, fn domain.CaseFunc) error {
	if fn == nil {
		return nil
	}
	if err := safeCall(func() error { return fn(ctx, env) }); err != nil {
		return fmt.Errorf("%s: %w", phase, err)
	}
	return nil
}

// safeCall converts a panic raised by fn into a PanicError
func safeCall(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: string(debug.Stack())}
		}
	}()
	return fn()
}
