package domain

import (
	"time"

	"setrunner/internal/exitcodes"
)

// TestCaseResult represents the outcome of a single executed case
type TestCaseResult struct {
	Name     string
	Success  bool
	Err      error         // First failure raised by the case or its hooks
	Stack    string        // Stack trace when the failure was a panic
	Duration time.Duration // Time taken including case hooks
}

// TestSetResult represents the outcome of a single executed test set
type TestSetResult struct {
	Name     string
	Cases    []TestCaseResult
	Duration time.Duration
}

// Failed returns the failed cases of the set in execution order
func (r TestSetResult) Failed() []TestCaseResult {
	var failed []TestCaseResult
	for _, c := range r.Cases {
		if !c.Success {
			failed = append(failed, c)
		}
	}
	return failed
}

// Stats holds aggregated case counts of a run
type Stats struct {
	Sets   int
	Total  int
	Passed int
	Failed int
}

// Summary is the complete outcome of a scheduler drain
type Summary struct {
	RunID    string
	Sets     []TestSetResult // Registration order
	Errors   []error         // Configuration and set-level hook errors
	Duration time.Duration
	Stats    Stats
}

// Add appends a set result and updates the stats
func (s *Summary) Add(result TestSetResult) {
	s.Sets = append(s.Sets, result)
	s.Stats.Sets++
	for _, c := range result.Cases {
		s.Stats.Total++
		if c.Success {
			s.Stats.Passed++
		} else {
			s.Stats.Failed++
		}
	}
}

// Passed reports whether every case succeeded and no run entry errored
func (s *Summary) Passed() bool {
	return s.Stats.Failed == 0 && len(s.Errors) == 0
}

// ExitCode maps the summary to a process exit status.
// Configuration and hook errors take precedence over case failures.
func (s *Summary) ExitCode() int {
	switch {
	case len(s.Errors) > 0:
		return exitcodes.RuntimeErr
	case s.Stats.Failed > 0:
		return exitcodes.TestFailure
	default:
		return exitcodes.Success
	}
}
