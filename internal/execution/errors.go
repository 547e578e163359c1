package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrCaseNotFound is wrapped by a ConfigError when the case filter names no case of the set
	ErrCaseNotFound = errors.New("case not found")
	// ErrSchedulerClosed is returned by Run once the scheduler has been closed
	ErrSchedulerClosed = errors.New("scheduler closed")
	// ErrNoExecute fails a case that was registered without an Execute function
	ErrNoExecute = errors.New("execute function is nil")
)

// ConfigError represents a filter that does not match the registered sets.
// It indicates a typo or a stale filter rather than a test regression.
type ConfigError struct {
	Set  string
	Case string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: set %q, case %q: %v", e.Set, e.Case, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError checks if the error is or wraps a ConfigError
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return err != nil && errors.As(err, &configErr)
}

// Hook phases of a set Environment
const (
	PhaseSetUp    = "setup"
	PhaseTearDown = "teardown"
)

// HookError represents a failing set-level Environment hook
type HookError struct {
	Set   string
	Phase string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("test set %s environment %s failed: %v", e.Set, e.Phase, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *HookError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking case or hook
type PanicError struct {
	Value interface{}
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
