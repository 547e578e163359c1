// Package exitcodes defines the exit codes passed to the scheduler's exit callback.
package exitcodes

// * Success (0): every recorded case passed
// * TestFailure (1): one or more cases failed
// * RuntimeErr (2): a configuration error or a set-level hook error occurred
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
