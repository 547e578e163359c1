package domain

import "strings"

// TestFailure represents a failed test case, flattened for display
type TestFailure struct {
	SetName  string
	TestName string
	Message  string
	Stack    []string
	Resolved bool // Toggled in the failure viewer
}

// Failures flattens the failed cases of all sets in registration order
func (s *Summary) Failures() []TestFailure {
	var failures []TestFailure
	for _, set := range s.Sets {
		for _, c := range set.Failed() {
			failure := TestFailure{
				SetName:  set.Name,
				TestName: c.Name,
			}
			if c.Err != nil {
				failure.Message = c.Err.Error()
			}
			if c.Stack != "" {
				failure.Stack = splitLines(c.Stack)
			}
			failures = append(failures, failure)
		}
	}
	return failures
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
