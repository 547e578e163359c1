package execution

import "setrunner/internal/domain"

// Selection tells the scheduler how much of a test set to run
type Selection int

const (
	// SelectNone skips the set without recording a result
	SelectNone Selection = iota
	// SelectSet runs every case of the set
	SelectSet
	// SelectCase runs only the case named by the filter
	SelectCase
)

// String provides a string representation of Selection
func (s Selection) String() string {
	switch s {
	case SelectSet:
		return "set"
	case SelectCase:
		return "case"
	default:
		return "none"
	}
}

// Filter selects test sets and cases by exact name.
// Empty fields match everything.
type Filter struct {
	SetName  string
	CaseName string
}

// NewFilter creates a new Filter
func NewFilter(setName, caseName string) Filter {
	return Filter{SetName: setName, CaseName: caseName}
}

// Select decides how the given set should run
func (f Filter) Select(set domain.TestSet) Selection {
	if !f.MatchesSet(set.Name) {
		return SelectNone
	}
	if f.CaseName == "" {
		return SelectSet
	}
	return SelectCase
}

// MatchesSet reports whether a set with the given name passes the set filter
func (f Filter) MatchesSet(name string) bool {
	return f.SetName == "" || f.SetName == name
}

// MatchesCase reports whether a case would run under this filter
func (f Filter) MatchesCase(setName, caseName string) bool {
	return f.MatchesSet(setName) && (f.CaseName == "" || f.CaseName == caseName)
}
