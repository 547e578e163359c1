package domain

import "context"

// Environment is the shared setup/teardown context of a test set.
// A nil Environment means the set has none.
type Environment interface {
	SetUp(ctx context.Context) error
	TearDown(ctx context.Context) error
}

// EnvironmentFuncs adapts two optional functions to an Environment.
// A nil function is a no-op.
type EnvironmentFuncs struct {
	SetUpFn    func(ctx context.Context) error
	TearDownFn func(ctx context.Context) error
}

// SetUp calls SetUpFn if it is set
func (e EnvironmentFuncs) SetUp(ctx context.Context) error {
	if e.SetUpFn == nil {
		return nil
	}
	return e.SetUpFn(ctx)
}

// TearDown calls TearDownFn if it is set
func (e EnvironmentFuncs) TearDown(ctx context.Context) error {
	if e.TearDownFn == nil {
		return nil
	}
	return e.TearDownFn(ctx)
}

// CaseFunc is the signature of a case body and of its optional hooks.
// The enclosing set's Environment is passed through, possibly nil.
type CaseFunc func(ctx context.Context, env Environment) error

// TestCase represents a single named unit of work within a test set
type TestCase struct {
	Name     string
	Execute  CaseFunc
	SetUp    CaseFunc // optional
	TearDown CaseFunc // optional
}

// TestSet represents a named, ordered group of test cases.
// Cases run in slice order.
type TestSet struct {
	Name        string
	Cases       []TestCase
	Environment Environment
}

// FindCase returns the case with exactly the given name
func (s TestSet) FindCase(name string) (TestCase, bool) {
	for _, c := range s.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return TestCase{}, false
}
