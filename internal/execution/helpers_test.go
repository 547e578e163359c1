package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"setrunner/internal/domain"
)

// eventLog records lifecycle events in the order they happen
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) count(event string) int {
	n := 0
	for _, e := range l.all() {
		if e == event {
			n++
		}
	}
	return n
}

// recordingReporter captures reporter callbacks
type recordingReporter struct {
	mu         sync.Mutex
	sets       []string
	cases      []string
	entryErrs  []error
	summarized []*domain.Summary
}

func (r *recordingReporter) SetStarted(set string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets = append(r.sets, set)
}

func (r *recordingReporter) CaseStarted(set, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases = append(r.cases, set+"/"+name)
}

func (r *recordingReporter) CaseFinished(string, domain.TestCaseResult) {}

func (r *recordingReporter) EntryFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryErrs = append(r.entryErrs, err)
}

func (r *recordingReporter) Summarize(summary *domain.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summarized = append(r.summarized, summary)
}

func (r *recordingReporter) summaries() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.summarized)
}

var errBoom = errors.New("boom")

// trackedSet builds a set whose hooks and cases log into events.
// Cases listed in failing return errBoom from Execute.
func trackedSet(events *eventLog, name string, caseNames []string, failing ...string) domain.TestSet {
	fail := make(map[string]bool, len(failing))
	for _, f := range failing {
		fail[f] = true
	}

	set := domain.TestSet{
		Name: name,
		Environment: domain.EnvironmentFuncs{
			SetUpFn: func(context.Context) error {
				events.add("%s:setup", name)
				return nil
			},
			TearDownFn: func(context.Context) error {
				events.add("%s:teardown", name)
				return nil
			},
		},
	}
	for _, caseName := range caseNames {
		caseName := caseName
		set.Cases = append(set.Cases, domain.TestCase{
			Name: caseName,
			SetUp: func(context.Context, domain.Environment) error {
				events.add("%s/%s:setup", name, caseName)
				return nil
			},
			Execute: func(context.Context, domain.Environment) error {
				events.add("%s/%s:execute", name, caseName)
				if fail[caseName] {
					return errBoom
				}
				return nil
			},
			TearDown: func(context.Context, domain.Environment) error {
				events.add("%s/%s:teardown", name, caseName)
				return nil
			},
		})
	}
	return set
}

func setNames(summary *domain.Summary) []string {
	var names []string
	for _, s := range summary.Sets {
		names = append(names, s.Name)
	}
	return names
}

func caseOutcomes(result domain.TestSetResult) []bool {
	var outcomes []bool
	for _, c := range result.Cases {
		outcomes = append(outcomes, c.Success)
	}
	return outcomes
}
