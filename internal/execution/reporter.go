package execution

import "setrunner/internal/domain"

// Reporter receives progress of a run as it happens
type Reporter interface {
	SetStarted(set string)
	CaseStarted(set, name string)
	CaseFinished(set string, result domain.TestCaseResult)
	EntryFailed(err error)
	Summarize(summary *domain.Summary)
}

// Recorder receives results for metrics
type Recorder interface {
	RecordCase(set string, result domain.TestCaseResult)
	RecordSet(result domain.TestSetResult)
	RecordEntryError(err error)
}

type nopReporter struct{}

func (nopReporter) SetStarted(string)                         {}
func (nopReporter) CaseStarted(string, string)                {}
func (nopReporter) CaseFinished(string, domain.TestCaseResult) {}
func (nopReporter) EntryFailed(error)                         {}
func (nopReporter) Summarize(*domain.Summary)                 {}

type nopRecorder struct{}

func (nopRecorder) RecordCase(string, domain.TestCaseResult) {}
func (nopRecorder) RecordSet(domain.TestSetResult)          {}
func (nopRecorder) RecordEntryError(error)                  {}
