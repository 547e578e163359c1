package execution

import (
	"time"

	"setrunner/internal/domain"
)

// work drains the queue in FIFO order until the scheduler is closed and empty
func (s *Scheduler) work(start time.Time) {
	defer close(s.done)

	for {
		set, ok, closed := s.next()
		if ok {
			s.process(set)
			continue
		}
		if closed {
			break
		}
		<-s.wake
	}

	s.summary.Duration = time.Since(start)
	s.reporter.Summarize(s.summary)
	s.exitOnce.Do(func() {
		s.exit(s.summary.ExitCode())
	})
}

// next pops the head of the queue
func (s *Scheduler) next() (domain.TestSet, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return domain.TestSet{}, false, s.closed
	}
	set := s.queue[0]
	s.queue[0] = domain.TestSet{}
	s.queue = s.queue[1:]
	return set, true, s.closed
}

// process runs one queue entry according to the filter
func (s *Scheduler) process(set domain.TestSet) {
	var (
		result *domain.TestSetResult
		err    error
	)
	switch s.filter.Select(set) {
	case SelectNone:
		return
	case SelectSet:
		result, err = s.runner.RunSet(s.ctx, set)
	case SelectCase:
		result, err = s.runner.RunCase(s.ctx, set, s.filter.CaseName)
	}

	if result != nil {
		s.summary.Add(*result)
		s.recorder.RecordSet(*result)
	}
	if err != nil {
		s.summary.Errors = append(s.summary.Errors, err)
		s.reporter.EntryFailed(err)
		s.recorder.RecordEntryError(err)
	}
}
