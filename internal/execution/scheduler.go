package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"setrunner/internal/domain"
)

// Config configures a Scheduler
type Config struct {
	// Context is passed to every hook and case. Defaults to context.Background().
	Context  context.Context
	Filter   Filter
	Reporter Reporter
	Recorder Recorder
	// Exit is called exactly once after the summary. Defaults to a no-op.
	Exit func(code int)
	// RunID identifies the run in the summary. Defaults to a random UUID.
	RunID string
}

// Scheduler serializes registered test sets into one FIFO queue that a single
// worker drains. Sets never run concurrently with each other.
type Scheduler struct {
	ctx      context.Context
	filter   Filter
	runner   *Runner
	reporter Reporter
	recorder Recorder
	exit     func(code int)

	mu     sync.Mutex
	queue  []domain.TestSet
	closed bool

	wake     chan struct{}
	done     chan struct{}
	start    sync.Once
	exitOnce sync.Once

	// Owned by the worker until done is closed
	summary *domain.Summary
}

// NewScheduler creates a new Scheduler. Construct one per process and hand it
// to the code that registers test sets.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = nopReporter{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	if cfg.Exit == nil {
		cfg.Exit = func(int) {}
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.New().String()
	}

	return &Scheduler{
		ctx:      cfg.Context,
		filter:   cfg.Filter,
		runner:   NewRunner(cfg.Reporter, cfg.Recorder),
		reporter: cfg.Reporter,
		recorder: cfg.Recorder,
		exit:     cfg.Exit,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		summary:  &domain.Summary{RunID: cfg.RunID},
	}
}

// Run enqueues the set after everything enqueued so far and returns immediately.
// The same set may be enqueued more than once; each call is an independent run.
func (s *Scheduler) Run(set domain.TestSet) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("run test set %s: %w", set.Name, ErrSchedulerClosed)
	}
	s.queue = append(s.queue, set)
	s.mu.Unlock()

	s.startWorker()
	s.notify()
	return nil
}

// Close marks the end of registration. Once the queue is drained the
// scheduler prints the summary and calls the exit callback. Close is idempotent.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.startWorker()
	s.notify()
}

// Wait blocks until the scheduler has drained after Close
func (s *Scheduler) Wait(ctx context.Context) (*domain.Summary, error) {
	select {
	case <-s.done:
		return s.summary, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Finish closes the scheduler and waits for the drain
func (s *Scheduler) Finish(ctx context.Context) (*domain.Summary, error) {
	s.Close()
	return s.Wait(ctx)
}

// Done is closed once the summary has been produced and exit was called
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Pending returns the number of sets waiting in the queue
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Scheduler) startWorker() {
	s.start.Do(func() {
		go s.work(time.Now())
	})
}

// notify wakes the worker without blocking; one pending token is enough
// because the worker re-checks the queue after every wake-up.
func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
