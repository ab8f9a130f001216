// Package scheduler implements the fixed-size worker pool described in
// spec.md §4.C: an immediate FIFO job queue, a delayed min-heap keyed by
// deadline, and a live count of outstanding work. It is the load-bearing
// engine every other package in this module schedules work on.
//
// The shape is adapted from the teacher (ygrebnov/workers): a config/options
// builder, a dedicated worker loop, and a graceful-drain Stop(). Unlike the
// teacher, the pool here is always fixed-size (spec.md requires
// "threads_count >= 1" with no dynamic-pool mode) and jobs carry no result
// or error value of their own — result propagation is the promise package's
// job, built on top of Schedule.
package scheduler

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/scheduler/metrics"
)

// Scheduler is a fixed-size worker pool executing queued and delayed
// closures. The zero value is not usable; construct with New.
type Scheduler struct {
	jobs   chan func()
	stopCh chan struct{}
	stop   sync.Once

	inflight sync.WaitGroup // tracks every Schedule/ScheduleDelayed until its fn returns
	count    atomic.Int64   // snapshot mirror of inflight, per spec.md §3 Scheduler invariant

	mu   sync.Mutex
	heap delayedHeap
	seq  uint64
	wake chan struct{}

	workers sync.WaitGroup

	metrics          metrics.Provider
	jobsQueuedGauge  metrics.UpDownCounter
	jobsRunningGauge metrics.UpDownCounter
	delayedGauge     metrics.UpDownCounter
	jobDuration      metrics.Histogram
	logger           *zap.Logger
}

// New constructs a Scheduler with threadsCount workers. threadsCount must be
// >= 1; per spec.md §7 this is an unrecoverable construction-time error.
func New(threadsCount int, opts ...Option) (*Scheduler, error) {
	if threadsCount < 1 {
		return nil, ErrInvalidWorkerCount
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scheduler{
		jobs:             make(chan func(), cfg.jobsBufferSize),
		stopCh:           make(chan struct{}),
		wake:             make(chan struct{}, 1),
		metrics:          cfg.metrics,
		jobsQueuedGauge:  cfg.metrics.UpDownCounter(metrics.JobsQueued),
		jobsRunningGauge: cfg.metrics.UpDownCounter(metrics.JobsRunning),
		delayedGauge:     cfg.metrics.UpDownCounter(metrics.DelayedPending),
		jobDuration:      cfg.metrics.Histogram(metrics.JobDuration),
		logger:           cfg.logger,
	}

	s.workers.Add(threadsCount + 1) // + the delayed-job timer goroutine
	for i := 0; i < threadsCount; i++ {
		go s.runWorker()
	}
	go s.runTimer()

	return s, nil
}

// Schedule enqueues a nullary closure to run on some worker. No ordering is
// guaranteed across producers; calls from a single goroutine are delivered
// in call order (spec.md §5).
func (s *Scheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	s.count.Add(1)
	s.inflight.Add(1)
	s.jobsQueuedGauge.Add(1)
	s.jobs <- fn
}

// ScheduleDelayed enqueues fn to become runnable at now+delay. Once due, it
// joins the tail of the immediate queue rather than preempting ready jobs
// (spec.md §4.C fairness rule). delay <= 0 runs no earlier than now, as soon
// as a worker and the timer goroutine observe it.
func (s *Scheduler) ScheduleDelayed(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	s.count.Add(1)
	s.inflight.Add(1)
	s.delayedGauge.Add(1)

	s.mu.Lock()
	s.seq++
	heap.Push(&s.heap, &delayedJob{deadline: time.Now().Add(delay), seq: s.seq, fn: fn})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Count returns a monotonically-consistent snapshot of outstanding work:
// jobs queued, running, or scheduled-delayed and not yet fired.
func (s *Scheduler) Count() int64 { return s.count.Load() }

// Stop initiates a graceful drain: no further action is needed from the
// caller other than to stop calling Schedule/ScheduleDelayed. Workers finish
// everything already queued, running, or scheduled-delayed (waiting for
// delayed jobs to come due) and then exit. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.stop.Do(func() {
		go func() {
			s.inflight.Wait()
			close(s.stopCh)
		}()
	})
}

func (s *Scheduler) runWorker() {
	defer s.workers.Done()
	for {
		select {
		case fn := <-s.jobs:
			s.jobsQueuedGauge.Add(-1)
			s.execute(fn)
			continue
		default:
		}

		select {
		case fn := <-s.jobs:
			s.jobsQueuedGauge.Add(-1)
			s.execute(fn)
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) execute(fn func()) {
	s.jobsRunningGauge.Add(1)
	start := time.Now()
	defer func() {
		s.jobDuration.Record(time.Since(start).Seconds())
		s.jobsRunningGauge.Add(-1)
		s.count.Add(-1)
		s.inflight.Done()
		if r := recover(); r != nil {
			s.logger.Error("scheduler job panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// runTimer services the delayed heap: it sleeps until the earliest deadline,
// then moves every due job onto the immediate queue. It wakes early whenever
// ScheduleDelayed inserts a job that might now be the earliest.
func (s *Scheduler) runTimer() {
	defer s.workers.Done()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		s.mu.Lock()
		deadline, ok := peekDeadline(s.heap)
		s.mu.Unlock()

		wait := time.Hour
		if ok {
			if w := time.Until(deadline); w > 0 {
				wait = w
			} else {
				wait = 0
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-s.stopCh:
			return
		case <-s.wake:
			continue
		case <-timer.C:
			s.fireDue()
		}
	}
}

func (s *Scheduler) fireDue() {
	now := time.Now()
	for {
		s.mu.Lock()
		deadline, ok := peekDeadline(s.heap)
		if !ok || deadline.After(now) {
			s.mu.Unlock()
			return
		}
		job := heap.Pop(&s.heap).(*delayedJob)
		s.mu.Unlock()

		s.delayedGauge.Add(-1)
		s.jobsQueuedGauge.Add(1)
		s.jobs <- job.fn
	}
}
