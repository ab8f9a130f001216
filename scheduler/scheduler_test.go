package scheduler_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/scheduler"
)

func TestNewRejectsZeroWorkers(t *testing.T) {
	_, err := scheduler.New(0)
	require.ErrorIs(t, err, scheduler.ErrInvalidWorkerCount)
}

func TestScheduleFIFOSingleProducer(t *testing.T) {
	s, err := scheduler.New(1)
	require.NoError(t, err)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		i := i
		s.Schedule(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestCountReachesZero(t *testing.T) {
	s, err := scheduler.New(4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		s.Schedule(func() { wg.Done() })
	}
	wg.Wait()

	require.Eventually(t, func() bool { return s.Count() == 0 }, time.Second, time.Millisecond)
}

func TestScheduleDelayedZeroRunsSoon(t *testing.T) {
	s, err := scheduler.New(2)
	require.NoError(t, err)

	done := make(chan struct{})
	s.ScheduleDelayed(0, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("delayed(0) job never ran")
	}
}

func TestDelayedJobsFireInDeadlineOrder(t *testing.T) {
	s, err := scheduler.New(1)
	require.NoError(t, err)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(3)

	s.ScheduleDelayed(30*time.Millisecond, func() {
		mu.Lock()
		order = append(order, 3)
		mu.Unlock()
		wg.Done()
	})
	s.ScheduleDelayed(10*time.Millisecond, func() {
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()
		wg.Done()
	})
	s.ScheduleDelayed(20*time.Millisecond, func() {
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
		wg.Done()
	})

	wg.Wait()
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestPanicDoesNotCrashWorker(t *testing.T) {
	s, err := scheduler.New(1)
	require.NoError(t, err)

	s.Schedule(func() { panic("boom") })

	var ran atomic.Bool
	done := make(chan struct{})
	s.Schedule(func() {
		ran.Store(true)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker pool stopped making progress after a panic")
	}
	require.True(t, ran.Load())
}

func TestStopAfterDrainIsIdempotent(t *testing.T) {
	s, err := scheduler.New(2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		s.Schedule(func() { wg.Done() })
	}
	wg.Wait()

	s.Stop()
	s.Stop() // idempotent

	require.Eventually(t, func() bool { return s.Count() == 0 }, time.Second, time.Millisecond)
}
