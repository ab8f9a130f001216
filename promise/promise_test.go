package promise_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
)

func TestSetTwiceKeepsFirstResult(t *testing.T) {
	p := promise.New[int]()
	p.SetValue(1)
	p.SetValue(2)

	done := make(chan int, 1)
	p.Set(promise.FromValue(2))
	sched, err := scheduler.New(1)
	require.NoError(t, err)
	defer sched.Stop()

	result := promise.ThenResult(p, sched, func(v int) (int, error) {
		done <- v
		return v, nil
	})
	_ = result

	select {
	case v := <-done:
		require.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("continuation never ran")
	}
}

func TestThenResultRunsOnSuccess(t *testing.T) {
	sched, err := scheduler.New(2)
	require.NoError(t, err)
	defer sched.Stop()

	p := promise.New[int]()
	down := promise.ThenResult(p, sched, func(v int) (int, error) { return v * 2, nil })

	var failCalled atomic.Bool
	downFail := promise.Fail(down, sched, func(err error) (int, error) {
		failCalled.Store(true)
		return 0, err
	})
	_ = downFail

	p.SetValue(21)

	require.Eventually(t, func() bool { return down.Settled() }, time.Second, time.Millisecond)
	r := mustPeek(t, down)
	v, ok := r.Value()
	require.True(t, ok)
	require.Equal(t, 42, v)
	require.False(t, failCalled.Load())
}

func TestThenResultSkippedOnError(t *testing.T) {
	sched, err := scheduler.New(2)
	require.NoError(t, err)
	defer sched.Stop()

	p := promise.New[int]()
	var thenCalled atomic.Bool
	down := promise.ThenResult(p, sched, func(v int) (int, error) {
		thenCalled.Store(true)
		return v, nil
	})

	p.SetError(errors.New("boom"))

	require.Eventually(t, func() bool { return down.Settled() }, time.Second, time.Millisecond)
	r := mustPeek(t, down)
	require.True(t, r.IsError())
	require.Equal(t, "boom", r.ErrorMessage())
	require.False(t, thenCalled.Load())
}

func TestFailRecoversError(t *testing.T) {
	sched, err := scheduler.New(2)
	require.NoError(t, err)
	defer sched.Stop()

	p := promise.New[int]()
	down := promise.Fail(p, sched, func(err error) (int, error) { return -1, nil })

	p.SetError(errors.New("boom"))

	require.Eventually(t, func() bool { return down.Settled() }, time.Second, time.Millisecond)
	r := mustPeek(t, down)
	v, ok := r.Value()
	require.True(t, ok)
	require.Equal(t, -1, v)
}

func TestRegisterAfterSettlementStillRunsOnScheduler(t *testing.T) {
	sched, err := scheduler.New(1)
	require.NoError(t, err)
	defer sched.Stop()

	p := promise.New[int]()
	p.SetValue(7)

	down := promise.ThenResult(p, sched, func(v int) (int, error) { return v + 1, nil })
	require.Eventually(t, func() bool { return down.Settled() }, time.Second, time.Millisecond)
	r := mustPeek(t, down)
	v, _ := r.Value()
	require.Equal(t, 8, v)
}

// TestPromiseAsStopHandle reproduces the subscriber/replier idiom from the
// original bindings: a long-lived promise is handed to a loop as a
// cancellation token, and setting it from outside terminates the loop
// cleanly on its next check.
func TestPromiseAsStopHandle(t *testing.T) {
	stop := promise.New[struct{}]()
	ticks := make(chan int, 100)

	go func() {
		for i := 0; ; i++ {
			if stop.Settled() {
				return
			}
			select {
			case ticks <- i:
			default:
			}
			time.Sleep(time.Millisecond)
		}
	}()

	time.Sleep(20 * time.Millisecond)
	stop.SetValue(struct{}{})
	stop.SetValue(struct{}{}) // second call is a no-op, must not panic

	require.Eventually(t, func() bool { return stop.Settled() }, time.Second, time.Millisecond)
	require.NotEmpty(t, ticks)
}

func mustPeek[T any](t *testing.T, p *promise.Promise[T]) promise.Result[T] {
	t.Helper()
	require.True(t, p.Settled())
	done := make(chan promise.Result[T], 1)
	sched, err := scheduler.New(1)
	require.NoError(t, err)
	defer sched.Stop()
	promise.ThenResult(p, sched, func(v T) (T, error) {
		done <- promise.FromValue(v)
		return v, nil
	})
	promise.Fail(p, sched, func(e error) (T, error) {
		var zero T
		done <- promise.FromErr[T](e)
		return zero, nil
	})
	select {
	case r := <-done:
		return r
	case <-time.After(time.Second):
		t.Fatal("peek timed out")
		panic("unreachable")
	}
}
