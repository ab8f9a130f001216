package promise

import (
	"fmt"
	"sync"

	"github.com/tigrux/traeger-go/scheduler"
)

// Promise[T] is a single-assignment future: it starts Pending, settles at
// most once to a Result[T], and fans that Result out to every continuation
// registered before or after settlement (spec.md §4.D). The zero value is
// not usable; construct with New.
type Promise[T any] struct {
	mu            sync.Mutex
	settled       bool
	result        Result[T]
	continuations []func()
}

// New returns a Pending promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Settled reports whether Set has already taken effect.
func (p *Promise[T]) Settled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled
}

// Set settles p with r. The first call wins; every later call is a silent
// no-op (spec.md §7: "what happens if set is called twice? ... the promise
// keeps its first result"). This also makes a Promise usable as a
// cancellation handle: calling Set to stop a long-running loop is safe even
// if the loop concurrently settles the same promise on its own.
func (p *Promise[T]) Set(r Result[T]) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return
	}
	p.settled = true
	p.result = r
	conts := p.continuations
	p.continuations = nil
	p.mu.Unlock()

	for _, c := range conts {
		c()
	}
}

// SetValue settles p successfully with v.
func (p *Promise[T]) SetValue(v T) { p.Set(FromValue(v)) }

// SetError settles p with a failure message.
func (p *Promise[T]) SetError(err error) { p.Set(FromErr[T](err)) }

// peek returns the settled result. Only safe to call from a continuation
// registered through register, which guarantees settlement has happened.
func (p *Promise[T]) peek() Result[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// register runs fn once p settles: immediately, inline, if already settled;
// otherwise appended to run in registration order, inline on the goroutine
// that calls Set. fn itself is responsible for handing any real work to a
// scheduler, as ThenResult and Fail do; OnSettle hooks run as they are.
func (p *Promise[T]) register(fn func()) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		fn()
		return
	}
	p.continuations = append(p.continuations, fn)
	p.mu.Unlock()
}

func runGuarded[U any](down *Promise[U], fn func() (U, error)) {
	defer func() {
		if r := recover(); r != nil {
			down.SetError(fmt.Errorf("panic in continuation: %v", r))
		}
	}()
	u, err := fn()
	if err != nil {
		down.SetError(err)
		return
	}
	down.SetValue(u)
}

// ThenResult chains a success continuation: once p settles, sched runs fn
// with p's value and the returned (U, error) becomes the downstream
// promise's outcome. If p fails, fn is never called and the error
// propagates unchanged. Per spec.md §4.D, continuations registered on a
// scheduler always execute on that scheduler, as a separate job — never
// inline on the goroutine that called Set.
func ThenResult[T, U any](p *Promise[T], sched *scheduler.Scheduler, fn func(T) (U, error)) *Promise[U] {
	down := New[U]()
	p.register(func() {
		sched.Schedule(func() {
			r := p.peek()
			if r.IsError() {
				down.SetError(r.Err())
				return
			}
			v, _ := r.Value()
			runGuarded(down, func() (U, error) { return fn(v) })
		})
	})
	return down
}

// Fail chains a failure continuation: once p settles, sched runs fn with
// p's error if p failed, and the returned (T, error) becomes the
// downstream's outcome. If p succeeds, fn is never called and the value
// propagates unchanged.
func Fail[T any](p *Promise[T], sched *scheduler.Scheduler, fn func(error) (T, error)) *Promise[T] {
	down := New[T]()
	p.register(func() {
		sched.Schedule(func() {
			r := p.peek()
			if !r.IsError() {
				v, _ := r.Value()
				down.SetValue(v)
				return
			}
			runGuarded(down, func() (T, error) { return fn(r.Err()) })
		})
	})
	return down
}
