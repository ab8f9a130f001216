package actor

import (
	"fmt"
	"sync"

	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// laneOp is one pending Send, queued until the RW-lane scheduler admits it.
// run schedules the actual handler body on the caller's scheduler and must
// call release once that job has finished, so the lane is held for the
// handler's real execution, not merely for the moment it was scheduled.
type laneOp struct {
	isWriter bool
	run      func(release func())
}

// StatelessActor is the reflection-free dispatch core of spec.md §4.E: a
// name -> Handler registry for readers and writers, plus the RW-lane
// dispatcher that serializes writers against everything else while letting
// readers batch concurrently between writers. It carries no Go struct
// state of its own; Actor[S] in bind.go is the typed convenience layer that
// closes handlers over a concrete state value, mirroring how the original
// bindings split StatelessActor (core) from Actor (reflection wrapper).
type StatelessActor struct {
	readers map[string]Handler
	writers map[string]Handler

	mu            sync.Mutex
	queue         []laneOp
	activeReaders int
	writerActive  bool
}

// NewStatelessActor returns an actor core with no methods defined yet.
func NewStatelessActor() *StatelessActor {
	return &StatelessActor{
		readers: make(map[string]Handler),
		writers: make(map[string]Handler),
	}
}

// DefineReader registers a read-only method. Readers run concurrently with
// other readers, but never while a writer is active.
func (a *StatelessActor) DefineReader(name string, h Handler) {
	a.readers[name] = h
}

// DefineWriter registers a mutating method. Writers run one at a time,
// exclusive of every reader and every other writer.
func (a *StatelessActor) DefineWriter(name string, h Handler) {
	a.writers[name] = h
}

// Send dispatches name(args...) through the RW-lane scheduler and returns a
// Promise that settles with the handler's Result. The call itself never
// blocks; the handler body runs as a job on sched, at whatever point the
// lane scheduler admits it.
func (a *StatelessActor) Send(sched *scheduler.Scheduler, name string, args ...value.Value) *promise.Promise[value.Value] {
	p := promise.New[value.Value]()

	h, isWriter, ok := a.lookup(name)
	if !ok {
		p.SetError(fmt.Errorf("%w: %q", ErrUnknownMethod, name))
		return p
	}

	op := laneOp{
		isWriter: isWriter,
		run: func(release func()) {
			sched.Schedule(func() {
				r := h(args)
				p.Set(r)
				release()
			})
		},
	}

	a.mu.Lock()
	a.queue = append(a.queue, op)
	a.mu.Unlock()
	a.dispatch()

	return p
}

func (a *StatelessActor) lookup(name string) (Handler, bool, bool) {
	if h, ok := a.readers[name]; ok {
		return h, false, true
	}
	if h, ok := a.writers[name]; ok {
		return h, true, true
	}
	return nil, false, false
}

// dispatch admits as many queued ops as the current lane state allows:
// leading readers run concurrently as a batch, a leading writer runs alone
// once no reader is active, and admission stops at the first op it cannot
// yet admit so arrival order is never violated across the reader/writer
// boundary. Admission itself only updates lane bookkeeping under a.mu; the
// admitted ops' run (which schedules onto sched, a blocking unbuffered
// send) is invoked after a.mu is released, so a worker's release callback
// re-entering a.mu can never deadlock against dispatch holding it.
func (a *StatelessActor) dispatch() {
	a.mu.Lock()
	var toRun []laneOp
	for len(a.queue) > 0 {
		front := a.queue[0]

		if front.isWriter {
			if a.activeReaders > 0 || a.writerActive {
				break
			}
			a.queue = a.queue[1:]
			a.writerActive = true
			toRun = append(toRun, front)
			break
		}

		if a.writerActive {
			break
		}
		a.queue = a.queue[1:]
		a.activeReaders++
		toRun = append(toRun, front)
	}
	a.mu.Unlock()

	for _, op := range toRun {
		if op.isWriter {
			op.run(func() {
				a.mu.Lock()
				a.writerActive = false
				a.mu.Unlock()
				a.dispatch()
			})
			continue
		}
		op.run(func() {
			a.mu.Lock()
			a.activeReaders--
			a.mu.Unlock()
			a.dispatch()
		})
	}
}

// Mailbox returns the send-only handle for this actor, suitable for handing
// to callers that must not see DefineReader/DefineWriter.
func (a *StatelessActor) Mailbox() Mailbox {
	return actorMailbox{actor: a}
}

type actorMailbox struct {
	actor *StatelessActor
}

func (m actorMailbox) Send(sched *scheduler.Scheduler, name string, args ...value.Value) *promise.Promise[value.Value] {
	return m.actor.Send(sched, name, args...)
}
