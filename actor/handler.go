// Package actor implements spec.md §4.E: a reflection-free StatelessActor
// core dispatching named reader/writer methods under RW-lane serialization,
// a generics-based Actor[S] binding layer equivalent to the original
// bindings' reflection-driven method wrapping, and the Mailbox interface
// shared by local actors, remote requesters, and loaded modules.
package actor

import (
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/value"
)

// Handler is the reflection-free core of a bound method: it receives the
// raw argument list and returns a settled Result, never a Promise — the
// dispatch loop is what turns this into an asynchronous send.
type Handler func(args []value.Value) promise.Result[value.Value]
