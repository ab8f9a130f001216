package actor

import (
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// Mailbox is the send-only contract shared by every actor-reachable target:
// a local StatelessActor, a transport.Requester talking to a remote
// replier, and a module.Module loaded from a plugin all expose one. Calling
// code never needs to know which.
type Mailbox interface {
	Send(sched *scheduler.Scheduler, name string, args ...value.Value) *promise.Promise[value.Value]
}
