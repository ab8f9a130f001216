package transport

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/actor"
	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// Requester is the connect side of spec.md §4.F's req/rep pair. Its Mailbox
// forwards each Send as a Request frame and waits for the matching Reply,
// one request at a time (the original ZeroMQ-style discipline: a request
// socket must finish one round trip before starting the next).
type Requester struct {
	conn   *websocket.Conn
	f      format.Format
	logger *zap.Logger

	mu     sync.Mutex
	closed atomic.Bool
}

func newRequester(c *Context, address string, opts []Option) (*Requester, error) {
	ep, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	if ep.Bind {
		return nil, fmt.Errorf("%w: requester requires tcp://host:port, got %q", ErrInvalidAddress, address)
	}
	cfg := buildConfig(opts)
	f, err := defaultFormat(cfg.format)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.Dial(dialURLWithPath(ep.DialURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: dial %s: %w", Namespace, address, err)
	}

	return &Requester{conn: conn, f: f, logger: c.logger}, nil
}

// Mailbox returns the send handle that issues requests over this
// connection.
func (r *Requester) Mailbox() actor.Mailbox {
	return requesterMailbox{r: r}
}

// Close closes the underlying connection.
func (r *Requester) Close() error {
	r.closed.Store(true)
	return r.conn.Close()
}

type requesterMailbox struct {
	r *Requester
}

func (m requesterMailbox) Send(sched *scheduler.Scheduler, name string, args ...value.Value) *promise.Promise[value.Value] {
	return m.r.send(sched, name, args)
}

func (r *Requester) send(sched *scheduler.Scheduler, name string, args []value.Value) *promise.Promise[value.Value] {
	p := promise.New[value.Value]()
	sched.Schedule(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.closed.Load() {
			p.SetError(ErrClosed)
			return
		}

		data, err := encodeRequest(r.f, name, args)
		if err != nil {
			p.SetError(err)
			return
		}
		if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			p.SetError(err)
			return
		}

		_, reply, err := r.conn.ReadMessage()
		if err != nil {
			p.SetError(err)
			return
		}
		ok, payload, err := decodeReply(r.f, reply)
		if err != nil {
			p.SetError(err)
			return
		}
		if !ok {
			msg, _ := payload.StringValue()
			p.SetError(errors.New(msg))
			return
		}
		p.SetValue(payload)
	})
	return p
}
