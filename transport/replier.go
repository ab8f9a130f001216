package transport

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/actor"
	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// Replier is the bind side of the req/rep pair: it listens on a
// tcp://*:port address, and once Reply is called, serves every connected
// Requester against a Mailbox.
type Replier struct {
	f      format.Format
	logger *zap.Logger
	server *http.Server

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	readyOnce sync.Once
	ready     chan struct{}
	sched     *scheduler.Scheduler
	mailbox   actor.Mailbox
}

func newReplier(c *Context, address string, opts []Option) (*Replier, error) {
	ep, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	if !ep.Bind {
		return nil, fmt.Errorf("%w: replier requires tcp://*:port, got %q", ErrInvalidAddress, address)
	}
	cfg := buildConfig(opts)
	f, err := defaultFormat(cfg.format)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", ep.ListenOn)
	if err != nil {
		return nil, fmt.Errorf("%s: listen %s: %w", Namespace, ep.ListenOn, err)
	}

	r := &Replier{
		f:      f,
		logger: c.logger,
		conns:  make(map[*websocket.Conn]struct{}),
		ready:  make(chan struct{}),
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	mux := http.NewServeMux()
	mux.HandleFunc(wsPath, func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			r.logger.Warn("replier: upgrade failed", zap.Error(err))
			return
		}
		r.mu.Lock()
		r.conns[conn] = struct{}{}
		r.mu.Unlock()
		r.serve(conn)
	})

	r.server = &http.Server{Handler: mux}
	go func() {
		_ = r.server.Serve(listener)
	}()

	return r, nil
}

// Reply wires mailbox into the replier and begins serving every connection
// already accepted (and every future one) against it, dispatching each
// request as a job on sched. It returns a Promise representing the serving
// loop: settling it from anywhere stops the replier and closes every
// connection. A second call keeps the scheduler and mailbox of the first;
// the promise it returns is one more stop handle for the same replier.
func (r *Replier) Reply(sched *scheduler.Scheduler, mailbox actor.Mailbox) *promise.Promise[value.Value] {
	r.readyOnce.Do(func() {
		r.sched = sched
		r.mailbox = mailbox
		close(r.ready)
	})

	p := promise.New[value.Value]()
	p.OnSettle(func() {
		_ = r.server.Close()
		r.mu.Lock()
		for conn := range r.conns {
			conn.Close()
		}
		r.mu.Unlock()
	})
	return p
}

func (r *Replier) serve(conn *websocket.Conn) {
	<-r.ready
	defer func() {
		r.mu.Lock()
		delete(r.conns, conn)
		r.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		method, args, err := decodeRequest(r.f, data)
		if err != nil {
			r.logger.Warn("replier: malformed request", zap.Error(err))
			continue
		}

		result := r.mailbox.Send(r.sched, method, args...)
		promise.ThenResult(result, r.sched, func(v value.Value) (struct{}, error) {
			return struct{}{}, r.writeReply(conn, true, v)
		})
		promise.Fail(result, r.sched, func(e error) (value.Value, error) {
			return value.Value{}, r.writeReply(conn, false, value.String(e.Error()))
		})
	}
}

// Close stops accepting new connections and closes every current
// connection.
func (r *Replier) Close() error {
	err := r.server.Close()
	r.mu.Lock()
	for conn := range r.conns {
		conn.Close()
	}
	r.conns = make(map[*websocket.Conn]struct{})
	r.mu.Unlock()
	return err
}

func (r *Replier) writeReply(conn *websocket.Conn, ok bool, payload value.Value) error {
	data, err := encodeReply(r.f, ok, payload)
	if err != nil {
		r.logger.Error("replier: encode reply failed", zap.Error(err))
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		r.logger.Warn("replier: write reply failed", zap.Error(err))
		return err
	}
	return nil
}
