package transport

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// Publisher is the bind side of spec.md §4.F's pub/sub pair: it listens on
// a tcp://*:port address, accepts any number of Subscriber connections, and
// broadcasts every Publish call to all of them. Topic filtering happens on
// the Subscriber side, matching the original ZeroMQ-derived socket model.
type Publisher struct {
	f      format.Format
	logger *zap.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]*sync.Mutex // gorilla/websocket forbids concurrent writers per conn
	server *http.Server
}

func newPublisher(c *Context, address string, opts []Option) (*Publisher, error) {
	ep, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	if !ep.Bind {
		return nil, fmt.Errorf("%w: publisher requires tcp://*:port, got %q", ErrInvalidAddress, address)
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

	p := &Publisher{
		f:      f,
		logger: c.logger,
		conns:  make(map[*websocket.Conn]*sync.Mutex),
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	mux := http.NewServeMux()
	mux.HandleFunc(wsPath, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			p.logger.Warn("publisher: upgrade failed", zap.Error(err))
			return
		}
		p.mu.Lock()
		p.conns[conn] = &sync.Mutex{}
		p.mu.Unlock()
		p.drain(conn)
	})

	p.server = &http.Server{Handler: mux}
	go func() {
		_ = p.server.Serve(listener)
	}()

	return p, nil
}

// drain reads and discards frames from a subscriber connection purely to
// detect disconnects (subscribers never send anything meaningful to a
// publisher); it exits, cleaning up the connection, once the read fails.
func (p *Publisher) drain(conn *websocket.Conn) {
	defer func() {
		p.mu.Lock()
		delete(p.conns, conn)
		p.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish broadcasts topic/value to every currently connected subscriber,
// as a job on sched. It never settles a Promise; publishing is
// fire-and-forget, matching the original's publisher.publish(scheduler,
// topic, value).
func (p *Publisher) Publish(sched *scheduler.Scheduler, topic string, val value.Value) {
	sched.Schedule(func() {
		data, err := encodePublish(p.f, topic, val)
		if err != nil {
			p.logger.Error("publisher: encode failed", zap.Error(err))
			return
		}

		p.mu.Lock()
		conns := make(map[*websocket.Conn]*sync.Mutex, len(p.conns))
		for conn, wmu := range p.conns {
			conns[conn] = wmu
		}
		p.mu.Unlock()

		for conn, wmu := range conns {
			wmu.Lock()
			err := conn.WriteMessage(websocket.TextMessage, data)
			wmu.Unlock()
			if err != nil {
				p.logger.Warn("publisher: write failed, dropping subscriber", zap.Error(err))
			}
		}
	})
}

// Close stops accepting new subscribers and closes every current
// connection.
func (p *Publisher) Close() error {
	err := p.server.Close()
	p.mu.Lock()
	for conn := range p.conns {
		conn.Close()
	}
	p.conns = make(map[*websocket.Conn]*sync.Mutex)
	p.mu.Unlock()
	return err
}
