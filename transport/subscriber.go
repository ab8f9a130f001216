package transport

import (
	"fmt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// Subscriber is the connect side of the pub/sub pair: it dials a Publisher
// and delivers every message whose topic matches its subscription list to
// a callback. An empty topic list matches everything.
type Subscriber struct {
	conn   *websocket.Conn
	f      format.Format
	logger *zap.Logger
	topics map[string]struct{}
}

func newSubscriber(c *Context, address string, topics []string, opts []Option) (*Subscriber, error) {
	ep, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	if ep.Bind {
		return nil, fmt.Errorf("%w: subscriber requires tcp://host:port, got %q", ErrInvalidAddress, address)
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

	set := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		set[t] = struct{}{}
	}

	return &Subscriber{conn: conn, f: f, logger: c.logger, topics: set}, nil
}

func (s *Subscriber) subscribed(topic string) bool {
	if len(s.topics) == 0 {
		return true
	}
	_, ok := s.topics[topic]
	return ok
}

// Listen runs a read loop against the publisher, invoking onMessage on
// sched for every matching publish. It returns a Promise that represents
// the running loop: calling Set on it (from anywhere) closes the
// connection and ends the loop; the loop itself settles the same Promise
// if the connection drops on its own.
func (s *Subscriber) Listen(sched *scheduler.Scheduler, onMessage func(topic string, v value.Value)) *promise.Promise[value.Value] {
	p := promise.New[value.Value]()
	p.OnSettle(func() { s.conn.Close() })

	go func() {
		for {
			_, data, err := s.conn.ReadMessage()
			if err != nil {
				p.SetValue(value.Null())
				return
			}
			topic, val, err := decodePublish(s.f, data)
			if err != nil {
				s.logger.Warn("subscriber: malformed frame", zap.Error(err))
				continue
			}
			if !s.subscribed(topic) {
				continue
			}
			sched.Schedule(func() { onMessage(topic, val) })
		}
	}()

	return p
}

// Close closes the underlying connection without going through a Promise.
func (s *Subscriber) Close() error {
	return s.conn.Close()
}
