package transport

import (
	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/internal/logging"
)

// Context is the factory for every socket kind spec.md §4.F describes. It
// mirrors the original bindings' traeger.Context, which is likewise the
// single entry point callers use to obtain a Publisher/Subscriber/
// Requester/Replier for a given address.
type Context struct {
	logger *zap.Logger
}

// NewContext returns a Context using the package default logger. Use
// WithLogger to override it.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{logger: logging.L()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger overrides the zap logger every endpoint created from this
// Context uses.
func WithLogger(l *zap.Logger) ContextOption {
	return func(c *Context) { c.logger = l }
}

func defaultFormat(f format.Format) (format.Format, error) {
	if f != nil {
		return f, nil
	}
	return format.Get("json")
}

// Publisher binds address (which must be tcp://*:port) and returns an
// endpoint that broadcasts published messages to every connected
// Subscriber.
func (c *Context) Publisher(address string, opts ...Option) (*Publisher, error) {
	return newPublisher(c, address, opts)
}

// Subscriber connects to address (which must be tcp://host:port) and
// returns an endpoint that can Listen for messages on the given topics. An
// empty topics list subscribes to every topic.
func (c *Context) Subscriber(address string, topics []string, opts ...Option) (*Subscriber, error) {
	return newSubscriber(c, address, topics, opts)
}

// Requester connects to address and returns an endpoint whose Mailbox
// forwards sends to a Replier bound on the other side.
func (c *Context) Requester(address string, opts ...Option) (*Requester, error) {
	return newRequester(c, address, opts)
}

// Replier binds address and returns an endpoint whose Reply method serves
// incoming requests against a Mailbox.
func (c *Context) Replier(address string, opts ...Option) (*Replier, error) {
	return newReplier(c, address, opts)
}
