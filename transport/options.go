package transport

import "github.com/tigrux/traeger-go/format"

// epConfig holds per-endpoint construction options.
type epConfig struct {
	format format.Format
}

// Option configures a Publisher/Subscriber/Requester/Replier at
// construction time.
type Option func(*epConfig)

// WithFormat selects the wire Format an endpoint encodes/decodes with.
// Defaults to "json".
func WithFormat(f format.Format) Option {
	return func(c *epConfig) { c.format = f }
}

func buildConfig(opts []Option) epConfig {
	var c epConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
