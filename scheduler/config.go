package scheduler

import (
	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/internal/logging"
	"github.com/tigrux/traeger-go/scheduler/metrics"
)

// config holds Scheduler construction options, following the teacher's
// config/options split (ygrebnov/workers).
type config struct {
	jobsBufferSize int
	metrics        metrics.Provider
	logger         *zap.Logger
}

func defaultConfig() config {
	return config{
		jobsBufferSize: 0, // unbuffered: Schedule blocks until a worker picks it up
		metrics:        metrics.NewNoopProvider(),
		logger:         logging.L(),
	}
}

// Option configures a Scheduler at construction time.
type Option func(*config)

// WithJobsBuffer sets the immediate-job channel buffer size.
func WithJobsBuffer(n int) Option {
	return func(c *config) { c.jobsBufferSize = n }
}

// WithMetrics installs a metrics.Provider to observe queue depth, running
// job count, and job duration. Defaults to a no-op provider.
func WithMetrics(p metrics.Provider) Option {
	return func(c *config) {
		if p != nil {
			c.metrics = p
		}
	}
}

// WithLogger installs a *zap.Logger for internal diagnostics. Defaults to
// the shared logging.L() logger, whose level the TRAEGER_LOG_LEVEL
// environment variable sets (see internal/logging).
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
