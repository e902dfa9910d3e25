package vegan

import (
	"log/slog"

	"github.com/MichaelChirico/vegan/linalg"
)

type options struct {
	partial       *linalg.Factor
	first         bool
	distanceBased bool
	workers       int
	validate      bool
	metrics       MetricsCollector
	logger        *Logger
}

// Option configures GetF behavior.
type Option func(*options)

// WithPartial supplies the factor of a conditioning (partial) model. Each
// permuted response is residualized against it before the primary model is
// fit, removing the effect of the conditioning variables.
func WithPartial(z *linalg.Factor) Option {
	return func(o *options) {
		o.partial = z
	}
}

// WithFirstEigenvalue switches the statistic from the total eigenvalue sum
// to the leading eigenvalue: the square of the largest singular value of the
// fitted block.
func WithFirstEigenvalue() Option {
	return func(o *options) {
		o.first = true
	}
}

// WithDistanceBased selects the reduction used for distance-based analyses
// (dbRDA style), where the response is a square symmetric matrix and only
// its diagonal carries eigenvalue mass. Requires a square response.
func WithDistanceBased() Option {
	return func(o *options) {
		o.distanceBased = true
	}
}

// WithWorkers caps the number of goroutines the permutation loop fans out
// across. Values <= 0 mean GOMAXPROCS. Each worker owns its scratch buffers,
// so results are identical for any worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithoutValidation disables the per-row bijection check on the permutation
// table, matching the unchecked behavior of the reference implementation.
// A malformed row then produces garbage statistics (or an index panic if a
// value is out of range) rather than an error.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// batches. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for batches.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		validate: true,
		metrics:  NoopMetricsCollector{},
		logger:   NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
