package formats

import "go.uber.org/zap"

type options struct {
	log          *zap.Logger
	groupWorkers int
}

// Option configures a Load call.
type Option func(*options)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithGroupWorkers bounds how many WMO group files are loaded at once.
// Values below 1 mean sequential loading.
func WithGroupWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.groupWorkers = n
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), groupWorkers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
