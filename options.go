package notify

// dispatcherOptions holds configuration applied at [New] time, following
// the shape of eventloop/options.go's loopOptions.
type dispatcherOptions struct {
	logger            *Logger
	queueCapacityHint int
}

// Option configures a [Dispatcher] at creation time.
type Option interface {
	applyDispatcher(*dispatcherOptions)
}

type optionFunc func(*dispatcherOptions)

func (f optionFunc) applyDispatcher(o *dispatcherOptions) { f(o) }

// WithLogger overrides the structured logger used by a single dispatcher,
// instead of falling back to the package-level default (see [SetLogger]).
func WithLogger(l *Logger) Option {
	return optionFunc(func(o *dispatcherOptions) {
		o.logger = l
	})
}

// WithQueueCapacityHint pre-sizes the moment queue's backing storage. This
// is a pure performance hint: it changes nothing observable about ordering
// or correctness, it only avoids early reallocation for callers who know
// roughly how many moments will be in flight at once.
func WithQueueCapacityHint(n int) Option {
	return optionFunc(func(o *dispatcherOptions) {
		if n > 0 {
			o.queueCapacityHint = n
		}
	})
}

func resolveOptions(opts []Option) *dispatcherOptions {
	cfg := &dispatcherOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyDispatcher(cfg)
	}
	return cfg
}
