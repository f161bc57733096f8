package session

import (
	"log/slog"
	"time"
)

type options struct {
	now           func() time.Time
	logger        *slog.Logger
	newID         func() (string, error)
	retryAttempts uint
	retryInterval time.Duration
}

func defaultOptions() options {
	return options{
		now:           time.Now,
		logger:        slog.New(slog.DiscardHandler),
		newID:         GenerateID,
		retryAttempts: 3,
		retryInterval: 50 * time.Millisecond,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures stores in this package.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for backend failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

// WithRetry bounds backend retries. attempts counts the first call.
func WithRetry(attempts uint, initialInterval time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.retryAttempts = attempts
		}
		if initialInterval > 0 {
			o.retryInterval = initialInterval
		}
	}
}
