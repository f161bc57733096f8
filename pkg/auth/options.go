package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authkit/pkg/user"
)

// Option configures strategies and the Service.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	sessionTTL time.Duration

	afterRegister     func(ctx context.Context, u *user.User) error
	afterLogin        func(ctx context.Context, u *user.User, sessionID string) error
	afterResetRequest func(ctx context.Context, u *user.User, token string) error
}

func applyOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSessionTTL sets the lifetime used for session cookies.
func WithSessionTTL(ttl time.Duration) Option {
	return func(o *options) { o.sessionTTL = ttl }
}

// WithAfterRegister runs fn after a user is created. Its error is returned to the caller.
func WithAfterRegister(fn func(ctx context.Context, u *user.User) error) Option {
	return func(o *options) { o.afterRegister = fn }
}

// WithAfterLogin runs fn after a session is issued. Its error is logged only.
func WithAfterLogin(fn func(ctx context.Context, u *user.User, sessionID string) error) Option {
	return func(o *options) { o.afterLogin = fn }
}

// WithAfterResetRequest runs fn after a reset token is stored, typically to
// deliver it by email. Its error is logged only.
func WithAfterResetRequest(fn func(ctx context.Context, u *user.User, token string) error) Option {
	return func(o *options) { o.afterResetRequest = fn }
}
