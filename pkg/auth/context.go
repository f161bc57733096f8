package auth

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/user"
)

type userContextKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext returns the user stored by Middleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(*user.User)
	return u, ok && u != nil
}

// UserLogAttr is a logger.ContextExtractor that adds the authenticated user id.
func UserLogAttr(ctx context.Context) (slog.Attr, bool) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.UserID(u.ID), true
}
