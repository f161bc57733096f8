package clientip

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

type ctxKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the address stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}

// LogAttr is a logger.ContextExtractor.
func LogAttr(ctx context.Context) (slog.Attr, bool) {
	ip := FromContext(ctx)
	if ip == "" {
		return slog.Attr{}, false
	}
	return logger.ClientIP(ip), true
}
