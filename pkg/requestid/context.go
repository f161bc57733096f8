package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

type ctxKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// LogAttr is a logger.ContextExtractor.
func LogAttr(ctx context.Context) (slog.Attr, bool) {
	id := FromContext(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}
