package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/handler"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// failure maps an unexpected service error to a response. Storage outages
// become 503, everything else 500.
func failure(ctx handler.Context, log *slog.Logger, op string, err error) handler.Response {
	if errors.Is(err, auth.ErrUnauthorized) {
		return handler.Error(http.StatusUnauthorized, "")
	}
	log.ErrorContext(ctx, op+" failed", logger.Component("api"), logger.Error(err))
	if auth.IsStorageUnavailable(err) {
		return handler.Error(http.StatusServiceUnavailable, "")
	}
	return handler.Error(http.StatusInternalServerError, "")
}

func message(status int, msg string) handler.Response {
	return handler.JSON(status, map[string]string{"message": msg})
}

// TooManyRequests answers throttled requests with a JSON 429.
var TooManyRequests http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_ = handler.Error(http.StatusTooManyRequests, "Too many requests").Render(w, r)
})
