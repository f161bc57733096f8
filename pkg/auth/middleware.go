package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// ErrorResponder writes an error response for status.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, status int)

// JSONError writes {"error": "<status text>"}.
func JSONError(w http.ResponseWriter, _ *http.Request, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(status)})
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middleware)

type middleware struct {
	strategy Strategy
	excluded []string
	respond  ErrorResponder
	logger   *slog.Logger
}

// WithErrorResponder replaces JSONError.
func WithErrorResponder(fn ErrorResponder) MiddlewareOption {
	return func(m *middleware) {
		if fn != nil {
			m.respond = fn
		}
	}
}

// WithMiddlewareLogger sets the logger used for storage failures.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(m *middleware) {
		if l != nil {
			m.logger = l
		}
	}
}

// Middleware gates requests with strategy. A nil strategy disables the gate.
func Middleware(strategy Strategy, excludedPaths []string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	m := &middleware{
		strategy: strategy,
		excluded: excludedPaths,
		respond:  JSONError,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		if m.strategy == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.strategy.RequiresAuth(r.URL.Path, m.excluded) {
				next.ServeHTTP(w, r)
				return
			}

			if !m.hasCredentials(r) {
				m.respond(w, r, http.StatusUnauthorized)
				return
			}

			u, err := m.strategy.CurrentUser(r)
			if err != nil {
				m.logger.ErrorContext(r.Context(), "cannot authenticate request",
					logger.Path(r.URL.Path), logger.Error(err))
				m.respond(w, r, http.StatusServiceUnavailable)
				return
			}
			if u == nil {
				m.respond(w, r, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func (m *middleware) hasCredentials(r *http.Request) bool {
	if m.strategy.AuthorizationHeader(r) != "" {
		return true
	}
	if sr, ok := m.strategy.(SessionReader); ok && sr.SessionCookie(r) != "" {
		return true
	}
	return false
}
