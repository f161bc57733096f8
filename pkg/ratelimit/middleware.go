package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// KeyFunc picks the bucket for a request. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ByClientIP keys requests by the address clientip.Middleware resolved,
// scoped to the route path.
func ByClientIP(r *http.Request) string {
	ip := clientip.FromContext(r.Context())
	if ip == "" {
		return ""
	}
	return r.URL.Path + ":" + ip
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	keyFunc KeyFunc
	onLimit http.Handler
	logger  *slog.Logger
	now     func() time.Time
}

func WithKeyFunc(fn KeyFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.keyFunc = fn
		}
	}
}

// WithLimitHandler replaces the default plain 429 response.
func WithLimitHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onLimit = h
		}
	}
}

func WithLogger(log *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// Middleware enforces limiter on every request it wraps. A nil limiter
// returns a pass-through middleware.
func Middleware(limiter *Limiter, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		keyFunc: ByClientIP,
		onLimit: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				cfg.logger.WarnContext(r.Context(), "rate limit check failed",
					logger.Component("ratelimit"), logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				secs := int(res.RetryAfter(cfg.now()).Seconds())
				h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
				cfg.logger.InfoContext(r.Context(), "rate limit reached",
					logger.Component("ratelimit"), logger.Path(r.URL.Path))
				cfg.onLimit.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
