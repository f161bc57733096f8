package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/handler"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/requestid"
)

// Mountable is a sub-router.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects what Router mounts. Nil parts are skipped.
type RouterOptions struct {
	Account Mountable
	V1      Mountable
	Checks  []httpserver.Check
	Logger  *slog.Logger

	// ProxyHeaders lists headers trusted to carry the client address.
	ProxyHeaders []string
}

// Router builds the application router.
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(clientip.WithTrustedHeaders(opts.ProxyHeaders...)))
	r.Use(middleware.Recoverer)
	r.Use(accessLog(log))

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(http.StatusNotFound, "Not found")
	}))

	r.Get("/", handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return message(http.StatusOK, "Bienvenue")
	}))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, 2*time.Second, opts.Checks...))

	if opts.Account != nil {
		r.Mount("/", opts.Account.Handle())
	}
	if opts.V1 != nil {
		r.Mount("/api/v1", opts.V1.Handle())
	}
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				logger.Component("api"),
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

func passThrough(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
