package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/handler"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/user"
)

// DefaultExcludedPaths are the /api/v1 paths reachable without credentials.
var DefaultExcludedPaths = []string{
	"/api/v1/status/",
	"/api/v1/unauthorized/",
	"/api/v1/forbidden/",
	"/api/v1/auth_session/login/",
}

// V1 serves /api/v1.
type V1 struct {
	strategy auth.Strategy
	sessions *auth.SessionStrategy
	users    user.Directory
	hasher   password.Hasher
	excluded []string
	log      *slog.Logger
	throttle func(http.Handler) http.Handler
}

// V1Options configures NewV1.
type V1Options struct {
	// Strategy gates every non-excluded route. Nil disables the gate.
	Strategy auth.Strategy
	// Sessions enables the auth_session routes when set.
	Sessions      *auth.SessionStrategy
	Users         user.Directory
	Hasher        password.Hasher
	ExcludedPaths []string
	Logger        *slog.Logger
	// Throttle wraps the login route when set.
	Throttle func(http.Handler) http.Handler
}

func NewV1(opts V1Options) *V1 {
	v := &V1{
		strategy: opts.Strategy,
		sessions: opts.Sessions,
		users:    opts.Users,
		hasher:   opts.Hasher,
		excluded: opts.ExcludedPaths,
		log:      opts.Logger,
		throttle: opts.Throttle,
	}
	if v.excluded == nil {
		v.excluded = DefaultExcludedPaths
	}
	if v.log == nil {
		v.log = logger.Discard()
	}
	return v
}

// Handle returns the router to mount at /api/v1.
func (v *V1) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Middleware(v.strategy, v.excluded, auth.WithMiddlewareLogger(v.log)))

	r.Get("/status", handler.Wrap(v.status))
	r.Get("/unauthorized", handler.Wrap(v.unauthorized))
	r.Get("/forbidden", handler.Wrap(v.forbidden))
	r.Get("/users/me", handler.Wrap(v.me))

	if v.sessions != nil {
		r.With(passThrough(v.throttle)).Post("/auth_session/login", handler.Wrap(v.sessionLogin))
		r.Delete("/auth_session/logout", handler.Wrap(v.sessionLogout))
	}
	return r
}

func (v *V1) status(handler.Context, struct{}) handler.Response {
	return handler.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

func (v *V1) unauthorized(handler.Context, struct{}) handler.Response {
	return handler.Error(http.StatusUnauthorized, "")
}

func (v *V1) forbidden(handler.Context, struct{}) handler.Response {
	return handler.Error(http.StatusForbidden, "")
}

func (v *V1) me(ctx handler.Context, _ struct{}) handler.Response {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return handler.Error(http.StatusNotFound, "")
	}
	return handler.JSON(http.StatusOK, u)
}

func (v *V1) sessionLogin(ctx handler.Context, req credentialsRequest) handler.Response {
	if req.Email == "" {
		return handler.Error(http.StatusBadRequest, "email missing")
	}
	if req.Password == "" {
		return handler.Error(http.StatusBadRequest, "password missing")
	}

	u, err := v.users.FindBy(ctx, user.ByEmail(req.Email))
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidPredicate):
		return handler.Error(http.StatusNotFound, "no user found for this email")
	case err != nil:
		return failure(ctx, v.log, "session login", err)
	}
	if !v.hasher.Verify(u.HashedPassword, req.Password) {
		return handler.Error(http.StatusUnauthorized, "wrong password")
	}

	sid, err := v.sessions.CreateSession(ctx, u.ID)
	if err != nil {
		return failure(ctx, v.log, "session login", err)
	}
	return handler.WithCookies(handler.JSON(http.StatusOK, u), func(w http.ResponseWriter) error {
		return v.sessions.SetCookie(w, sid)
	})
}

func (v *V1) sessionLogout(ctx handler.Context, _ struct{}) handler.Response {
	ok, err := v.sessions.DestroySession(ctx.Request())
	if err != nil {
		return failure(ctx, v.log, "session logout", err)
	}
	if !ok {
		return handler.Error(http.StatusNotFound, "")
	}
	return handler.WithCookies(handler.JSON(http.StatusOK, struct{}{}), v.sessions.ClearCookie)
}
