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
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/user"
)

// AccountCookie is the cookie carrying the account session id.
const AccountCookie = "session_id"

// Account serves the account lifecycle endpoints.
type Account struct {
	svc       *auth.Service
	transport session.Transport
	log       *slog.Logger
	throttle  func(http.Handler) http.Handler
}

// AccountOption configures NewAccount.
type AccountOption func(*Account)

// WithThrottle wraps the endpoints that check credentials or mail tokens.
func WithThrottle(mw func(http.Handler) http.Handler) AccountOption {
	return func(a *Account) { a.throttle = mw }
}

// NewAccount returns the account endpoints. A nil transport uses a plain
// session_id cookie.
func NewAccount(svc *auth.Service, transport session.Transport, log *slog.Logger, opts ...AccountOption) *Account {
	if transport == nil {
		transport = session.NewCookieTransport(AccountCookie)
	}
	if log == nil {
		log = logger.Discard()
	}
	a := &Account{svc: svc, transport: transport, log: log}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type credentialsRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type resetRequest struct {
	Email string `form:"email" json:"email"`
}

type updatePasswordRequest struct {
	Email       string `form:"email" json:"email"`
	ResetToken  string `form:"reset_token" json:"reset_token"`
	NewPassword string `form:"new_password" json:"new_password"`
}

func (a *Account) Handle() http.Handler {
	r := chi.NewRouter()
	limited := r.With(passThrough(a.throttle))

	r.Post("/users", handler.Wrap(a.register))
	limited.Post("/sessions", handler.Wrap(a.login))
	r.Delete("/sessions", handler.Wrap(a.logout))
	r.Get("/profile", handler.Wrap(a.profile))
	limited.Post("/reset_password", handler.Wrap(a.requestReset))
	limited.Put("/reset_password", handler.Wrap(a.updatePassword))
	return r
}

func (a *Account) register(ctx handler.Context, req credentialsRequest) handler.Response {
	_, err := a.svc.Register(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return message(http.StatusBadRequest, "email already registered")
	case errors.Is(err, auth.ErrEmailRequired), errors.Is(err, user.ErrInvalidEmail):
		return message(http.StatusBadRequest, "email missing or invalid")
	case errors.Is(err, auth.ErrPasswordRequired):
		return message(http.StatusBadRequest, "password missing")
	case errors.Is(err, password.ErrPasswordTooLong), errors.Is(err, password.ErrEmptyPassword):
		return message(http.StatusBadRequest, "password too long")
	default:
		return failure(ctx, a.log, "register", err)
	}
	return handler.JSON(http.StatusOK, map[string]string{"email": req.Email, "message": "user created"})
}

func (a *Account) login(ctx handler.Context, req credentialsRequest) handler.Response {
	sid, err := a.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return failure(ctx, a.log, "login", err)
	}
	body := handler.JSON(http.StatusOK, map[string]string{"email": req.Email, "message": "logged in"})
	return handler.WithCookies(body, func(w http.ResponseWriter) error {
		return a.transport.SetToken(w, sid, 0)
	})
}

func (a *Account) currentSession(ctx handler.Context) (string, *user.User, error) {
	sid, err := a.transport.GetToken(ctx.Request())
	if err != nil {
		return "", nil, nil
	}
	u, err := a.svc.UserFromSession(ctx, sid)
	return sid, u, err
}

func (a *Account) logout(ctx handler.Context, _ struct{}) handler.Response {
	sid, u, err := a.currentSession(ctx)
	if err != nil {
		return failure(ctx, a.log, "logout", err)
	}
	if u == nil {
		return handler.Error(http.StatusForbidden, "")
	}
	if _, err := a.svc.Logout(ctx, sid); err != nil {
		return failure(ctx, a.log, "logout", err)
	}
	return handler.WithCookies(handler.Redirect("/", http.StatusFound), a.transport.ClearToken)
}

func (a *Account) profile(ctx handler.Context, _ struct{}) handler.Response {
	_, u, err := a.currentSession(ctx)
	if err != nil {
		return failure(ctx, a.log, "profile", err)
	}
	if u == nil {
		return handler.Error(http.StatusForbidden, "")
	}
	return handler.JSON(http.StatusOK, map[string]string{"email": u.Email})
}

func (a *Account) requestReset(ctx handler.Context, req resetRequest) handler.Response {
	token, err := a.svc.RequestPasswordReset(ctx, req.Email)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrEmailRequired):
		return handler.Error(http.StatusForbidden, "")
	default:
		return failure(ctx, a.log, "reset request", err)
	}
	return handler.JSON(http.StatusOK, map[string]string{"email": req.Email, "reset_token": token})
}

func (a *Account) updatePassword(ctx handler.Context, req updatePasswordRequest) handler.Response {
	err := a.svc.ApplyPasswordReset(ctx, req.ResetToken, req.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrPasswordRequired),
		errors.Is(err, password.ErrPasswordTooLong), errors.Is(err, password.ErrEmptyPassword):
		return handler.Error(http.StatusForbidden, "")
	default:
		return failure(ctx, a.log, "password update", err)
	}
	return handler.JSON(http.StatusOK, map[string]string{"email": req.Email, "message": "Password updated"})
}
