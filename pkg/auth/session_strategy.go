package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/user"
)

// SessionStrategy authenticates requests by session id.
type SessionStrategy struct {
	Base
	store     session.Store
	transport session.Transport
	users     user.Directory
	opts      options
}

func NewSessionStrategy(store session.Store, transport session.Transport, users user.Directory, opts ...Option) *SessionStrategy {
	return &SessionStrategy{
		store:     store,
		transport: transport,
		users:     users,
		opts:      applyOptions(opts),
	}
}

// Store returns the underlying session store.
func (s *SessionStrategy) Store() session.Store { return s.store }

// SessionCookie returns the session id sent with r, or "".
func (s *SessionStrategy) SessionCookie(r *http.Request) string {
	if r == nil {
		return ""
	}
	token, err := s.transport.GetToken(r)
	if err != nil {
		return ""
	}
	return token
}

// CreateSession mints a session for userID.
func (s *SessionStrategy) CreateSession(ctx context.Context, userID string) (string, error) {
	return s.store.Create(ctx, userID)
}

// UserIDForSession resolves a session id. Unknown and expired sessions yield "".
func (s *SessionStrategy) UserIDForSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	uid, err := s.store.Resolve(ctx, sessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
		return "", nil
	case err != nil:
		s.opts.logger.ErrorContext(ctx, "session lookup failed",
			logger.Strategy("session"), logger.Error(err))
		return "", err
	}
	return uid, nil
}

func (s *SessionStrategy) CurrentUser(r *http.Request) (*user.User, error) {
	ctx := r.Context()

	uid, err := s.UserIDForSession(ctx, s.SessionCookie(r))
	if err != nil || uid == "" {
		return nil, err
	}

	u, err := s.users.FindBy(ctx, user.ByID(uid))
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidPredicate):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return u, nil
}

// DestroySession removes the session named by r's cookie.
func (s *SessionStrategy) DestroySession(r *http.Request) (bool, error) {
	id := s.SessionCookie(r)
	if id == "" {
		return false, nil
	}
	return s.store.Destroy(r.Context(), id)
}

// SetCookie sends id to the client.
func (s *SessionStrategy) SetCookie(w http.ResponseWriter, id string) error {
	return s.transport.SetToken(w, id, s.opts.sessionTTL)
}

// ClearCookie tells the client to drop its session id.
func (s *SessionStrategy) ClearCookie(w http.ResponseWriter) error {
	return s.transport.ClearToken(w)
}
