package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/user"
)

// Service implements account operations on top of a user directory, a
// password hasher and a session store.
type Service struct {
	users    user.Directory
	hasher   password.Hasher
	sessions session.Store
	opts     options
}

func NewService(users user.Directory, hasher password.Hasher, sessions session.Store, opts ...Option) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		opts:     applyOptions(opts),
	}
}

func (s *Service) log() *slog.Logger { return s.opts.logger }

// Register creates an account. It fails with ErrEmailAlreadyExists when the
// email is taken.
func (s *Service) Register(ctx context.Context, email, pass string) (*user.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if pass == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}

	s.log().InfoContext(ctx, "user registered",
		logger.Component("auth"), logger.Event("register"), logger.UserID(u.ID))

	if s.opts.afterRegister != nil {
		if err := s.opts.afterRegister(ctx, u); err != nil {
			return u, fmt.Errorf("after register hook: %w", err)
		}
	}
	return u, nil
}

// ValidLogin reports whether pass is the password of the account at email.
func (s *Service) ValidLogin(ctx context.Context, email, pass string) (bool, error) {
	u, err := s.authenticate(ctx, email, pass)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *Service) authenticate(ctx context.Context, email, pass string) (*user.User, error) {
	if email == "" || pass == "" {
		return nil, nil
	}
	u, err := s.users.FindBy(ctx, user.ByEmail(email))
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidPredicate):
		return nil, nil
	case err != nil:
		return nil, err
	}
	if !s.hasher.Verify(u.HashedPassword, pass) {
		return nil, nil
	}
	return u, nil
}

// Login verifies the credentials and issues a session. The session id is also
// recorded on the user. Bad credentials yield ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, pass string) (string, error) {
	u, err := s.authenticate(ctx, email, pass)
	if err != nil {
		return "", err
	}
	if u == nil {
		s.log().InfoContext(ctx, "login rejected",
			logger.Component("auth"), logger.Event("login_failed"), logger.Email(email))
		return "", ErrUnauthorized
	}

	s.upgradeHash(ctx, u, pass)

	id, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return "", err
	}

	if err := s.users.Update(ctx, u.ID, user.Fields{user.FieldSessionID: id}); err != nil {
		s.logUpdateFailure(ctx, u.ID, err)
		if _, derr := s.sessions.Destroy(context.WithoutCancel(ctx), id); derr != nil {
			err = errors.Join(err, derr)
		}
		return "", err
	}

	s.log().InfoContext(ctx, "user logged in",
		logger.Component("auth"), logger.Event("login"), logger.UserID(u.ID), logger.SessionID(id))

	if s.opts.afterLogin != nil {
		if err := s.opts.afterLogin(ctx, u, id); err != nil {
			s.log().WarnContext(ctx, "after login hook failed", logger.Component("auth"), logger.Error(err))
		}
	}
	return id, nil
}

// upgradeHash re-hashes pass when the stored hash uses weaker parameters.
func (s *Service) upgradeHash(ctx context.Context, u *user.User, pass string) {
	rh, ok := s.hasher.(password.Rehasher)
	if !ok || !rh.NeedsRehash(u.HashedPassword) {
		return
	}
	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return
	}
	if err := s.users.Update(ctx, u.ID, user.Fields{user.FieldHashedPassword: hash}); err != nil {
		s.logUpdateFailure(ctx, u.ID, err)
		return
	}
	u.HashedPassword = hash
}

// UserFromSession returns the user owning sessionID, or nil for unknown,
// expired or empty ids.
func (s *Service) UserFromSession(ctx context.Context, sessionID string) (*user.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	uid, err := s.sessions.Resolve(ctx, sessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
		return nil, nil
	case err != nil:
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

// Logout destroys sessionID and clears it from its user. It reports whether
// the session existed.
func (s *Service) Logout(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	owner, err := s.users.FindBy(ctx, user.BySessionID(sessionID))
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	existed, err := s.sessions.Destroy(ctx, sessionID)
	if err != nil {
		return false, err
	}

	if owner != nil {
		if err := s.users.Update(ctx, owner.ID, user.Fields{user.FieldSessionID: nil}); err != nil {
			s.logUpdateFailure(ctx, owner.ID, err)
			return existed, err
		}
		s.log().InfoContext(ctx, "user logged out",
			logger.Component("auth"), logger.Event("logout"), logger.UserID(owner.ID))
	}
	return existed, nil
}

// RequestPasswordReset stores a fresh reset token on the account at email
// and returns it.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}

	u, err := s.users.FindBy(ctx, user.ByEmail(email))
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidPredicate):
		return "", ErrUserNotFound
	case err != nil:
		return "", err
	}

	token := uuid.NewString()
	if err := s.users.Update(ctx, u.ID, user.Fields{user.FieldResetToken: token}); err != nil {
		s.logUpdateFailure(ctx, u.ID, err)
		return "", err
	}

	s.log().InfoContext(ctx, "password reset requested",
		logger.Component("auth"), logger.Event("reset_requested"), logger.UserID(u.ID))

	if s.opts.afterResetRequest != nil {
		if err := s.opts.afterResetRequest(ctx, u, token); err != nil {
			s.log().WarnContext(ctx, "reset token delivery failed",
				logger.Component("auth"), logger.UserID(u.ID), logger.Error(err))
		}
	}
	return token, nil
}

// ApplyPasswordReset sets a new password for the account holding token and
// consumes the token. Unknown or already used tokens yield ErrInvalidToken.
func (s *Service) ApplyPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if newPassword == "" {
		return ErrPasswordRequired
	}

	u, err := s.users.FindBy(ctx, user.ByResetToken(token))
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidPredicate):
		return ErrInvalidToken
	case err != nil:
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.Update(ctx, u.ID, user.Fields{
		user.FieldHashedPassword: hash,
		user.FieldResetToken:     nil,
	}); err != nil {
		s.logUpdateFailure(ctx, u.ID, err)
		return err
	}

	s.log().InfoContext(ctx, "password reset applied",
		logger.Component("auth"), logger.Event("reset_applied"), logger.UserID(u.ID))
	return nil
}

func (s *Service) logUpdateFailure(ctx context.Context, userID string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, user.ErrUnknownField) {
		level = slog.LevelError
	}
	s.log().Log(ctx, level, "user update failed",
		logger.Component("auth"), logger.UserID(userID), logger.Error(err))
}
