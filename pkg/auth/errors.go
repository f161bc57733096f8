package auth

import (
	"errors"

	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/user"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailAlreadyExists = user.ErrDuplicateEmail
)

// IsStorageUnavailable reports whether err came from an unreachable user
// directory or session backend.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, user.ErrStorageUnavailable) || errors.Is(err, session.ErrStorageUnavailable)
}
