package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/user"
)

const basicScheme = "Basic"

// BasicStrategy authenticates "Authorization: Basic" headers.
type BasicStrategy struct {
	Base
	users  user.Directory
	hasher password.Hasher
	opts   options
}

func NewBasicStrategy(users user.Directory, hasher password.Hasher, opts ...Option) *BasicStrategy {
	return &BasicStrategy{users: users, hasher: hasher, opts: applyOptions(opts)}
}

// ExtractBase64Credentials returns the token of a "Basic <token>" header.
func ExtractBase64Credentials(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != basicScheme {
		return "", false
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// DecodeBase64Credentials decodes standard base64 and requires valid UTF-8.
func DecodeBase64Credentials(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil || !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// SplitCredentials splits "email:password" on the first colon, so passwords
// may contain colons.
func SplitCredentials(decoded string) (email, pass string, ok bool) {
	return strings.Cut(decoded, ":")
}

// UserFromCredentials looks up email and verifies pass. Unknown users and
// wrong passwords yield (nil, nil).
func (s *BasicStrategy) UserFromCredentials(ctx context.Context, email, pass string) (*user.User, error) {
	if email == "" {
		return nil, nil
	}

	u, err := s.users.FindBy(ctx, user.ByEmail(email))
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidPredicate):
		return nil, nil
	case err != nil:
		s.opts.logger.ErrorContext(ctx, "basic auth lookup failed",
			logger.Strategy("basic"), logger.Error(err))
		return nil, err
	}

	if !s.hasher.Verify(u.HashedPassword, pass) {
		return nil, nil
	}
	return u, nil
}

func (s *BasicStrategy) CurrentUser(r *http.Request) (*user.User, error) {
	token, ok := ExtractBase64Credentials(s.AuthorizationHeader(r))
	if !ok {
		return nil, nil
	}
	decoded, ok := DecodeBase64Credentials(token)
	if !ok {
		return nil, nil
	}
	email, pass, ok := SplitCredentials(decoded)
	if !ok {
		return nil, nil
	}
	return s.UserFromCredentials(r.Context(), email, pass)
}
