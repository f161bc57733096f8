package auth

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/authkit/pkg/user"
)

// Strategy authenticates requests.
type Strategy interface {
	// RequiresAuth reports whether path is outside excludedPaths.
	RequiresAuth(path string, excludedPaths []string) bool

	// AuthorizationHeader returns the raw Authorization header, or "".
	AuthorizationHeader(r *http.Request) string

	// CurrentUser returns the user behind r's credentials. A nil user with a
	// nil error means anonymous; an error means storage is unavailable.
	CurrentUser(r *http.Request) (*user.User, error)
}

// SessionReader is implemented by strategies that accept a session cookie.
type SessionReader interface {
	SessionCookie(r *http.Request) string
}

// Base implements the shared parts of Strategy and resolves nobody.
type Base struct{}

func (Base) RequiresAuth(path string, excludedPaths []string) bool {
	return RequiresAuth(path, excludedPaths)
}

func (Base) AuthorizationHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Authorization")
}

func (Base) CurrentUser(*http.Request) (*user.User, error) {
	return nil, nil
}

// RequiresAuth reports whether path needs authentication. An empty path or
// an empty exclusion list always does. A pattern ending in "*" excludes every
// path with that prefix; other patterns match exactly, ignoring trailing
// slashes on either side. Empty patterns are ignored.
func RequiresAuth(path string, excludedPaths []string) bool {
	if path == "" || len(excludedPaths) == 0 {
		return true
	}

	trimmed := strings.TrimRight(path, "/")
	for _, pattern := range excludedPaths {
		if pattern == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasPrefix(path, prefix) {
			return false
		}
		if trimmed == strings.TrimRight(pattern, "/") {
			return false
		}
	}
	return true
}
