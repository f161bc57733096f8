package session

import (
	"net/http"
	"strings"
	"time"
)

// expiresSuffix names the companion header carrying the RFC 3339 expiry.
const expiresSuffix = "-Expires"

// HeaderTransport carries the session id in a header, for API clients that do
// not keep cookies. Values look like "Bearer <id>" unless the scheme is changed.
type HeaderTransport struct {
	name   string
	scheme string
	now    func() time.Time
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets the value prefix. An empty prefix sends the bare id.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) { t.scheme = prefix }
}

func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{name: http.CanonicalHeaderKey(name), scheme: "Bearer ", now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetToken matches the prefix case-insensitively.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	if r == nil {
		return "", ErrSessionNotFound
	}

	v := r.Header.Get(t.name)
	if n := len(t.scheme); n > 0 && len(v) >= n && strings.EqualFold(v[:n], t.scheme) {
		v = v[n:]
	}
	if v = strings.TrimSpace(v); v == "" {
		return "", ErrSessionNotFound
	}
	return v, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	h := w.Header()
	h.Set(t.name, t.scheme+token)
	if ttl > 0 {
		h.Set(t.name+expiresSuffix, t.now().Add(ttl).UTC().Format(time.RFC3339))
	} else {
		h.Del(t.name + expiresSuffix)
	}
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	h := w.Header()
	h.Del(t.name)
	h.Del(t.name + expiresSuffix)
	return nil
}
