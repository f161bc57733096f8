package session

import (
	"net/http"
	"time"
)

// Transport carries the session id between client and server.
type Transport interface {
	// GetToken returns the session id from r or ErrSessionNotFound.
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session id to the client. A ttl of zero means no expiry.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken tells the client to forget the session id.
	ClearToken(w http.ResponseWriter) error
}
