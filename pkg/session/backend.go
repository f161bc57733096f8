package session

import "context"

// Backend is durable storage for session records.
//
// Load returns ErrSessionNotFound for unknown ids. Delete reports whether a
// record existed. Any other error is treated as transient and retried.
type Backend interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, sessionID string) (*Record, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
}
