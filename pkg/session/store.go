package session

import "context"

// Store maps session ids to user ids. Implementations are safe for concurrent use.
type Store interface {
	// Create mints a fresh session id for userID.
	Create(ctx context.Context, userID string) (string, error)

	// Get returns the record for sessionID. CreatedAt is zero when the store
	// does not track creation time.
	Get(ctx context.Context, sessionID string) (*Record, error)

	// Resolve returns the user id bound to sessionID.
	Resolve(ctx context.Context, sessionID string) (string, error)

	// Destroy removes sessionID and reports whether it existed.
	Destroy(ctx context.Context, sessionID string) (bool, error)
}
