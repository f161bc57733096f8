package session

import "errors"

var (
	// ErrSessionNotFound is returned for empty or unknown session ids.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired is returned when a record is older than the store TTL.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidUserID is returned when a session is requested without a user.
	ErrInvalidUserID = errors.New("session.invalid_user_id")

	// ErrTokenGeneration indicates the random source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStorageUnavailable means the durable backend could not be reached.
	ErrStorageUnavailable = errors.New("session.storage_unavailable")

	// ErrInvalidRecord is returned by backends asked to save an incomplete record.
	ErrInvalidRecord = errors.New("session.invalid_record")

	// ErrUnknownBackend is returned for an unsupported SESSION_BACKEND value.
	ErrUnknownBackend = errors.New("session.unknown_backend")

	// ErrBackendNotConfigured means the client a backend needs was not provided.
	ErrBackendNotConfigured = errors.New("session.backend_not_configured")
)
