package session

import (
	"context"
	"sync"
	"time"
)

// ExpiringStore rejects records older than ttl. Expired records stay in the
// inner store until destroyed. Sessions created through it are stamped here,
// so inner stores that do not track creation time still expire correctly.
type ExpiringStore struct {
	inner Store
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	created map[string]time.Time
}

// NewExpiringStore decorates inner. A ttl of zero or less disables expiry.
func NewExpiringStore(inner Store, ttl time.Duration, opts ...Option) *ExpiringStore {
	o := applyOptions(opts)
	return &ExpiringStore{
		inner:   inner,
		ttl:     ttl,
		now:     o.now,
		created: make(map[string]time.Time),
	}
}

// TTL returns the configured lifetime.
func (s *ExpiringStore) TTL() time.Duration { return s.ttl }

func (s *ExpiringStore) Create(ctx context.Context, userID string) (string, error) {
	now := s.now().UTC()
	id, err := s.inner.Create(ctx, userID)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.created[id] = now
	s.mu.Unlock()
	return id, nil
}

func (s *ExpiringStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	rec, err := s.inner.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec.CreatedAt.IsZero() {
		s.mu.RLock()
		rec.CreatedAt = s.created[sessionID]
		s.mu.RUnlock()
	}
	// Records with no known creation time are never trusted.
	if rec.Expired(s.now(), s.ttl) {
		return nil, ErrSessionExpired
	}
	return rec, nil
}

func (s *ExpiringStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	rec, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return rec.UserID, nil
}

func (s *ExpiringStore) Destroy(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.inner.Destroy(ctx, sessionID)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	delete(s.created, sessionID)
	s.mu.Unlock()
	return ok, nil
}
