package session

import (
	"context"
	"errors"
	"sync"
)

// maxIDCollisions bounds regeneration when the generator repeats itself.
const maxIDCollisions = 8

// MemoryStore keeps sessions in process memory. Records are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Record
	opts     options
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Record),
		opts:     applyOptions(opts),
	}
}

func (m *MemoryStore) Create(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for range maxIDCollisions {
		id, err := m.opts.newID()
		if err != nil {
			return "", err
		}
		if id == "" {
			return "", ErrTokenGeneration
		}
		if _, taken := m.sessions[id]; taken {
			continue
		}

		m.sessions[id] = Record{
			ID:        id,
			UserID:    userID,
			CreatedAt: m.opts.now().UTC(),
		}
		return id, nil
	}

	return "", errors.Join(ErrTokenGeneration, errors.New("too many id collisions"))
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Record, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	m.mu.RLock()
	rec, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return &rec, nil
}

func (m *MemoryStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	rec, err := m.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return rec.UserID, nil
}

func (m *MemoryStore) Destroy(_ context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(m.sessions, sessionID)
	return true, nil
}

// Len returns the number of stored records, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
