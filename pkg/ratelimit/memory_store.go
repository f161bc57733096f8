package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold is the map size at which a new key triggers a sweep.
const sweepThreshold = 1024

// MemoryStore keeps counters in process memory. Expired windows are dropped
// lazily on the next hit for the same key, by Sweep, and whenever a new key
// arrives while the map holds sweepAt or more windows.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	sweepAt int
}

type window struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryStore returns an empty store. A nil clock means time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{windows: make(map[string]*window), now: now, sweepAt: sweepThreshold}
}

func (s *MemoryStore) Increment(_ context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok && len(s.windows) >= s.sweepAt {
		s.sweep(now)
		// Live keys alone can fill the map; back off so sweeps stay amortized.
		s.sweepAt = max(sweepThreshold, 2*len(s.windows))
	}
	if !ok || !now.Before(w.expiresAt) {
		w = &window{expiresAt: now.Add(d)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.expiresAt.Sub(now), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.windows, key)
	s.mu.Unlock()
	return nil
}

// Sweep removes expired windows and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweep(s.now())
}

// Len returns the number of windows held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *MemoryStore) sweep(now time.Time) int {
	n := 0
	for k, w := range s.windows {
		if !now.Before(w.expiresAt) {
			delete(s.windows, k)
			n++
		}
	}
	return n
}
