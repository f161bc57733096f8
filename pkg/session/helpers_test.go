package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/authkit/pkg/session"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errBackendDown = errors.New("backend down")

// flakyBackend wraps a backend and fails the first n calls of each kind.
type flakyBackend struct {
	inner session.Backend

	failSaves   atomic.Int32
	failLoads   atomic.Int32
	failDeletes atomic.Int32

	saves   atomic.Int32
	loads   atomic.Int32
	deletes atomic.Int32
}

func (b *flakyBackend) Save(ctx context.Context, rec session.Record) error {
	b.saves.Add(1)
	if b.failSaves.Add(-1) >= 0 {
		return errBackendDown
	}
	return b.inner.Save(ctx, rec)
}

func (b *flakyBackend) Load(ctx context.Context, id string) (*session.Record, error) {
	b.loads.Add(1)
	if b.failLoads.Add(-1) >= 0 {
		return nil, errBackendDown
	}
	return b.inner.Load(ctx, id)
}

func (b *flakyBackend) Delete(ctx context.Context, id string) (bool, error) {
	b.deletes.Add(1)
	if b.failDeletes.Add(-1) >= 0 {
		return false, errBackendDown
	}
	return b.inner.Delete(ctx, id)
}

// mapBackend is an in-memory Backend.
type mapBackend struct {
	mu   sync.Mutex
	recs map[string]session.Record
}

func newMapBackend() *mapBackend {
	return &mapBackend{recs: make(map[string]session.Record)}
}

func (b *mapBackend) Save(_ context.Context, rec session.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recs[rec.ID] = rec
	return nil
}

func (b *mapBackend) Load(_ context.Context, id string) (*session.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.recs[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &rec, nil
}

func (b *mapBackend) Delete(_ context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.recs[id]
	delete(b.recs, id)
	return ok, nil
}

// stubStore is a minimal Store used to show decorators compose over any implementation.
type stubStore struct {
	rec *session.Record
}

func (s *stubStore) Create(context.Context, string) (string, error) { return s.rec.ID, nil }

func (s *stubStore) Get(_ context.Context, id string) (*session.Record, error) {
	if s.rec == nil || id != s.rec.ID {
		return nil, session.ErrSessionNotFound
	}
	r := *s.rec
	return &r, nil
}

func (s *stubStore) Resolve(ctx context.Context, id string) (string, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return r.UserID, nil
}

func (s *stubStore) Destroy(context.Context, string) (bool, error) { return true, nil }
