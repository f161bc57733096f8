package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/session"
)

func newPersistent(t *testing.T, backend session.Backend, ttl time.Duration, clock *fakeClock) (*session.PersistentStore, *session.MemoryStore) {
	t.Helper()
	mem := session.NewMemoryStore(session.WithClock(clock.Now))
	exp := session.NewExpiringStore(mem, ttl, session.WithClock(clock.Now))
	return session.NewPersistentStore(exp, backend, ttl,
		session.WithClock(clock.Now),
		session.WithRetry(3, time.Millisecond),
	), mem
}

func TestPersistentStore_SurvivesRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sessions.yaml")
	clock := newFakeClock()

	first, _ := newPersistent(t, session.NewFileBackend(path), 0, clock)
	id, err := first.Create(t.Context(), "user-1")
	require.NoError(t, err)

	// A fresh process: new memory, new backend instance, same file.
	second, mem := newPersistent(t, session.NewFileBackend(path), 0, clock)
	assert.Zero(t, mem.Len())

	uid, err := second.Resolve(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)

	rec, err := second.Get(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, clock.Now().Equal(rec.CreatedAt))

	ok, err := second.Destroy(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = first.Resolve(t.Context(), id)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	ok, err = first.Destroy(t.Context(), id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistentStore_Expiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	backend := newMapBackend()
	store, _ := newPersistent(t, backend, time.Minute, clock)

	id, err := store.Create(t.Context(), "user-1")
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	_, err = store.Resolve(t.Context(), id)
	require.NoError(t, err)

	clock.Advance(31 * time.Second)
	_, err = store.Resolve(t.Context(), id)
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	_, err = backend.Load(t.Context(), id)
	assert.NoError(t, err, "expired records stay in the backend")
}

func TestPersistentStore_SaveFailureRollsBack(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	backend := &flakyBackend{inner: newMapBackend()}
	backend.failSaves.Store(100)
	store, mem := newPersistent(t, backend, 0, clock)

	_, err := store.Create(t.Context(), "user-1")
	assert.ErrorIs(t, err, session.ErrStorageUnavailable)
	assert.EqualValues(t, 3, backend.saves.Load())
	assert.Zero(t, mem.Len(), "no half-created session remains")
}

func TestPersistentStore_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	backend := &flakyBackend{inner: newMapBackend()}
	store, _ := newPersistent(t, backend, 0, clock)

	backend.failSaves.Store(2)
	id, err := store.Create(t.Context(), "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, backend.saves.Load())

	backend.failLoads.Store(1)
	uid, err := store.Resolve(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.EqualValues(t, 2, backend.loads.Load())

	backend.failDeletes.Store(2)
	ok, err := store.Destroy(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 3, backend.deletes.Load())
}

func TestPersistentStore_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	backend := &flakyBackend{inner: newMapBackend()}
	store, _ := newPersistent(t, backend, 0, newFakeClock())

	_, err := store.Resolve(t.Context(), "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.EqualValues(t, 1, backend.loads.Load())
}

func TestPersistentStore_LoadAndDeleteUnavailable(t *testing.T) {
	t.Parallel()

	backend := &flakyBackend{inner: newMapBackend()}
	store, _ := newPersistent(t, backend, 0, newFakeClock())

	id, err := store.Create(t.Context(), "user-1")
	require.NoError(t, err)

	backend.failLoads.Store(100)
	_, err = store.Resolve(t.Context(), id)
	assert.ErrorIs(t, err, session.ErrStorageUnavailable)

	backend.failDeletes.Store(100)
	_, err = store.Destroy(t.Context(), id)
	assert.ErrorIs(t, err, session.ErrStorageUnavailable)
}

func TestPersistentStore_EdgeCases(t *testing.T) {
	t.Parallel()

	backend := &flakyBackend{inner: newMapBackend()}
	store, _ := newPersistent(t, backend, 0, newFakeClock())

	_, err := store.Create(t.Context(), "")
	assert.ErrorIs(t, err, session.ErrInvalidUserID)
	assert.Zero(t, backend.saves.Load())

	_, err = store.Resolve(t.Context(), "")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Zero(t, backend.loads.Load())

	ok, err := store.Destroy(t.Context(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, backend.deletes.Load())
}
