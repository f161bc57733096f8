package session_test

import (
	"encoding/base64"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("create and resolve", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()

		id, err := store.Create(t.Context(), "user-1")
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(id)
		require.NoError(t, err)
		assert.Len(t, raw, 32)

		uid, err := store.Resolve(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, "user-1", uid)

		rec, err := store.Get(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	})

	t.Run("empty user id", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()

		_, err := store.Create(t.Context(), "")
		assert.ErrorIs(t, err, session.ErrInvalidUserID)
		assert.Zero(t, store.Len())
	})

	t.Run("unknown and empty ids", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()

		_, err := store.Resolve(t.Context(), "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		_, err = store.Resolve(t.Context(), "")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("multiple sessions per user", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()

		a, err := store.Create(t.Context(), "user-1")
		require.NoError(t, err)
		b, err := store.Create(t.Context(), "user-1")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)

		ok, err := store.Destroy(t.Context(), a)
		require.NoError(t, err)
		assert.True(t, ok)

		uid, err := store.Resolve(t.Context(), b)
		require.NoError(t, err)
		assert.Equal(t, "user-1", uid)
	})

	t.Run("destroy is idempotent", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()

		id, err := store.Create(t.Context(), "user-1")
		require.NoError(t, err)

		ok, err := store.Destroy(t.Context(), id)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Destroy(t.Context(), id)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Destroy(t.Context(), "")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = store.Resolve(t.Context(), id)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("regenerates colliding ids", func(t *testing.T) {
		t.Parallel()
		ids := []string{"dup", "dup", "fresh"}
		var mu sync.Mutex
		store := session.NewMemoryStore(session.WithIDGenerator(func() (string, error) {
			mu.Lock()
			defer mu.Unlock()
			id := ids[0]
			ids = ids[1:]
			return id, nil
		}))

		first, err := store.Create(t.Context(), "a")
		require.NoError(t, err)
		second, err := store.Create(t.Context(), "b")
		require.NoError(t, err)

		assert.Equal(t, "dup", first)
		assert.Equal(t, "fresh", second)

		uid, err := store.Resolve(t.Context(), "dup")
		require.NoError(t, err)
		assert.Equal(t, "a", uid)
	})

	t.Run("gives up on a stuck generator", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(session.WithIDGenerator(func() (string, error) { return "same", nil }))

		_, err := store.Create(t.Context(), "a")
		require.NoError(t, err)
		_, err = store.Create(t.Context(), "b")
		assert.ErrorIs(t, err, session.ErrTokenGeneration)
	})

	t.Run("clock is injectable", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := session.NewMemoryStore(session.WithClock(clock.Now))

		id, err := store.Create(t.Context(), "a")
		require.NoError(t, err)
		rec, err := store.Get(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, clock.Now(), rec.CreatedAt)
	})
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	const workers = 64

	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Create(t.Context(), "user")
			assert.NoError(t, err)
			ids[i] = id

			_, err = store.Resolve(t.Context(), id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers, store.Len())

	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Destroy(t.Context(), id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Zero(t, store.Len())
}
