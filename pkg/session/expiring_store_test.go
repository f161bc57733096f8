package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/session"
)

func TestExpiringStore(t *testing.T) {
	t.Parallel()

	t.Run("expires after ttl without purging", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		mem := session.NewMemoryStore(session.WithClock(clock.Now))
		store := session.NewExpiringStore(mem, time.Minute, session.WithClock(clock.Now))

		id, err := store.Create(t.Context(), "user-1")
		require.NoError(t, err)

		clock.Advance(time.Minute)
		uid, err := store.Resolve(t.Context(), id)
		require.NoError(t, err, "a record exactly ttl old is still valid")
		assert.Equal(t, "user-1", uid)

		clock.Advance(time.Second)
		_, err = store.Resolve(t.Context(), id)
		assert.ErrorIs(t, err, session.ErrSessionExpired)
		assert.Equal(t, 1, mem.Len())

		ok, err := store.Destroy(t.Context(), id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, mem.Len())
	})

	t.Run("non-positive ttl never expires", func(t *testing.T) {
		t.Parallel()
		for _, ttl := range []time.Duration{0, -time.Second} {
			clock := newFakeClock()
			store := session.NewExpiringStore(session.NewMemoryStore(session.WithClock(clock.Now)), ttl, session.WithClock(clock.Now))

			id, err := store.Create(t.Context(), "user-1")
			require.NoError(t, err)

			clock.Advance(365 * 24 * time.Hour)
			uid, err := store.Resolve(t.Context(), id)
			require.NoError(t, err)
			assert.Equal(t, "user-1", uid)
		}
	})

	t.Run("record without timestamp is treated as expired", func(t *testing.T) {
		t.Parallel()
		inner := &stubStore{rec: &session.Record{ID: "s", UserID: "u"}}
		store := session.NewExpiringStore(inner, time.Hour)

		_, err := store.Resolve(t.Context(), "s")
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("stamps creation time when inner store has none", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		inner := &stubStore{rec: &session.Record{ID: "s", UserID: "u"}}
		store := session.NewExpiringStore(inner, time.Hour, session.WithClock(clock.Now))

		id, err := store.Create(t.Context(), "u")
		require.NoError(t, err)
		assert.Equal(t, "s", id)

		clock.Advance(30 * time.Minute)
		rec, err := store.Get(t.Context(), id)
		require.NoError(t, err)
		assert.Equal(t, "u", rec.UserID)
		assert.Equal(t, newFakeClock().Now(), rec.CreatedAt)

		clock.Advance(31 * time.Minute)
		_, err = store.Resolve(t.Context(), id)
		assert.ErrorIs(t, err, session.ErrSessionExpired)

		ok, err := store.Destroy(t.Context(), id)
		require.NoError(t, err)
		assert.True(t, ok)
		_, err = store.Resolve(t.Context(), id)
		assert.ErrorIs(t, err, session.ErrSessionExpired, "stamp is dropped on destroy")
	})

	t.Run("composes over any store", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		inner := &stubStore{rec: &session.Record{ID: "s", UserID: "u", CreatedAt: clock.Now()}}
		store := session.NewExpiringStore(inner, time.Hour, session.WithClock(clock.Now))

		uid, err := store.Resolve(t.Context(), "s")
		require.NoError(t, err)
		assert.Equal(t, "u", uid)

		_, err = store.Resolve(t.Context(), "other")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		clock.Advance(2 * time.Hour)
		_, err = store.Resolve(t.Context(), "s")
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("empty user id", func(t *testing.T) {
		t.Parallel()
		store := session.NewExpiringStore(session.NewMemoryStore(), time.Hour)
		_, err := store.Create(t.Context(), "")
		assert.ErrorIs(t, err, session.ErrInvalidUserID)
	})
}
