package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/kvstore"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStorage(0)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStorage(0)
		defer store.Close()

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStorage(0)
		defer store.Close()

		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Set(ctx, "", []byte("v")), kvstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Delete(ctx, ""), kvstore.ErrEmptyKey)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStorage(0)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))

		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("values are copied", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStorage(0)
		defer store.Close()

		buf := []byte("abc")
		require.NoError(t, store.Set(ctx, "k", buf))
		buf[0] = 'x'

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)

		got[1] = 'y'
		again, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("ttl expiry", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		store := kvstore.NewMemoryStorage(0,
			kvstore.WithMemoryTTL(time.Hour),
			kvstore.WithMemoryClock(func() time.Time { return now }),
		)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", []byte("v")))

		now = now.Add(59 * time.Minute)
		_, err := store.Get(ctx, "k")
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, err = store.Get(ctx, "k")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("expired read keeps a concurrent rewrite", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		var store *kvstore.MemoryStorage
		rewrite := false
		store = kvstore.NewMemoryStorage(0,
			kvstore.WithMemoryTTL(time.Hour),
			kvstore.WithMemoryClock(func() time.Time {
				if rewrite {
					rewrite = false
					require.NoError(t, store.Set(ctx, "k", []byte("fresh")))
				}
				return now
			}),
		)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", []byte("stale")))
		now = now.Add(2 * time.Hour)

		// The clock runs between the unlocked lookup and the expiry check,
		// so the rewrite lands after Get has seen the stale entry.
		rewrite = true
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), got)

		got, err = store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), got)
	})

	t.Run("delete expired", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		store := kvstore.NewMemoryStorage(0,
			kvstore.WithMemoryTTL(time.Minute),
			kvstore.WithMemoryClock(func() time.Time { return now }),
		)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "a", []byte("1")))
		require.NoError(t, store.Set(ctx, "b", []byte("2")))
		assert.Equal(t, 2, store.Len())

		now = now.Add(2 * time.Minute)
		store.DeleteExpired()
		assert.Equal(t, 0, store.Len())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()
		store := kvstore.NewMemoryStorage(time.Minute)
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}

func TestNamespace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := kvstore.NewMemoryStorage(0)
	defer base.Close()

	a := kvstore.Namespace(base, "ls:device-a:")
	b := kvstore.Namespace(base, "ls:device-b:")

	require.NoError(t, a.Set(ctx, "cart_guest", []byte("A")))
	require.NoError(t, b.Set(ctx, "cart_guest", []byte("B")))

	got, err := a.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), got)

	got, err = base.Get(ctx, "ls:device-b:cart_guest")
	require.NoError(t, err)
	assert.Equal(t, []byte("B"), got)

	require.NoError(t, a.Delete(ctx, "cart_guest"))
	_, err = a.Get(ctx, "cart_guest")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	_, err = b.Get(ctx, "cart_guest")
	assert.NoError(t, err)

	_, err = a.Get(ctx, "")
	assert.ErrorIs(t, err, kvstore.ErrEmptyKey)

	assert.Same(t, kvstore.Storage(base), kvstore.Namespace(base, ""))
}
