package storefront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newIPLimiter(1, 2, time.Minute)
	l.now = func() time.Time { return now }

	ok, _ := l.allow("10.0.0.1")
	require.True(t, ok)
	ok, _ = l.allow("10.0.0.1")
	require.True(t, ok)

	ok, wait := l.allow("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, time.Second.Seconds(), wait.Seconds(), 0.01)

	ok, _ = l.allow("10.0.0.2")
	assert.True(t, ok, "buckets are per IP")

	now = now.Add(time.Second)
	ok, _ = l.allow("10.0.0.1")
	assert.True(t, ok, "a token is refilled after one second")

	t.Run("denied attempts do not consume tokens", func(t *testing.T) {
		l := newIPLimiter(1, 1, time.Minute)
		l.now = func() time.Time { return now }

		ok, _ := l.allow("10.0.0.3")
		require.True(t, ok)
		for range 5 {
			ok, _ = l.allow("10.0.0.3")
			require.False(t, ok)
		}

		now := now.Add(time.Second)
		l.now = func() time.Time { return now }
		ok, _ = l.allow("10.0.0.3")
		assert.True(t, ok)
	})

	t.Run("idle buckets are swept", func(t *testing.T) {
		assert.Equal(t, 2, l.size())

		now = now.Add(2 * time.Minute)
		ok, _ := l.allow("10.0.0.9")
		assert.True(t, ok)
		assert.Equal(t, 1, l.size())
	})
}

func TestIPLimiter_MinimumBurst(t *testing.T) {
	t.Parallel()

	l := newIPLimiter(1, 0, 0)
	ok, _ := l.allow("10.0.0.1")
	assert.True(t, ok)
}
