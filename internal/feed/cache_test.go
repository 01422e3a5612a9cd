package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records fetches and can be switched into failure mode.
type countingSource struct {
	calls map[string]int
	fail  bool
}

func newCountingSource() *countingSource {
	return &countingSource{calls: map[string]int{}}
}

func (s *countingSource) Fetch(_ context.Context, slug string) ([]byte, error) {
	s.calls[slug]++
	if s.fail {
		return nil, errors.New("feed down")
	}
	return []byte(slug + "-payload"), nil
}

func TestCachedSource(t *testing.T) {
	t.Run("second fetch within TTL hits the cache", func(t *testing.T) {
		inner := newCountingSource()
		clock := clockwork.NewFakeClock()
		src := NewCachedSource(inner, 8, 10*time.Minute, clock)

		data, err := src.Fetch(context.Background(), "gammarth-port")
		require.NoError(t, err)
		assert.Equal(t, "gammarth-port-payload", string(data))

		_, err = src.Fetch(context.Background(), "gammarth-port")
		require.NoError(t, err)
		assert.Equal(t, 1, inner.calls["gammarth-port"])
	})

	t.Run("expired entry refetches", func(t *testing.T) {
		inner := newCountingSource()
		clock := clockwork.NewFakeClock()
		src := NewCachedSource(inner, 8, 10*time.Minute, clock)

		_, err := src.Fetch(context.Background(), "gammarth-port")
		require.NoError(t, err)

		clock.Advance(10 * time.Minute)
		_, err = src.Fetch(context.Background(), "gammarth-port")
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls["gammarth-port"])
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := newCountingSource()
		inner.fail = true
		clock := clockwork.NewFakeClock()
		src := NewCachedSource(inner, 8, 10*time.Minute, clock)

		_, err := src.Fetch(context.Background(), "korbous")
		require.Error(t, err)

		inner.fail = false
		data, err := src.Fetch(context.Background(), "korbous")
		require.NoError(t, err)
		assert.Equal(t, "korbous-payload", string(data))
		assert.Equal(t, 2, inner.calls["korbous"])
	})

	t.Run("capacity eviction drops the least recent spot", func(t *testing.T) {
		inner := newCountingSource()
		clock := clockwork.NewFakeClock()
		src := NewCachedSource(inner, 2, time.Hour, clock)

		ctx := context.Background()
		for _, slug := range []string{"a", "b"} {
			_, err := src.Fetch(ctx, slug)
			require.NoError(t, err)
		}

		// Touch "a" so "b" is the eviction candidate.
		_, err := src.Fetch(ctx, "a")
		require.NoError(t, err)

		_, err = src.Fetch(ctx, "c")
		require.NoError(t, err)

		_, err = src.Fetch(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 1, inner.calls["a"])

		_, err = src.Fetch(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls["b"])
	})
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", cached{payload: []byte("1")})
	c.put("b", cached{payload: []byte("2")})

	e, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), e.payload)

	// "b" is now least recently used and gets evicted.
	c.put("c", cached{payload: []byte("3")})
	_, ok = c.get("b")
	assert.False(t, ok)

	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)

	// Updating an existing key does not grow the cache.
	c.put("a", cached{payload: []byte("1b")})
	e, ok = c.get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1b"), e.payload)
	_, ok = c.get("c")
	assert.True(t, ok)
}
