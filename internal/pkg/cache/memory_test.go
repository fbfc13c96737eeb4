package cache_test

import (
	"sync"
	"testing"
	"time"

	"shopfloor/internal/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_GetSet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStoreWithClock(clock.Now)
	ctx := t.Context()

	t.Run("miss_on_absent_key", func(t *testing.T) {
		_, err := store.Get(ctx, "bom:PA-100")
		require.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("hit_before_expiry_then_miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "bom:PA-100", []byte(`{"lines":[]}`), time.Minute))

		got, err := store.Get(ctx, "bom:PA-100")
		require.NoError(t, err)
		assert.JSONEq(t, `{"lines":[]}`, string(got))

		clock.Advance(time.Minute)

		_, err = store.Get(ctx, "bom:PA-100")
		require.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("zero_ttl_is_not_stored", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "stock:X", []byte("1"), 0))

		_, err := store.Get(ctx, "stock:X")
		require.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("delete_removes_key", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "order:1", []byte("x"), time.Hour))
		require.NoError(t, store.Delete(ctx, "order:1"))

		_, err := store.Get(ctx, "order:1")
		require.ErrorIs(t, err, cache.ErrCacheMiss)
	})
}

func TestMemoryStore_ReturnedBytesAreCopies(t *testing.T) {
	store := cache.NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, store.Set(t.Context(), "k", value, time.Hour))
	value[0] = 'z'

	got, err := store.Get(t.Context(), "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := store.Get(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStoreWithClock(clock.Now)
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "long", []byte("2"), time.Hour))
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())
}
