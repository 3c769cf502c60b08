package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*FamilyCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := New(rdb, ttl)
	require.NotNil(t, c)
	return c, mr
}

func TestCachePutGet(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, 42)
	assert.False(t, ok)

	c.Put(ctx, 42, 7)
	id, ok := c.Get(ctx, 42)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Put(ctx, 42, 7)
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, 42)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Put(ctx, 42, 7)
	c.Invalidate(ctx, 42)

	_, ok := c.Get(ctx, 42)
	assert.False(t, ok)
}

func TestCacheCorruptValue(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("family_id:42", "not-a-number"))
	_, ok := c.Get(context.Background(), 42)
	assert.False(t, ok)
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *FamilyCache
	ctx := context.Background()

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	c.Put(ctx, 1, 2)
	c.Invalidate(ctx, 1)
	assert.Error(t, c.Ping(ctx))
}

func TestNewDisabled(t *testing.T) {
	assert.Nil(t, New(nil, time.Minute))
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	assert.Nil(t, New(rdb, 0))
}
