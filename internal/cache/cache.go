// Package cache provides an explicit TTL cache for family-id lookups,
// owned by the record-store access layer.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FamilyCache maps Telegram user IDs to family IDs with a TTL. A nil
// *FamilyCache is a valid no-op cache, so callers need no nil checks.
type FamilyCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a family-id cache. Returns nil (cache disabled) when the redis
// client is nil or the TTL is not positive.
func New(rdb *redis.Client, ttl time.Duration) *FamilyCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &FamilyCache{rdb: rdb, ttl: ttl}
}

func key(userID int64) string {
	return fmt.Sprintf("family_id:%d", userID)
}

// Get returns the cached family ID for a user. ok is false on a miss, an
// expired entry, or any redis error; misses are never fatal.
func (c *FamilyCache) Get(ctx context.Context, userID int64) (familyID int64, ok bool) {
	if c == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, key(userID)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Put stores a user's family ID with the configured TTL.
func (c *FamilyCache) Put(ctx context.Context, userID, familyID int64) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key(userID), strconv.FormatInt(familyID, 10), c.ttl).Err()
}

// Invalidate drops the cached entry for a user. Called when a user creates
// or joins a family so the next lookup hits the store.
func (c *FamilyCache) Invalidate(ctx context.Context, userID int64) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(userID)).Err()
}

// Ping checks the redis connection; used by the readiness probe.
func (c *FamilyCache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache disabled")
	}
	return c.rdb.Ping(ctx).Err()
}
