package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "analytics:snapshot:generation"

// RedisSnapshotCache keeps computed reports as JSON, one key per report and
// generation. Snapshots of older generations are never read again and expire
// with their TTL.
type RedisSnapshotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{Client: client, TTL: ttl}
}

func snapshotKey(report string, generation int64) string {
	return fmt.Sprintf("analytics:snapshot:%s:%d", report, generation)
}

// Generation returns the current generation, 0 before the first Invalidate.
func (c *RedisSnapshotCache) Generation(ctx context.Context) (int64, error) {
	generation, err := c.Client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// Get decodes the cached report into dst and reports whether it was found.
func (c *RedisSnapshotCache) Get(ctx context.Context, report string, generation int64, dst interface{}) (bool, error) {
	data, err := c.Client.Get(ctx, snapshotKey(report, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisSnapshotCache) Set(ctx context.Context, report string, generation int64, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, snapshotKey(report, generation), data, c.TTL).Err()
}

// Invalidate moves every reader to a new, empty generation.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	return c.Client.Incr(ctx, generationKey).Err()
}
