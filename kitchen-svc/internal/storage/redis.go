package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// IdempotencyTTL is how long a replayed order-creation key is remembered.
	IdempotencyTTL = 24 * time.Hour
	// IdempotencyClaimTTL bounds how long an unfinished request holds its key.
	IdempotencyClaimTTL = time.Minute

	pendingClaim = "pending"
)

// RedisIdempotencyStore remembers which order an Idempotency-Key created.
type RedisIdempotencyStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{Client: client, TTL: ttl}
}

func (s *RedisIdempotencyStore) key(idempotencyKey string) string {
	return "idempotency:order:" + idempotencyKey
}

// Claim marks the key pending with SETNX. Only the caller that gets
// claimed=true may create the order.
func (s *RedisIdempotencyStore) Claim(ctx context.Context, idempotencyKey string) (int, bool, error) {
	key := s.key(idempotencyKey)
	ok, err := s.Client.SetNX(ctx, key, pendingClaim, IdempotencyClaimTTL).Result()
	if err != nil {
		return 0, false, err
	}
	if ok {
		return 0, true, nil
	}

	val, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) || val == pendingClaim {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	orderID, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return orderID, false, nil
}

// Complete replaces the pending claim with the created order id.
func (s *RedisIdempotencyStore) Complete(ctx context.Context, idempotencyKey string, orderID int) error {
	return s.Client.Set(ctx, s.key(idempotencyKey), strconv.Itoa(orderID), s.TTL).Err()
}

// Release drops a pending claim so the client can retry after a failure.
func (s *RedisIdempotencyStore) Release(ctx context.Context, idempotencyKey string) error {
	return s.Client.Del(ctx, s.key(idempotencyKey)).Err()
}
