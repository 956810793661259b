package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:"

// validateScript consumes the code on a match. It returns 1 on a match, 0 on
// a mismatch and -1 when no code is stored.
var validateScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
  return -1
end
if stored == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`)

// withdrawScript deletes the key only while it still holds ARGV[1].
var withdrawScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore is a CodeStore shared between instances. Expiry is delegated to
// Redis key TTLs.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore wraps client. The store owns the client and closes it on Close.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID string) string { return redisKeyPrefix + userID }

func (s *RedisStore) Store(ctx context.Context, userID, code string) error {
	if err := s.client.Set(ctx, redisKey(userID), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("otp: store code: %w", err)
	}
	return nil
}

func (s *RedisStore) Validate(ctx context.Context, userID, code string) (bool, error) {
	res, err := validateScript.Run(ctx, s.client, []string{redisKey(userID)}, code).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("otp: validate code: %w", err)
	}
	return res == 1, nil
}

func (s *RedisStore) Remove(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisKey(userID)).Err(); err != nil {
		return fmt.Errorf("otp: remove code: %w", err)
	}
	return nil
}

func (s *RedisStore) Withdraw(ctx context.Context, userID, code string) error {
	if err := withdrawScript.Run(ctx, s.client, []string{redisKey(userID)}, code).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("otp: withdraw code: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (s *RedisStore) DeleteExpired(context.Context) (int, error) { return 0, nil }

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }
