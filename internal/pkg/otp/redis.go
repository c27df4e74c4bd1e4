package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "otp:"

// RedisStore keeps verification codes in Redis with a per-key TTL, so codes
// survive process restarts and expire without any in-process bookkeeping.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store whose entries expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(email string) string {
	return redisKeyPrefix + email
}

// Put stores a code for the given email, replacing any previous one.
func (s *RedisStore) Put(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, redisKey(email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// Consume checks the code for the given email and removes it on a match.
// A wrong guess leaves the stored code in place until it expires.
func (s *RedisStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, redisKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read verification code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.client.Del(ctx, redisKey(email)).Err(); err != nil {
		return false, fmt.Errorf("failed to consume verification code: %w", err)
	}
	return true, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
