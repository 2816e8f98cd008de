package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage on top of a go-redis client.
type RedisStorage struct {
	db  redis.UniversalClient
	ttl time.Duration
}

// NewRedisStorage wraps a Redis client. A positive ttl is applied on every
// write, which makes it a sliding expiry for frequently written keys.
func NewRedisStorage(client redis.UniversalClient, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		db:  client,
		ttl: ttl,
	}
}

// Get maps redis.Nil to ErrNotFound.
func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return val, nil
}

// Set stores value with the configured TTL. Zero TTL means no expiration.
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.db.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Delete removes key.
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.db.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Conn returns the underlying Redis client.
func (s *RedisStorage) Conn() redis.UniversalClient {
	return s.db
}
