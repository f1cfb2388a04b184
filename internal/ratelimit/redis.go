package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore counts requests per key in a fixed window using a shared Redis
// instance, so the limit holds across multiple API instances.
type RedisStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisStore creates a RedisStore from a redis:// URL.
func NewRedisStore(redisURL string, limit int, window time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		client: redis.NewClient(opt),
		limit:  int64(limit),
		window: window,
	}, nil
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, int, error) {
	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open: a broken counter store should not lock everyone out.
		return true, 0, err
	}
	n := incr.Val()
	remaining := int(s.limit - n)
	if remaining < 0 {
		remaining = 0
	}
	return n <= s.limit, remaining, nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
