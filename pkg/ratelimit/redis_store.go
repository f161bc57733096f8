package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares counters through Redis. The first hit in a window sets
// the key expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Increment(ctx context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	k := s.prefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: redis incr: %w", err)
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: redis pttl: %w", err)
	}
	// A negative ttl means no expiry is set yet.
	if count == 1 || ttl < 0 {
		if err := s.client.PExpire(ctx, k, d).Err(); err != nil {
			return 0, 0, fmt.Errorf("ratelimit: redis pexpire: %w", err)
		}
		ttl = d
	}
	return count, ttl, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis reset: %w", err)
	}
	return nil
}
