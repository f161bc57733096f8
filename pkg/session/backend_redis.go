package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisBackend stores each record as a JSON string under prefix+id.
type RedisBackend struct {
	client redis.Cmdable
	prefix string
	keyTTL time.Duration
}

// RedisOption configures a RedisBackend.
type RedisOption func(*RedisBackend)

// WithRedisPrefix changes the key prefix (default "session:").
func WithRedisPrefix(prefix string) RedisOption {
	return func(b *RedisBackend) { b.prefix = prefix }
}

// WithRedisKeyTTL makes redis evict keys after ttl. Zero keeps keys until deleted.
func WithRedisKeyTTL(ttl time.Duration) RedisOption {
	return func(b *RedisBackend) {
		if ttl > 0 {
			b.keyTTL = ttl
		}
	}
}

func NewRedisBackend(client redis.Cmdable, opts ...RedisOption) *RedisBackend {
	b := &RedisBackend{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *RedisBackend) key(id string) string { return b.prefix + id }

func (b *RedisBackend) Save(ctx context.Context, rec Record) error {
	if !rec.valid() {
		return ErrInvalidRecord
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return b.client.Set(ctx, b.key(rec.ID), data, b.keyTTL).Err()
}

func (b *RedisBackend) Load(ctx context.Context, sessionID string) (*Record, error) {
	data, err := b.client.Get(ctx, b.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	rec.ID = sessionID
	return &rec, nil
}

func (b *RedisBackend) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := b.client.Del(ctx, b.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
