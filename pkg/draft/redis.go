package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the redis-backed sink.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the namespace prepended to draft keys.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithTTL bounds how long an abandoned draft survives. Zero keeps drafts
// until they are cleared.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// Redis stores drafts in a shared key/value store so a session can resume
// from another process or host.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client as a draft sink.
func NewRedis(client redis.UniversalClient, options ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "formbuilder:draft:",
		ttl:    7 * 24 * time.Hour,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Redis) Put(ctx context.Context, key string, doc []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, doc, r.ttl).Err(); err != nil {
		return fmt.Errorf("draft: redis put: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("draft: redis get: %w", err)
	}
	return doc, nil
}

func (r *Redis) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("draft: redis clear: %w", err)
	}
	return nil
}
