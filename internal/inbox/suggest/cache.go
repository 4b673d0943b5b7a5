package suggest

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds the most recent raw generation.
type Cache interface {
	Get(ctx context.Context) (raw string, ok bool, err error)
	Set(ctx context.Context, raw string, ttl time.Duration) error
}

const DefaultCacheKey = "whisper:suggestions:last"

// RedisCache keeps the entry under a single key with an expiry.
type RedisCache struct {
	client *redis.Client
	key    string
}

func NewRedisCache(client *redis.Client, key string) *RedisCache {
	if key == "" {
		key = DefaultCacheKey
	}
	return &RedisCache{client: client, key: key}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (c *RedisCache) Set(ctx context.Context, raw string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key, raw, ttl).Err()
}
