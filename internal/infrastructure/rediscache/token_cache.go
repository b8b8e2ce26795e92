package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache stores encrypted bearer tokens in a shared redis instance so
// they survive process restarts. TTL writes monotonically replace, never
// merge.
type TokenCache struct {
	rdb *redis.Client
}

func NewTokenCache(addr, password string, db int) *TokenCache {
	return &TokenCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *TokenCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (c *TokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *TokenCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
