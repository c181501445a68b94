package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CatalogCache stores JSON-encoded catalog responses under opaque keys
type CatalogCache interface {
	// Get decodes the cached value into dest and reports whether it was present
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type redisCatalogCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCatalogCache creates a Redis-backed catalog cache
func NewRedisCatalogCache(client *redis.Client, prefix string) CatalogCache {
	return &redisCatalogCache{client: client, prefix: prefix}
}

func (c *redisCatalogCache) key(key string) string {
	return fmt.Sprintf("%s:catalog:%s", c.prefix, key)
}

func (c *redisCatalogCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %q: %w", key, err)
	}
	return true, nil
}

func (c *redisCatalogCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %q: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

type noopCatalogCache struct{}

// NewNoopCatalogCache returns a cache that never holds anything
func NewNoopCatalogCache() CatalogCache {
	return noopCatalogCache{}
}

func (noopCatalogCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopCatalogCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
