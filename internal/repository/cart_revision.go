package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// revisionTTL outlives any checkout the platform keeps open
const revisionTTL = 30 * 24 * time.Hour

// RevisionCounter hands out strictly increasing revisions per cart id
type RevisionCounter interface {
	Next(ctx context.Context, cartID string) (int64, error)
}

type redisRevisionCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisRevisionCounter creates a revision counter shared by every
// process connected to the same Redis
func NewRedisRevisionCounter(client *redis.Client, prefix string) RevisionCounter {
	return &redisRevisionCounter{client: client, prefix: prefix}
}

func (c *redisRevisionCounter) Next(ctx context.Context, cartID string) (int64, error) {
	key := fmt.Sprintf("%s:cart:%s:revision", c.prefix, cartID)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, revisionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment cart revision: %w", err)
	}
	return incr.Val(), nil
}

// memoryRevisionCounter draws every cart's revisions from one process-wide
// sequence. Revisions per cart are strictly increasing but not contiguous,
// and the counter holds no per-cart state.
type memoryRevisionCounter struct {
	last atomic.Int64
}

// NewMemoryRevisionCounter creates a process-local revision counter
func NewMemoryRevisionCounter() RevisionCounter {
	return &memoryRevisionCounter{}
}

func (c *memoryRevisionCounter) Next(context.Context, string) (int64, error) {
	return c.last.Add(1), nil
}
