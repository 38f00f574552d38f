package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

const feedKey = "feed:community"
const feedTTL = 30 * time.Second

// FeedCache holds the community feed for a short TTL so the busiest read
// path stays off Mongo. Every grievance write invalidates it. Cache failures
// are logged and treated as misses; the store remains the source of truth.
type FeedCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewFeedCache creates a FeedCache wrapping the given Redis client.
func NewFeedCache(client *redis.Client, log zerolog.Logger) *FeedCache {
	return &FeedCache{client: client, log: log}
}

// Get returns the cached feed and whether it was present.
func (c *FeedCache) Get(ctx context.Context) ([]*domain.Grievance, bool) {
	raw, err := c.client.Get(ctx, feedKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("feed cache read failed")
		}
		return nil, false
	}

	var feed []*domain.Grievance
	if err := json.Unmarshal(raw, &feed); err != nil {
		c.log.Warn().Err(err).Msg("feed cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return feed, true
}

// Set stores the feed for feedTTL.
func (c *FeedCache) Set(ctx context.Context, feed []*domain.Grievance) {
	raw, err := json.Marshal(feed)
	if err != nil {
		c.log.Warn().Err(err).Msg("feed cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, feedKey, raw, feedTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("feed cache write failed")
	}
}

// Invalidate drops the cached feed.
func (c *FeedCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, feedKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("feed cache invalidation failed")
	}
}
