package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/domain"
)

// PostListCache keeps per-author post listings in Redis. It is strictly a
// read-through cache of derived data; misses and Redis outages fall back to
// the database, and every post write invalidates the author's entry.
type PostListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPostListCache builds the cache. A nil client yields a no-op cache.
func NewPostListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PostListCache{client: client, ttl: ttl, logger: logger}
}

func listKey(authorID string) string {
	return fmt.Sprintf("posts:author:%s", authorID)
}

// Get returns the cached listing for the author, reporting whether it was warm.
func (c *PostListCache) Get(ctx context.Context, authorID string) ([]domain.Post, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, listKey(authorID)).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.Warn("post cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

// Set stores the listing for the author.
func (c *PostListCache) Set(ctx context.Context, authorID string, posts []domain.Post) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(authorID), raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("post cache write failed", zap.Error(err))
	}
}

// Invalidate drops the author's cached listing.
func (c *PostListCache) Invalidate(ctx context.Context, authorID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listKey(authorID)).Err(); err != nil && c.logger != nil {
		c.logger.Warn("post cache invalidation failed", zap.Error(err))
	}
}
