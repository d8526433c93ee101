// Package redis caches search responses in Redis as JSON.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// DefaultKeyPrefix namespaces search entries.
const DefaultKeyPrefix = "fares:search:"

// Client is the subset of go-redis commands the cache uses.
// *redis.Client and *redis.ClusterClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

var _ domain.SearchCache = (*SearchCache)(nil)

// SearchCache implements domain.SearchCache.
type SearchCache struct {
	redis  Client
	prefix string
}

// NewSearchCache creates a SearchCache. An empty prefix uses DefaultKeyPrefix.
func NewSearchCache(client Client, prefix string) *SearchCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SearchCache{redis: client, prefix: prefix}
}

// Get returns domain.ErrCacheMiss when key is absent or expired.
func (c *SearchCache) Get(ctx context.Context, key string) (*domain.SearchResponse, error) {
	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get search: %w", err)
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal cached search: %w", err)
	}
	return &resp, nil
}

// Set stores resp for ttl. A non-positive ttl or nil resp is a no-op.
func (c *SearchCache) Set(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error {
	if ttl <= 0 || resp == nil {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal search for cache: %w", err)
	}

	if err := c.redis.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set search: %w", err)
	}
	return nil
}

// Ping checks the connection, for health reporting.
func (c *SearchCache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}
