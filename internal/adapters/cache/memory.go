package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

// MemoryCache is an in-process LRU used by the HTTP server.
type MemoryCache struct {
	lru *expirable.LRU[string, *ports.CachedItem]
}

// NewMemoryCache creates a cache holding at most maxEntries items, each
// evicted ttl after insertion. A non-positive ttl disables time eviction,
// leaving expiry to the item's own ExpiresAt.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, *ports.CachedItem](maxEntries, nil, ttl),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*ports.CachedItem, error) {
	item, ok := c.lru.Get(key)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if time.Now().After(item.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}
	return item, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, item *ports.CachedItem) error {
	c.lru.Add(key, item)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

func (c *MemoryCache) CleanExpired(ctx context.Context) (int, error) {
	now := time.Now()
	cleaned := 0
	for _, key := range c.lru.Keys() {
		item, ok := c.lru.Peek(key)
		if ok && now.After(item.ExpiresAt) {
			c.lru.Remove(key)
			cleaned++
		}
	}
	return cleaned, nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

// Stats reports the encoded JSON size of the held snapshots.
func (c *MemoryCache) Stats(ctx context.Context) (int, int64, error) {
	var total int64
	items := c.lru.Values()
	for _, item := range items {
		data, err := json.Marshal(item.Snapshot)
		if err != nil {
			continue
		}
		total += int64(len(data))
	}
	return len(items), total, nil
}

var _ ports.CacheStore = (*MemoryCache)(nil)
