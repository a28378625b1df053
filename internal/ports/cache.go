package ports

import (
	"context"
	"time"

	"github.com/devbush/likewrapped/internal/domain"
)

// Snapshot is the cached outcome of one ranking query.
type Snapshot struct {
	Handle    string                `json:"handle"`
	Window    domain.FetchWindow    `json:"window"`
	Identity  string                `json:"identity"`
	TopN      int                   `json:"top_n"`
	LikeCount int                   `json:"like_count"`
	Authors   []domain.RankedAuthor `json:"authors"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// CachedItem wraps a snapshot with its cache bookkeeping.
type CachedItem struct {
	Snapshot  *Snapshot
	CreatedAt time.Time // when this item was cached
	ExpiresAt time.Time // when this item should be considered stale
}

// CacheStore memoizes ranking results keyed by query.
type CacheStore interface {
	// Get retrieves a cached item, returning domain.ErrCacheMiss or
	// domain.ErrCacheExpired when nothing usable is stored.
	Get(ctx context.Context, key string) (*CachedItem, error)

	// Set stores an item in the cache.
	Set(ctx context.Context, key string, item *CachedItem) error

	// Delete removes a specific item from the cache.
	Delete(ctx context.Context, key string) error

	// CleanExpired removes all expired items and returns the count removed.
	CleanExpired(ctx context.Context) (int, error)

	// Clear removes all cached items.
	Clear(ctx context.Context) error

	// Stats returns cache statistics: item count and total size in bytes.
	Stats(ctx context.Context) (itemCount int, totalSize int64, err error)
}
