package application

import (
	"context"
	"time"

	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

// CacheStats holds cache statistics
type CacheStats struct {
	Backend   string
	ItemCount int
	TotalSize int64
	TTL       time.Duration
}

// CacheService handles cache management operations
type CacheService struct {
	cache   ports.CacheStore
	backend string
	ttl     time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(cache ports.CacheStore, backend string, ttl time.Duration) *CacheService {
	return &CacheService{cache: cache, backend: backend, ttl: ttl}
}

// Backend names the store behind the service
func (s *CacheService) Backend() string {
	return s.backend
}

// Stats returns cache statistics
func (s *CacheService) Stats(ctx context.Context) (*CacheStats, error) {
	count, size, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CacheStats{
		Backend:   s.backend,
		ItemCount: count,
		TotalSize: size,
		TTL:       s.ttl,
	}, nil
}

// Forget drops the cached ranking of a single query
func (s *CacheService) Forget(ctx context.Context, req WrappedRequest) error {
	account, err := domain.ParseAccountInput(req.Account)
	if err != nil {
		return err
	}
	window, err := domain.ParseWindow(req.Since, req.Until)
	if err != nil {
		return err
	}
	identity, err := domain.ParseAuthorIdentity(string(req.Identity))
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, CacheKey(account.Handle, window, req.TopN, identity))
}

// CleanExpired removes expired cache entries
func (s *CacheService) CleanExpired(ctx context.Context) (int, error) {
	return s.cache.CleanExpired(ctx)
}

// Clear removes all cache entries
func (s *CacheService) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
