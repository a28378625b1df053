package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

// WrappedRequest is a ranking query as supplied by a caller
type WrappedRequest struct {
	Account  string
	Since    string // ISO-8601 date or timestamp
	Until    string // optional
	TopN     int    // domain.AllAuthors for every author
	Identity domain.AuthorIdentity
	NoCache  bool
}

// WrappedResult contains the ranked authors for one account
type WrappedResult struct {
	Account   *domain.Account
	Window    domain.FetchWindow
	Identity  domain.AuthorIdentity
	Authors   []domain.RankedAuthor
	LikeCount int // likes inside the window
	FetchedAt time.Time
	FromCache bool
}

// WrappedService fetches, ranks and memoizes an account's liked authors
type WrappedService struct {
	fetcher  *LikesFetcher
	cache    ports.CacheStore
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewWrappedService creates a ranking service. cache may be nil.
func NewWrappedService(
	fetcher *LikesFetcher,
	cache ports.CacheStore,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *WrappedService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WrappedService{
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// TopAuthors returns the most liked authors of an account inside the
// requested window. When the account is missing or its likes are private
// the result is empty and the error is domain.ErrAccountNotFound or
// domain.ErrUnauthorized.
func (s *WrappedService) TopAuthors(ctx context.Context, req WrappedRequest) (*WrappedResult, error) {
	account, err := domain.ParseAccountInput(req.Account)
	if err != nil {
		return nil, err
	}

	window, err := domain.ParseWindow(req.Since, req.Until)
	if err != nil {
		return nil, err
	}

	identity, err := domain.ParseAuthorIdentity(string(req.Identity))
	if err != nil {
		return nil, err
	}

	key := CacheKey(account.Handle, window, req.TopN, identity)
	logger := s.logger.With("account", account.Handle)

	if !req.NoCache && s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil && cached.Snapshot != nil {
			logger.Debug("serving ranking from cache", "expires_at", cached.ExpiresAt)
			return &WrappedResult{
				Account:   account,
				Window:    window,
				Identity:  identity,
				Authors:   cached.Snapshot.Authors,
				LikeCount: cached.Snapshot.LikeCount,
				FetchedAt: cached.Snapshot.FetchedAt,
				FromCache: true,
			}, nil
		}
	}

	result := &WrappedResult{
		Account:   account,
		Window:    window,
		Identity:  identity,
		Authors:   []domain.RankedAuthor{},
		FetchedAt: s.now(),
	}

	likes, err := s.fetcher.FetchAllSince(ctx, account.Handle, window.Since)
	if err != nil {
		return result, err
	}

	result.LikeCount = len(domain.FilterWindow(likes, window))
	result.Authors = domain.RankAuthors(likes, window, req.TopN, identity)
	logger.Info("ranked liked authors", "likes", result.LikeCount, "top_authors", handles(result.Authors))

	if len(result.Authors) > 0 && s.cache != nil {
		s.store(ctx, key, result, req.TopN)
	}

	return result, nil
}

func (s *WrappedService) store(ctx context.Context, key string, result *WrappedResult, topN int) {
	now := s.now()
	item := &ports.CachedItem{
		Snapshot: &ports.Snapshot{
			Handle:    result.Account.Handle,
			Window:    result.Window,
			Identity:  string(result.Identity),
			TopN:      topN,
			LikeCount: result.LikeCount,
			Authors:   result.Authors,
			FetchedAt: result.FetchedAt,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(s.cacheTTL),
	}

	// Cache failures are non-fatal
	if err := s.cache.Set(ctx, key, item); err != nil {
		s.logger.Warn("caching ranking failed", "key", key, "error", err)
	}
}

// CacheKey derives a filesystem-safe key from every input of a query
func CacheKey(handle string, window domain.FetchWindow, topN int, identity domain.AuthorIdentity) string {
	handle = strings.ToLower(domain.NormalizeHandle(handle))
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%s", handle, window, topN, identity))
	return handle + "_" + hex.EncodeToString(sum[:6])
}

func handles(authors []domain.RankedAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Author.Handle)
	}
	return strings.Join(names, ", ")
}
