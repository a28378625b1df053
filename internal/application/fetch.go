package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

const (
	DefaultPageSize = 200
	// The favorites endpoint sometimes returns a little less than a full
	// page even when older likes remain.
	DefaultNearFullThreshold = 190
)

// FetcherOptions tunes pagination
type FetcherOptions struct {
	PageSize          int
	NearFullThreshold int
	MaxPages          int // 0 means no limit
}

// LikesFetcher pages backwards through an account's likes
type LikesFetcher struct {
	source ports.FavoritesSource
	opts   FetcherOptions
	logger *slog.Logger
}

// NewLikesFetcher creates a fetcher, filling unset options with defaults
func NewLikesFetcher(source ports.FavoritesSource, opts FetcherOptions, logger *slog.Logger) *LikesFetcher {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.NearFullThreshold <= 0 || opts.NearFullThreshold > opts.PageSize {
		opts.NearFullThreshold = opts.PageSize * DefaultNearFullThreshold / DefaultPageSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LikesFetcher{source: source, opts: opts, logger: logger}
}

// FetchAllSince collects likes page by page until a page reaches past since,
// a page comes back short or empty, or a request fails. Pages are returned
// in fetch order, newest first.
//
// Only a not-found or unauthorized answer to the first request is returned
// as an error. Other failures end the walk and keep what was collected.
func (f *LikesFetcher) FetchAllSince(ctx context.Context, account string, since time.Time) ([]domain.LikeItem, error) {
	handle := domain.NormalizeHandle(account)
	logger := f.logger.With("account", handle)

	page, err := f.source.GetFavorites(ctx, ports.FavoritesQuery{
		Handle: handle,
		Count:  f.opts.PageSize,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return []domain.LikeItem{}, err
		}
		logger.Warn("fetching likes failed", "page", 1, "error", err)
		return []domain.LikeItem{}, nil
	}

	likes := append([]domain.LikeItem{}, page.Items...)
	pages := 1
	for f.shouldContinue(likes, page, pages, since) {
		if err := ctx.Err(); err != nil {
			logger.Warn("stopped fetching likes", "pages", pages, "error", err)
			break
		}

		page, err = f.source.GetFavorites(ctx, ports.FavoritesQuery{
			Handle: handle,
			Count:  f.opts.PageSize,
			MaxID:  nextMaxID(likes, page),
		})
		pages++
		if err != nil {
			logger.Warn("fetching likes failed, keeping partial results",
				"page", pages, "collected", len(likes), "error", err)
			break
		}
		if dropped := page.Returned - len(page.Items); dropped > 0 {
			logger.Debug("page had undecodable likes", "page", pages, "dropped", dropped)
		}

		likes = append(likes, page.Items...)
	}

	logger.Debug("fetched likes", "count", len(likes), "pages", pages)
	return likes, nil
}

// shouldContinue judges fullness by the raw entry count so that entries
// dropped during decoding do not end the walk early.
func (f *LikesFetcher) shouldContinue(likes []domain.LikeItem, last ports.FavoritesPage, pages int, since time.Time) bool {
	if last.Returned == 0 || len(likes) == 0 {
		return false
	}
	if last.Returned < f.opts.NearFullThreshold {
		return false
	}
	if f.opts.MaxPages > 0 && pages >= f.opts.MaxPages {
		return false
	}
	return !likes[len(likes)-1].CreatedAt.Before(since)
}

// nextMaxID points just below the oldest entry seen, decoded or not
func nextMaxID(likes []domain.LikeItem, last ports.FavoritesPage) int64 {
	oldest := likes[len(likes)-1].ID
	if last.OldestID > 0 && last.OldestID < oldest {
		oldest = last.OldestID
	}
	return oldest - 1
}
