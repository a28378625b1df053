package ports

import (
	"context"

	"github.com/devbush/likewrapped/internal/domain"
)

// FavoritesQuery describes one page request
type FavoritesQuery struct {
	Handle string
	Count  int
	MaxID  int64 // 0 requests the newest page
}

// FavoritesPage is one page of likes as served by the API. Items may be
// shorter than Returned when some entries could not be decoded.
type FavoritesPage struct {
	Items    []domain.LikeItem
	Returned int   // entries in the raw response
	OldestID int64 // smallest raw ID on the page, 0 when empty
}

// FavoritesSource retrieves pages of an account's liked posts
type FavoritesSource interface {
	// GetFavorites returns one page of likes, newest first. It returns
	// domain.ErrAccountNotFound or domain.ErrUnauthorized when the account
	// cannot be read; any other error is transient.
	GetFavorites(ctx context.Context, q FavoritesQuery) (FavoritesPage, error)
}
