package domain

import (
	"fmt"
	"sort"
)

// AllAuthors disables truncation in RankAuthors
const AllAuthors = -1

// AuthorIdentity decides which AuthorRefs count as the same author
type AuthorIdentity string

const (
	// IdentityHandle groups by handle only; the most recent avatar wins
	IdentityHandle AuthorIdentity = "handle"
	// IdentityHandleAvatar groups by the full (handle, avatar) pair, so an
	// avatar change splits one author into two entries
	IdentityHandleAvatar AuthorIdentity = "handle+avatar"
)

// ParseAuthorIdentity validates an identity name, defaulting to handle
func ParseAuthorIdentity(s string) (AuthorIdentity, error) {
	switch AuthorIdentity(s) {
	case "", IdentityHandle:
		return IdentityHandle, nil
	case IdentityHandleAvatar:
		return IdentityHandleAvatar, nil
	default:
		return "", fmt.Errorf("%w: unknown author identity %q (use handle or handle+avatar)", ErrInvalidInput, s)
	}
}

func (id AuthorIdentity) key(a AuthorRef) AuthorRef {
	if id == IdentityHandleAvatar {
		return a
	}
	return AuthorRef{Handle: a.Handle}
}

// FilterWindow keeps the items created inside w, preserving order
func FilterWindow(items []LikeItem, w FetchWindow) []LikeItem {
	filtered := make([]LikeItem, 0, len(items))
	for _, item := range items {
		if w.Contains(item.CreatedAt) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// RankAuthors counts liked posts per author inside w and returns the topN
// authors by count. Ties keep the order in which authors first appear in
// items. topN < 0 returns every author.
func RankAuthors(items []LikeItem, w FetchWindow, topN int, identity AuthorIdentity) []RankedAuthor {
	index := make(map[AuthorRef]int)
	var ranked []RankedAuthor

	for _, item := range FilterWindow(items, w) {
		k := identity.key(item.Author)
		if i, ok := index[k]; ok {
			ranked[i].Count++
			continue
		}
		index[k] = len(ranked)
		ranked = append(ranked, RankedAuthor{Author: item.Author, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if topN >= 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	if ranked == nil {
		ranked = []RankedAuthor{}
	}
	return ranked
}
