package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day0   = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	window = FetchWindow{Since: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
	bob    = AuthorRef{Handle: "bob", AvatarURL: "A"}
	carol  = AuthorRef{Handle: "carol", AvatarURL: "B"}
	dave   = AuthorRef{Handle: "dave", AvatarURL: "D"}
)

func like(id int64, at time.Time, author AuthorRef) LikeItem {
	return LikeItem{ID: id, CreatedAt: at, Author: author}
}

func TestRankAuthors(t *testing.T) {
	t.Run("counts and orders authors", func(t *testing.T) {
		items := []LikeItem{
			like(6, day0, bob),
			like(5, day0.Add(-time.Hour), carol),
			like(4, day0.Add(-2*time.Hour), bob),
			like(3, day0.Add(-3*time.Hour), bob),
		}

		got := RankAuthors(items, window, 5, IdentityHandle)

		assert.Equal(t, []RankedAuthor{
			{Author: bob, Count: 3},
			{Author: carol, Count: 1},
		}, got)
	})

	t.Run("drops items outside the window", func(t *testing.T) {
		w := FetchWindow{Since: day0.Add(-90 * time.Minute), Until: day0}
		items := []LikeItem{
			like(4, day0.Add(time.Hour), dave),
			like(3, day0, bob),
			like(2, day0.Add(-time.Hour), carol),
			like(1, day0.Add(-2*time.Hour), dave),
		}

		got := RankAuthors(items, w, AllAuthors, IdentityHandle)

		assert.Equal(t, []RankedAuthor{
			{Author: bob, Count: 1},
			{Author: carol, Count: 1},
		}, got)
	})

	t.Run("ties keep first appearance order", func(t *testing.T) {
		items := []LikeItem{
			like(4, day0, carol),
			like(3, day0, bob),
			like(2, day0, bob),
			like(1, day0, carol),
		}

		got := RankAuthors(items, window, AllAuthors, IdentityHandle)

		require.Len(t, got, 2)
		assert.Equal(t, "carol", got[0].Author.Handle)
		assert.Equal(t, "bob", got[1].Author.Handle)
	})

	t.Run("truncates to topN", func(t *testing.T) {
		items := []LikeItem{
			like(3, day0, bob),
			like(2, day0, carol),
			like(1, day0, dave),
		}

		assert.Len(t, RankAuthors(items, window, 2, IdentityHandle), 2)
		assert.Len(t, RankAuthors(items, window, AllAuthors, IdentityHandle), 3)
		assert.Empty(t, RankAuthors(items, window, 0, IdentityHandle))
	})

	t.Run("empty input yields empty ranking", func(t *testing.T) {
		got := RankAuthors(nil, window, 5, IdentityHandle)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("inverted window yields nothing", func(t *testing.T) {
		w := FetchWindow{Since: day0, Until: day0.Add(-time.Hour)}
		items := []LikeItem{like(1, day0, bob), like(2, day0.Add(-30*time.Minute), carol)}
		assert.Empty(t, RankAuthors(items, w, AllAuthors, IdentityHandle))
	})
}

func TestRankAuthors_AvatarChange(t *testing.T) {
	oldAvatar := AuthorRef{Handle: "bob", AvatarURL: "old"}
	newAvatar := AuthorRef{Handle: "bob", AvatarURL: "new"}
	items := []LikeItem{
		like(3, day0, newAvatar),
		like(2, day0.Add(-time.Hour), oldAvatar),
		like(1, day0.Add(-2*time.Hour), oldAvatar),
	}

	t.Run("handle identity merges avatars", func(t *testing.T) {
		got := RankAuthors(items, window, AllAuthors, IdentityHandle)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].Count)
		assert.Equal(t, "new", got[0].Author.AvatarURL, "most recent avatar represents the author")
	})

	t.Run("handle+avatar identity splits avatars", func(t *testing.T) {
		got := RankAuthors(items, window, AllAuthors, IdentityHandleAvatar)
		assert.Equal(t, []RankedAuthor{
			{Author: oldAvatar, Count: 2},
			{Author: newAvatar, Count: 1},
		}, got)
	})
}

func TestRankAuthors_Properties(t *testing.T) {
	authors := []AuthorRef{bob, carol, dave, {Handle: "erin", AvatarURL: "E"}}
	var items []LikeItem
	for i := 0; i < 97; i++ {
		at := day0.Add(-time.Duration(i) * 37 * time.Hour)
		items = append(items, like(int64(1000-i), at, authors[(i*i+3*i)%len(authors)]))
	}
	w := FetchWindow{Since: day0.AddDate(0, -3, 0), Until: day0.AddDate(0, 0, -2)}

	filtered := FilterWindow(items, w)
	distinct := make(map[string]struct{})
	for _, item := range filtered {
		distinct[item.Author.Handle] = struct{}{}
	}

	for _, topN := range []int{0, 1, 2, 3, 10, AllAuthors} {
		got := RankAuthors(items, w, topN, IdentityHandle)
		if topN >= 0 {
			assert.LessOrEqual(t, len(got), topN)
		}
		assert.LessOrEqual(t, len(got), len(distinct))
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count, "counts must be non-increasing")
		}
	}

	assert.Equal(t, filtered, FilterWindow(filtered, w), "filtering must be idempotent")
}

func TestParseAuthorIdentity(t *testing.T) {
	tests := []struct {
		in      string
		want    AuthorIdentity
		wantErr bool
	}{
		{"", IdentityHandle, false},
		{"handle", IdentityHandle, false},
		{"handle+avatar", IdentityHandleAvatar, false},
		{"avatar", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAuthorIdentity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
