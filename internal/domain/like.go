package domain

import (
	"fmt"
	"time"
)

// AuthorRef identifies the author of a liked post
type AuthorRef struct {
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileURL builds the profile link for an author
func (a AuthorRef) ProfileURL() string {
	return fmt.Sprintf("https://twitter.com/%s", a.Handle)
}

// LikeItem is a single liked post. IDs decrease with age.
type LikeItem struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Author    AuthorRef `json:"author"`
	Text      string    `json:"text,omitempty"`
}

// RankedAuthor pairs an author with the number of liked posts
type RankedAuthor struct {
	Author AuthorRef `json:"author"`
	Count  int       `json:"count"`
}
