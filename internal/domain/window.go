package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FetchWindow bounds liked items by creation time. Both bounds are
// inclusive; a zero Until leaves the window open towards the present.
type FetchWindow struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until,omitempty"`
}

// Bounded reports whether the window has an upper bound
func (w FetchWindow) Bounded() bool {
	return !w.Until.IsZero()
}

// Contains reports whether t falls inside the window
func (w FetchWindow) Contains(t time.Time) bool {
	if t.Before(w.Since) {
		return false
	}
	if w.Bounded() && t.After(w.Until) {
		return false
	}
	return true
}

// String renders the window for logs and cache keys
func (w FetchWindow) String() string {
	until := "now"
	if w.Bounded() {
		until = w.Until.UTC().Format(time.RFC3339)
	}
	return w.Since.UTC().Format(time.RFC3339) + ".." + until
}

// ParseWindow builds a window from ISO-8601 strings. since is required,
// until may be empty. A bare date means 00:00 UTC of that day for either
// bound, so until "2022-12-31" stops at the first instant of Dec 31 and
// excludes the rest of it; pass "2023-01-01" or a full timestamp to keep it.
func ParseWindow(since, until string) (FetchWindow, error) {
	start, err := ParseTimestamp(since)
	if err != nil {
		return FetchWindow{}, fmt.Errorf("since: %w", err)
	}

	w := FetchWindow{Since: start}
	if strings.TrimSpace(until) == "" {
		return w, nil
	}

	end, err := ParseTimestamp(until)
	if err != nil {
		return FetchWindow{}, fmt.Errorf("until: %w", err)
	}
	w.Until = end
	return w, nil
}

// ParseTimestamp accepts a date (2022-01-01, read as UTC midnight) or an
// RFC 3339 timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidInput)
	}

	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date", ErrInvalidInput, s)
}
