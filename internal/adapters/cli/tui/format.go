package tui

import (
	"fmt"
	"strings"

	"github.com/devbush/likewrapped/internal/domain"
)

// FormatCount formats a number with K/M suffix
// Examples: 892 -> "892", 1234 -> "1.2K", 1500000 -> "1.5M"
func FormatCount(count int64) string {
	if count >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return fmt.Sprintf("%d", count)
}

// FormatSize formats a byte count for humans
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatHeader renders the title line of a ranking
// Example: "#TwitterWrapped 2022: Top authors for @alice"
func FormatHeader(handle string, year int) string {
	return fmt.Sprintf("#TwitterWrapped %d: Top authors for @%s", year, handle)
}

// HandleWidth returns the column width that fits every "@handle"
func HandleWidth(authors []domain.RankedAuthor) int {
	width := 0
	for _, a := range authors {
		if n := len(a.Author.Handle) + 1; n > width {
			width = n
		}
	}
	return width
}

// FormatAuthorLine formats one ranked author
// Example: " 1. @bob    3  https://pbs.twimg.com/a.jpg"
func FormatAuthorLine(rank int, a domain.RankedAuthor, handleWidth int) string {
	handle := "@" + a.Author.Handle
	line := fmt.Sprintf("%2d. %-*s  %5s", rank, handleWidth, handle, FormatCount(int64(a.Count)))
	if a.Author.AvatarURL != "" {
		line += "  " + a.Author.AvatarURL
	}
	return line
}

// FormatRanking renders the header and one line per author
func FormatRanking(handle string, year int, authors []domain.RankedAuthor) string {
	var sb strings.Builder
	sb.WriteString(FormatHeader(handle, year))
	sb.WriteString("\n")

	width := HandleWidth(authors)
	for i, a := range authors {
		sb.WriteString(FormatAuthorLine(i+1, a, width))
		sb.WriteString("\n")
	}
	return sb.String()
}
