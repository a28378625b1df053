package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Account is the account whose likes are analyzed
type Account struct {
	Handle string
}

// AccountURL builds the profile URL for an account
func (a *Account) AccountURL() string {
	return fmt.Sprintf("https://twitter.com/%s", a.Handle)
}

var (
	// Matches twitter.com/handle and x.com/handle (not /status/ links)
	accountURLPattern = regexp.MustCompile(`(?:twitter|x)\.com/([A-Za-z0-9_]+)/?(?:\?.*)?$`)
	// Valid handle pattern
	handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)
)

// NormalizeHandle trims whitespace and a leading "@"
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// ParseAccountInput extracts an Account from a profile URL or handle
func ParseAccountInput(input string) (*Account, error) {
	input = NormalizeHandle(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty account", ErrInvalidInput)
	}

	if matches := accountURLPattern.FindStringSubmatch(input); len(matches) > 1 {
		return &Account{Handle: matches[1]}, nil
	}

	if handlePattern.MatchString(input) {
		return &Account{Handle: input}, nil
	}

	return nil, fmt.Errorf("%w: invalid account URL or handle: %s", ErrInvalidInput, input)
}
