package domain

import "errors"

var (
	// Remote account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUnauthorized    = errors.New("not authorized to read this account's likes")

	// Network and rate limiting errors
	ErrTransientFetch = errors.New("fetching likes failed")
	ErrRateLimited    = errors.New("rate limited by the API")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Cache errors
	ErrCacheExpired = errors.New("cache expired")
	ErrCacheMiss    = errors.New("cache miss")
)
