// Package twitter reads liked posts from the Twitter v1.1 favorites API.
package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"

	"github.com/devbush/likewrapped/internal/config"
	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

const (
	DefaultBaseURL = "https://api.twitter.com"
	favoritesPath  = "/1.1/favorites/list.json"
)

// Options configure the API client
type Options struct {
	BaseURL     string
	Credentials config.Credentials
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Client is an OAuth1-signed client for the favorites endpoint
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a favorites API client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	creds := opts.Credentials
	signer := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessKey, creds.AccessSecret)

	httpClient := resty.NewWithClient(signer.Client(oauth1.NoContext, token)).
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: opts.Logger,
	}
}

// GetFavorites fetches one page of the account's likes, newest first
func (c *Client) GetFavorites(ctx context.Context, q ports.FavoritesQuery) (ports.FavoritesPage, error) {
	params := map[string]string{
		"screen_name":      q.Handle,
		"count":            strconv.Itoa(q.Count),
		"include_entities": "false",
		"tweet_mode":       "extended",
	}
	if q.MaxID > 0 {
		params["max_id"] = strconv.FormatInt(q.MaxID, 10)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(favoritesPath)
	if err != nil {
		return ports.FavoritesPage{}, fmt.Errorf("%w: request favorites: %w", domain.ErrTransientFetch, err)
	}

	c.logger.Debug("favorites page",
		"account", q.Handle,
		"max_id", q.MaxID,
		"status", resp.StatusCode(),
		"rate_limit_remaining", resp.Header().Get("x-rate-limit-remaining"),
	)

	if resp.IsError() {
		return ports.FavoritesPage{}, classify(resp.StatusCode(), resp.Body())
	}

	statuses, err := decodeStatuses(resp.Body())
	if err != nil {
		return ports.FavoritesPage{}, fmt.Errorf("%w: decode favorites: %w", domain.ErrTransientFetch, err)
	}

	return ports.FavoritesPage{
		Items:    mapStatuses(statuses, c.logger),
		Returned: len(statuses),
		OldestID: oldestID(statuses),
	}, nil
}

var _ ports.FavoritesSource = (*Client)(nil)
