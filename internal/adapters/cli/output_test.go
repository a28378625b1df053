package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/likewrapped/internal/application"
	"github.com/devbush/likewrapped/internal/config"
	"github.com/devbush/likewrapped/internal/domain"
)

func aliceResult() *application.WrappedResult {
	return &application.WrappedResult{
		Account:  &domain.Account{Handle: "alice"},
		Window:   domain.FetchWindow{Since: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		Identity: domain.IdentityHandle,
		Authors: []domain.RankedAuthor{
			{Author: domain.AuthorRef{Handle: "bob", AvatarURL: "A"}, Count: 3},
			{Author: domain.AuthorRef{Handle: "carol", AvatarURL: "B"}, Count: 1},
		},
		LikeCount: 4,
	}
}

func TestWriteResult_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, aliceResult(), "text"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#TwitterWrapped 2022: Top authors for @alice", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], " 1. @bob "))
	assert.True(t, strings.HasSuffix(lines[1], "  A"))
	assert.True(t, strings.HasPrefix(lines[2], " 2. @carol "))
}

func TestWriteResult_NoResults(t *testing.T) {
	result := aliceResult()
	result.Authors = []domain.RankedAuthor{}

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, result, "text"))
	assert.Equal(t, "No results\n", buf.String())
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, aliceResult(), "json"))

	var body struct {
		Account   string `json:"account"`
		LikeCount int    `json:"like_count"`
		Authors   []struct {
			Rank   int    `json:"rank"`
			Handle string `json:"handle"`
			Count  int    `json:"count"`
		} `json:"authors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
	assert.Equal(t, "alice", body.Account)
	assert.Equal(t, 4, body.LikeCount)
	require.Len(t, body.Authors, 2)
	assert.Equal(t, 1, body.Authors[0].Rank)
	assert.Equal(t, "bob", body.Authors[0].Handle)
}

func TestWriteResult_UnknownFormat(t *testing.T) {
	err := writeResult(&bytes.Buffer{}, aliceResult(), "srt")
	assert.Error(t, err)
}

func TestBuildRequest(t *testing.T) {
	cfg := config.DefaultConfig()

	t.Run("config defaults", func(t *testing.T) {
		cmd := NewRootCmd()
		require.NoError(t, cmd.ParseFlags(nil))

		req := buildRequest(cmd, cfg, "alice")
		assert.Equal(t, application.WrappedRequest{
			Account:  "alice",
			Since:    "2022-01-01",
			TopN:     5,
			Identity: domain.IdentityHandle,
		}, req)
	})

	t.Run("flags override", func(t *testing.T) {
		cmd := NewRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--since", "2023-01-01",
			"--until", "2023-06-30",
			"--top", "-1",
			"--identity", "handle+avatar",
			"--no-cache",
		}))

		req := buildRequest(cmd, cfg, "alice")
		assert.Equal(t, application.WrappedRequest{
			Account:  "alice",
			Since:    "2023-01-01",
			Until:    "2023-06-30",
			TopN:     domain.AllAuthors,
			Identity: domain.IdentityHandleAvatar,
			NoCache:  true,
		}, req)
	})

	t.Run("explicit zero top", func(t *testing.T) {
		cmd := NewRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--top", "0"}))

		assert.Equal(t, 0, buildRequest(cmd, cfg, "alice").TopN)
	})
}

func TestProcessBatch(t *testing.T) {
	rank := func(ctx context.Context, handle string) (*application.WrappedResult, error) {
		switch handle {
		case "ghost":
			return &application.WrappedResult{Authors: []domain.RankedAuthor{}}, domain.ErrAccountNotFound
		case "broken":
			return nil, fmt.Errorf("%w: timeout", domain.ErrTransientFetch)
		}
		r := aliceResult()
		r.Account = &domain.Account{Handle: handle}
		r.FromCache = handle == "cached"
		return r, nil
	}

	handles := []string{"alice", "ghost", "cached", "broken"}
	summary := processBatch(context.Background(), handles, 3, rank)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)

	require.Len(t, summary.Results, 4)
	for i, h := range handles {
		assert.Equal(t, h, summary.Results[i].Handle)
	}
	assert.True(t, summary.Results[2].Cached)
	assert.Contains(t, summary.Results[1].Error, "Account not found")

	failed := summary.FailedResults()
	require.Len(t, failed, 2)
	assert.Equal(t, "ghost", failed[0].Handle)
	assert.Equal(t, "broken", failed[1].Handle)

	var out, errOut bytes.Buffer
	err := reportBatch(&out, &errOut, summary, "text")
	assert.EqualError(t, err, "2 of 4 accounts failed")
	assert.Contains(t, out.String(), "Top authors for @alice")
	assert.Contains(t, out.String(), "Top authors for @cached")
	assert.NotContains(t, out.String(), "@ghost")
	assert.Contains(t, errOut.String(), "Ranked 2 of 4 accounts")
	assert.Contains(t, errOut.String(), "@broken:")
}
