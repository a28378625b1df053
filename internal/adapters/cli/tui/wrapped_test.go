package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/likewrapped/internal/application"
	"github.com/devbush/likewrapped/internal/domain"
)

func stubFetch(result *application.WrappedResult, err error) (FetchFunc, *[]string) {
	var calls []string
	return func(ctx context.Context, account string) (*application.WrappedResult, error) {
		calls = append(calls, account)
		return result, err
	}, &calls
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestWrappedModel_EnterStartsFetch(t *testing.T) {
	result := &application.WrappedResult{
		Account: &domain.Account{Handle: "alice"},
		Window:  domain.FetchWindow{Since: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		Authors: []domain.RankedAuthor{
			{Author: domain.AuthorRef{Handle: "bob", AvatarURL: "A"}, Count: 3},
		},
	}
	fetch, calls := stubFetch(result, nil)

	var m tea.Model = NewWrappedModel(context.Background(), fetch)
	m = typeText(m, "alice")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, stateLoading, m.(WrappedModel).state)
	assert.Contains(t, m.View(), "Fetching likes of @alice")

	// Run the fetch command directly rather than through the batch.
	msg := m.(WrappedModel).runFetch("alice")()
	m, _ = m.Update(msg)

	assert.Equal(t, []string{"alice"}, *calls)
	assert.Equal(t, stateDone, m.(WrappedModel).state)
	assert.Same(t, result, m.(WrappedModel).Result())

	view := m.View()
	assert.Contains(t, view, "#TwitterWrapped 2022: Top authors for @alice")
	assert.Contains(t, view, "https://twitter.com/alice")
	assert.Contains(t, view, "@bob")
	assert.Contains(t, view, "https://twitter.com/bob")
}

func TestWrappedModel_EmptyInputIgnored(t *testing.T) {
	fetch, _ := stubFetch(nil, nil)
	var m tea.Model = NewWrappedModel(context.Background(), fetch)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stateInput, m.(WrappedModel).state)
}

func TestWrappedModel_ShowsErrorsAndEmptyResults(t *testing.T) {
	tests := []struct {
		name string
		msg  resultMsg
		want string
	}{
		{"not found", resultMsg{err: domain.ErrAccountNotFound}, "Account not found"},
		{"unauthorized", resultMsg{err: domain.ErrUnauthorized}, "not accessible"},
		{"transient", resultMsg{err: fmt.Errorf("%w: boom", domain.ErrTransientFetch)}, "Something went wrong"},
		{"rate limited", resultMsg{err: fmt.Errorf("%w: %w", domain.ErrTransientFetch, domain.ErrRateLimited)}, "Rate limited"},
		{"empty", resultMsg{result: &application.WrappedResult{
			Account: &domain.Account{Handle: "alice"},
			Authors: []domain.RankedAuthor{},
		}}, "No results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetch, _ := stubFetch(nil, nil)
			var m tea.Model = NewWrappedModel(context.Background(), fetch)
			m, _ = m.Update(tt.msg)
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestWrappedModel_DoneStateKeys(t *testing.T) {
	fetch, _ := stubFetch(nil, nil)
	var m tea.Model = NewWrappedModel(context.Background(), fetch)
	m = typeText(m, "alice")
	m, _ = m.Update(resultMsg{err: domain.ErrAccountNotFound})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	wm := m.(WrappedModel)
	assert.Equal(t, stateInput, wm.state)
	assert.Empty(t, wm.input.Value())

	m, _ = m.Update(resultMsg{err: domain.ErrAccountNotFound})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestErrorMessage_InvalidInputPassesThrough(t *testing.T) {
	err := fmt.Errorf("%w: bad handle", domain.ErrInvalidInput)
	assert.True(t, strings.Contains(ErrorMessage(err), "bad handle"))
}
