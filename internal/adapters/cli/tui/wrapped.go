package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/likewrapped/internal/application"
	"github.com/devbush/likewrapped/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	rankStyle   = lipgloss.NewStyle().Bold(true).Width(4).Align(lipgloss.Right)
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// FetchFunc ranks the liked authors of one account
type FetchFunc func(ctx context.Context, account string) (*application.WrappedResult, error)

type pageState int

const (
	stateInput pageState = iota
	stateLoading
	stateDone
)

type resultMsg struct {
	result *application.WrappedResult
	err    error
}

// WrappedModel is the interactive page: prompt for an account, rank its
// liked authors, show the list, repeat.
type WrappedModel struct {
	ctx     context.Context
	fetch   FetchFunc
	input   textinput.Model
	spinner spinner.Model
	state   pageState
	account string
	result  *application.WrappedResult
	err     error
}

// NewWrappedModel creates the page
func NewWrappedModel(ctx context.Context, fetch FetchFunc) WrappedModel {
	ti := textinput.New()
	ti.Placeholder = "Twitter account"
	ti.Prompt = "@ "
	ti.CharLimit = 64
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return WrappedModel{
		ctx:     ctx,
		fetch:   fetch,
		input:   ti,
		spinner: sp,
	}
}

func (m WrappedModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m WrappedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		switch m.state {
		case stateInput:
			if msg.Type == tea.KeyEnter {
				account := strings.TrimSpace(m.input.Value())
				if account == "" {
					return m, nil
				}
				m.account = account
				m.state = stateLoading
				m.result, m.err = nil, nil
				return m, tea.Batch(m.spinner.Tick, m.runFetch(account))
			}
		case stateDone:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "enter":
				m.state = stateInput
				m.input.SetValue("")
				return m, textinput.Blink
			}
			return m, nil
		case stateLoading:
			return m, nil
		}

	case resultMsg:
		m.state = stateDone
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m WrappedModel) runFetch(account string) tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		result, err := fetch(ctx, account)
		return resultMsg{result: result, err: err}
	}
}

func (m WrappedModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Twitter Wrapped"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("The authors an account liked most."))
	sb.WriteString("\n\n")

	switch m.state {
	case stateInput:
		sb.WriteString(m.input.View())
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render("(enter to rank, esc to quit)"))
	case stateLoading:
		sb.WriteString(fmt.Sprintf("%s Fetching likes of @%s...", m.spinner.View(), domain.NormalizeHandle(m.account)))
	case stateDone:
		sb.WriteString(m.resultView())
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("(enter for another account, q to quit)"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m WrappedModel) resultView() string {
	if m.err != nil {
		return errorStyle.Render(ErrorMessage(m.err)) + "\n"
	}
	if m.result == nil || len(m.result.Authors) == 0 {
		return "No results\n"
	}

	var sb strings.Builder
	header := FormatHeader(m.result.Account.Handle, m.result.Window.Since.Year())
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(m.result.Account.AccountURL()))
	sb.WriteString("\n\n")

	width := HandleWidth(m.result.Authors)
	for i, a := range m.result.Authors {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			rankStyle.Render(fmt.Sprintf("%d.", i+1)),
			" ",
			handleStyle.Width(width).Render("@"+a.Author.Handle),
			"  ",
			countStyle.Render(FormatCount(int64(a.Count))),
			"  ",
			dimStyle.Render(a.Author.ProfileURL()),
		))
		sb.WriteString("\n")
	}
	if m.result.FromCache {
		sb.WriteString(dimStyle.Render("(cached)"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Result returns the last ranking shown
func (m WrappedModel) Result() *application.WrappedResult {
	return m.result
}

// RunWrapped runs the interactive page until the user quits
func RunWrapped(ctx context.Context, fetch FetchFunc) error {
	p := tea.NewProgram(NewWrappedModel(ctx, fetch), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ErrorMessage turns a ranking error into a message for the user
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Account not found. Check the handle and try again."
	case errors.Is(err, domain.ErrUnauthorized):
		return "This account's likes are not accessible (protected account or invalid credentials)."
	case errors.Is(err, domain.ErrRateLimited):
		return "Rate limited by the API, please try again in a few minutes."
	case errors.Is(err, domain.ErrTransientFetch):
		return "Something went wrong while fetching likes, please try again later."
	default:
		return err.Error()
	}
}
