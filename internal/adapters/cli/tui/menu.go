package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
)

// MenuAction identifies what the interactive menu asks the CLI to do
type MenuAction string

const (
	ActionNone       MenuAction = ""
	ActionWrapped    MenuAction = "wrapped"
	ActionCacheStats MenuAction = "cache"
	ActionCacheClean MenuAction = "clean"
)

// MenuOption is one menu line. Disabled options are shown with their
// hint and cannot be chosen.
type MenuOption struct {
	Label    string
	Hint     string
	Action   MenuAction
	Disabled bool
}

// MainMenuOptions returns the top-level likewrapped actions. Ranking is
// disabled until API credentials are configured.
func MainMenuOptions(hasCredentials bool, cacheBackend string) []MenuOption {
	wrapped := MenuOption{
		Label:  "Rank an account's liked authors",
		Hint:   "top 10 authors of the year's likes",
		Action: ActionWrapped,
	}
	if !hasCredentials {
		wrapped.Disabled = true
		wrapped.Hint = "set TWITTER_* credentials first"
	}

	return []MenuOption{
		wrapped,
		{Label: "Show cache statistics", Hint: cacheBackend + " backend", Action: ActionCacheStats},
		{Label: "Remove expired cache entries", Hint: "keeps fresh rankings", Action: ActionCacheClean},
	}
}

// MenuModel is the bubbletea model for the main menu
type MenuModel struct {
	title    string
	options  []MenuOption
	cursor   int
	selected MenuAction
}

// NewMenuModel creates a menu with the cursor on the first enabled option
func NewMenuModel(title string, options []MenuOption) MenuModel {
	m := MenuModel{
		title:   title,
		options: options,
	}
	if len(options) > 0 && options[0].Disabled {
		m.cursor = m.step(0, 1)
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// step returns the next enabled index from i in direction dir, or i when
// there is none.
func (m MenuModel) step(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.options); j += dir {
		if !m.options[j].Disabled {
			return j
		}
	}
	return i
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = m.step(m.cursor, -1)
	case "down", "j":
		m.cursor = m.step(m.cursor, 1)
	case "enter":
		if len(m.options) == 0 || m.options[m.cursor].Disabled {
			return m, nil
		}
		m.selected = m.options[m.cursor].Action
		return m, tea.Quit
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	default:
		// digits jump straight to an option
		if r := key.Runes; len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
			i := int(r[0] - '1')
			if i < len(m.options) && !m.options[i].Disabled {
				m.selected = m.options[i].Action
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "? %s\n\n", m.title)

	for i, opt := range m.options {
		cursor := "  "
		style := normalStyle
		switch {
		case opt.Disabled:
			style = disabledStyle
		case i == m.cursor:
			cursor = "> "
			style = selectedStyle
		}
		fmt.Fprintf(&sb, "%s%d. %s", cursor, i+1, style.Render(opt.Label))
		if opt.Hint != "" {
			sb.WriteString(" " + dimStyle.Render("("+opt.Hint+")"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n(up/down or 1-9 to choose, enter to select, q to quit)\n")
	return sb.String()
}

// Selected returns the chosen action, ActionNone when cancelled
func (m MenuModel) Selected() MenuAction {
	return m.selected
}

// RunMenu displays the menu and returns the chosen action
func RunMenu(title string, options []MenuOption) (MenuAction, error) {
	model := NewMenuModel(title, options)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return ActionNone, err
	}

	return finalModel.(MenuModel).Selected(), nil
}
