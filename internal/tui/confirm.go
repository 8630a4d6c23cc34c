package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no prompt rendered as two buttons.
type ConfirmModel struct {
	message   string
	selected  int // 0 = Yes, 1 = No
	done      bool
	cancelled bool
	keys      KeyMap
}

// NewConfirmModel creates a ConfirmModel with def preselected.
func NewConfirmModel(message string, def bool) ConfirmModel {
	m := ConfirmModel{message: message, keys: DefaultKeyMap}
	if !def {
		m.selected = 1
	}
	return m
}

// Init returns the initial command for the confirm prompt.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Left):
		m.selected = 0
	case key.Matches(keyMsg, m.keys.Right):
		m.selected = 1
	case key.Matches(keyMsg, m.keys.Tab):
		m.selected = (m.selected + 1) % 2
	case key.Matches(keyMsg, m.keys.Yes):
		m.selected = 0
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.selected = 1
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Enter), keyMsg.String() == " ":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the prompt.
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("? " + m.message))
	b.WriteString("\n")

	if m.done || m.cancelled {
		b.WriteString("  ")
		switch {
		case m.cancelled:
			b.WriteString(DimStyle.Render("cancelled"))
		case m.Value():
			b.WriteString(SuccessStyle.Render("Yes"))
		default:
			b.WriteString(SuccessStyle.Render("No"))
		}
		b.WriteString("\n")
		return b.String()
	}

	yesStyle, noStyle := ButtonStyle, IdleButtonStyle
	if m.selected == 1 {
		yesStyle, noStyle = IdleButtonStyle, ButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, "  ", yesStyle.Render("Yes"), "  ", noStyle.Render("No"))
	b.WriteString(buttons)
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("  ← →: Select · Enter: Confirm · Esc: Cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value reports whether Yes is selected.
func (m ConfirmModel) Value() bool {
	return m.selected == 0
}

// Cancelled reports whether the prompt was aborted.
func (m ConfirmModel) Cancelled() bool {
	return m.cancelled
}
