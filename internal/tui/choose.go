package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsierDev/zero-setup-biome/internal/prompt"
)

// SelectModel is a single-choice list prompt.
type SelectModel struct {
	message   string
	options   []prompt.Option
	cursor    int
	done      bool
	cancelled bool
	keys      KeyMap
}

// NewSelectModel creates a SelectModel with the cursor on def.
func NewSelectModel(message string, options []prompt.Option, def string) SelectModel {
	m := SelectModel{message: message, options: options, keys: DefaultKeyMap}
	if i := prompt.IndexOf(options, def); i >= 0 {
		m.cursor = i
	}
	return m
}

// Init returns the initial command for the select prompt.
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down), key.Matches(keyMsg, m.keys.Tab):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Enter):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the prompt.
func (m SelectModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("? " + m.message))
	b.WriteString("\n")

	if m.cancelled {
		b.WriteString("  " + DimStyle.Render("cancelled") + "\n")
		return b.String()
	}
	if m.done {
		b.WriteString("  " + SuccessStyle.Render(m.options[m.cursor].Display()) + "\n")
		return b.String()
	}

	for i, o := range m.options {
		line := "  " + o.Display()
		if i == m.cursor {
			line = IconPointer + " " + SelectedStyle.Render(o.Display())
		}
		if o.Hint != "" {
			line += " " + DimStyle.Render("("+o.Hint+")")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(DimStyle.Render("  ↑ ↓: Move · Enter: Select · Esc: Cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the focused option's value.
func (m SelectModel) Value() string {
	if len(m.options) == 0 {
		return ""
	}
	return m.options[m.cursor].Value
}

// Cancelled reports whether the prompt was aborted.
func (m SelectModel) Cancelled() bool {
	return m.cancelled
}
