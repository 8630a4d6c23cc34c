package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsierDev/zero-setup-biome/internal/prompt"
)

// TextModel is a single-line text prompt with inline validation.
type TextModel struct {
	message   string
	def       string
	input     textinput.Model
	validate  prompt.Validator
	err       error
	done      bool
	cancelled bool
	keys      KeyMap
}

// NewTextModel creates a TextModel. def is shown as the placeholder and used
// when the user submits an empty value.
func NewTextModel(message, def string, validate prompt.Validator) TextModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Prompt = "  "
	ti.CharLimit = 256
	ti.Focus()
	return TextModel{message: message, def: def, input: ti, validate: validate, keys: DefaultKeyMap}
}

// Init starts the cursor blink.
func (m TextModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses; everything else goes to the text input.
func (m TextModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Enter):
			if m.validate != nil {
				if err := m.validate(m.Value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

// View renders the prompt.
func (m TextModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("? " + m.message))
	b.WriteString("\n")

	switch {
	case m.cancelled:
		b.WriteString("  " + DimStyle.Render("cancelled") + "\n")
	case m.done:
		b.WriteString("  " + SuccessStyle.Render(m.Value()) + "\n")
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString("  " + ErrorStyle.Render(m.err.Error()) + "\n")
		}
	}
	return b.String()
}

// Value returns the entered text, or the default when empty.
func (m TextModel) Value() string {
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return m.def
	}
	return v
}

// Cancelled reports whether the prompt was aborted.
func (m TextModel) Cancelled() bool {
	return m.cancelled
}
