package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsierDev/zero-setup-biome/internal/prompt"
)

// Prompter implements prompt.Prompter with Bubble Tea models.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter returns a Prompter on the process terminal.
func NewPrompter() *Prompter {
	return &Prompter{out: os.Stdout}
}

// Confirm implements prompt.Prompter.
func (p *Prompter) Confirm(message string, def bool) (prompt.Answer[bool], error) {
	final, err := run(NewConfirmModel(message, def), p.in, p.out)
	if err != nil {
		return prompt.Answer[bool]{}, fmt.Errorf("confirm prompt: %w", err)
	}
	m := final.(ConfirmModel)
	if m.Cancelled() {
		return prompt.Cancelled[bool](), nil
	}
	return prompt.Answered(m.Value()), nil
}

// Select implements prompt.Prompter.
func (p *Prompter) Select(message string, options []prompt.Option, def string) (prompt.Answer[string], error) {
	if len(options) == 0 {
		return prompt.Answer[string]{}, errors.New("select prompt has no options")
	}
	final, err := run(NewSelectModel(message, options, def), p.in, p.out)
	if err != nil {
		return prompt.Answer[string]{}, fmt.Errorf("select prompt: %w", err)
	}
	m := final.(SelectModel)
	if m.Cancelled() {
		return prompt.Cancelled[string](), nil
	}
	return prompt.Answered(m.Value()), nil
}

// Text implements prompt.Prompter.
func (p *Prompter) Text(message, def string, validate prompt.Validator) (prompt.Answer[string], error) {
	final, err := run(NewTextModel(message, def, validate), p.in, p.out)
	if err != nil {
		return prompt.Answer[string]{}, fmt.Errorf("text prompt: %w", err)
	}
	m := final.(TextModel)
	if m.Cancelled() {
		return prompt.Cancelled[string](), nil
	}
	return prompt.Answered(m.Value()), nil
}

// ForTerminal picks the prompter for the current process: the defaults
// prompter when assumeYes is set, Bubble Tea on an interactive terminal and
// line prompts otherwise.
func ForTerminal(assumeYes bool) prompt.Prompter {
	switch {
	case assumeYes:
		return prompt.Defaults{}
	case IsInteractive():
		return NewPrompter()
	default:
		return prompt.NewLine(os.Stdin, os.Stdout)
	}
}

var _ prompt.Prompter = (*Prompter)(nil)

// compile-time check that the models satisfy tea.Model.
var (
	_ tea.Model = ConfirmModel{}
	_ tea.Model = SelectModel{}
	_ tea.Model = TextModel{}
)
