package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AsierDev/zero-setup-biome/internal/prompt"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(keyPress(k))
	}
	return m
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name          string
		def           bool
		keys          []string
		want          bool
		wantCancelled bool
	}{
		{"enter keeps default yes", true, []string{"enter"}, true, false},
		{"enter keeps default no", false, []string{"enter"}, false, false},
		{"right then enter", true, []string{"right", "enter"}, false, false},
		{"y shortcut", false, []string{"y"}, true, false},
		{"n shortcut", true, []string{"n"}, false, false},
		{"esc cancels", true, []string{"esc"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewConfirmModel("Continue?", tt.def), tt.keys...).(ConfirmModel)
			if m.Cancelled() != tt.wantCancelled {
				t.Errorf("Cancelled() = %v, want %v", m.Cancelled(), tt.wantCancelled)
			}
			if !tt.wantCancelled && m.Value() != tt.want {
				t.Errorf("Value() = %v, want %v", m.Value(), tt.want)
			}
		})
	}
}

func TestSelectModel(t *testing.T) {
	opts := []prompt.Option{
		{Value: "none", Label: "No trailing commas"},
		{Value: "all", Label: "All trailing commas", Hint: "Better git diffs"},
	}

	m := NewSelectModel("Trailing commas", opts, "none")
	if !strings.Contains(m.View(), "Better git diffs") {
		t.Errorf("View() missing hint:\n%s", m.View())
	}

	got := press(m, "down", "down", "enter").(SelectModel)
	if got.Value() != "all" {
		t.Errorf("Value() = %q, want all (cursor clamps at the end)", got.Value())
	}

	got = press(NewSelectModel("Trailing commas", opts, "all"), "up", "enter").(SelectModel)
	if got.Value() != "none" {
		t.Errorf("Value() = %q, want none", got.Value())
	}

	got = press(NewSelectModel("Trailing commas", opts, "none"), "esc").(SelectModel)
	if !got.Cancelled() {
		t.Error("esc should cancel")
	}
}

func TestTextModel(t *testing.T) {
	validate := func(s string) error {
		if strings.HasPrefix(s, ".") {
			return errors.New("name cannot start with a dot")
		}
		return nil
	}

	m := press(NewTextModel("Project name", "my-biome-app", validate), ".", "x", "enter").(TextModel)
	if m.done {
		t.Fatal("invalid value was accepted")
	}
	if !strings.Contains(m.View(), "cannot start with a dot") {
		t.Errorf("View() missing validation error:\n%s", m.View())
	}

	m = press(NewTextModel("Project name", "my-biome-app", validate), "enter").(TextModel)
	if !m.done || m.Value() != "my-biome-app" {
		t.Errorf("empty submit: done=%v value=%q, want default", m.done, m.Value())
	}

	m = press(NewTextModel("Project name", "", validate), "a", "p", "p", "enter").(TextModel)
	if m.Value() != "app" {
		t.Errorf("Value() = %q, want app", m.Value())
	}
}
