package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the prompts and the step reporter.
const (
	primaryColor   = "#60A5FA" // Blue
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent rendering.
var (
	// TitleStyle renders prompt questions and section titles.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights the focused option.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// ButtonStyle renders the focused button of a confirm prompt.
	ButtonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2)

	// IdleButtonStyle renders the unfocused button.
	IdleButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 2)

	// DimStyle renders hints and muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// NoteStyle frames multi-line notes.
	NoteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4B5563")).
			Padding(0, 1)
)

// Step status icons (pre-rendered strings).
var (
	IconDone    = SuccessStyle.Render("✓")
	IconActive  = WarningStyle.Render("▸")
	IconWarn    = WarningStyle.Render("⚠")
	IconFailed  = ErrorStyle.Render("✗")
	IconPointer = SelectedStyle.Render("❯")
)
