// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour, used for hashtags.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Surface is the background of popups and the navigation pane.
	Surface lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Surface:    lipgloss.Color("#3E3E3E"), // Selection gray
		Foreground: lipgloss.Color("#E0E0E0"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for pane headers.
	Title lipgloss.Style

	// Subtitle style for section headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Active marks the entry shown in the center pane.
	Active lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Tag style for #hashtag tokens.
	Tag lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// Pane and FocusedPane frame the three layout columns.
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style

	// Popup frames the suggestion and block menus.
	Popup lipgloss.Style

	// Block styles for document content.
	HeadingOne   lipgloss.Style
	HeadingTwo   lipgloss.Style
	HeadingThree lipgloss.Style
	Quote        lipgloss.Style
	Code         lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Muted),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Active: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Surface),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Tag: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Underline(true),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Pane: pane,

		FocusedPane: pane.BorderForeground(theme.Primary),

		Popup: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Secondary).
			Background(theme.Surface).
			Padding(0, 1),

		HeadingOne: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Foreground),

		HeadingTwo: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		HeadingThree: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Muted),

		Quote: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		Code: lipgloss.NewStyle().
			Foreground(theme.Success).
			Background(theme.Background),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Frame returns the pane style for the focus state.
func (s *Styles) Frame(focused bool) lipgloss.Style {
	if focused {
		return s.FocusedPane
	}
	return s.Pane
}
