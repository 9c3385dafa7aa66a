// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady  State = "ready"
	StateSaving State = "saving"
	StateError  State = "error"
	StateInfo   State = "info"
)

// Bar displays the signed-in user, the last message and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	user     string
	bindings []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the user and the state/message.
func (s *Bar) renderLeft() string {
	user := s.styles.Muted.Render("not logged in")
	if s.user != "" {
		user = s.styles.Normal.Render("user " + s.user)
	}

	var state string
	switch s.state {
	case StateSaving:
		state = s.styles.Muted.Render("Saving...")
	case StateError:
		state = s.styles.Error.Render(s.message)
	case StateInfo:
		state = s.styles.Success.Render(s.message)
	case StateReady:
		state = s.styles.Muted.Render("Ready")
	default:
		state = s.styles.Muted.Render("Ready")
	}
	return user + s.styles.Muted.Render(" | ") + state
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.bindings
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetError shows message as an error. An empty message resets to ready.
func (s *Bar) SetError(message string) {
	if message == "" {
		s.Clear()
		return
	}
	s.state = StateError
	s.message = message
}

// SetInfo shows an informational message.
func (s *Bar) SetInfo(message string) {
	s.state = StateInfo
	s.message = message
}

// SetMessage sets the message text without changing state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetUser sets the displayed user id. Empty means no session.
func (s *Bar) SetUser(userID string) {
	s.user = userID
}

// User returns the displayed user id.
func (s *Bar) User() string {
	return s.user
}

// SetBindings sets the hints shown for the focused pane.
// Nil restores the default hints.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
