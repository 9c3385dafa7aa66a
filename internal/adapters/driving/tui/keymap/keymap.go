// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help overlay.
	Help key.Binding

	// Back closes popups and returns focus to the navigation pane.
	Back key.Binding

	// NextPane cycles focus between panes.
	NextPane key.Binding

	// ToggleNav collapses or expands the navigation pane.
	ToggleNav key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// NewPage creates a new page.
	NewPage key.Binding

	// Delete removes the selected page or idea.
	Delete key.Binding

	// MoveUp and MoveDown move the focused block.
	MoveUp   key.Binding
	MoveDown key.Binding

	// CloseCenter closes the center pane.
	CloseCenter key.Binding

	// CloseDetail closes the detail pane.
	CloseDetail key.Binding

	// Bold, Italic and Underline toggle inline styles on the focused block.
	Bold      key.Binding
	Italic    key.Binding
	Underline key.Binding

	// Confirm and Decline answer a confirmation prompt.
	Confirm key.Binding
	Decline key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		ToggleNav: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle nav"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NewPage: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new page"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "move block up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "move block down"),
		),
		CloseCenter: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close"),
		),
		CloseDetail: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "close detail"),
		),
		Bold: key.NewBinding(
			key.WithKeys("alt+b"),
			key.WithHelp("alt+b", "bold"),
		),
		Italic: key.NewBinding(
			key.WithKeys("alt+i"),
			key.WithHelp("alt+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("alt+u"),
			key.WithHelp("alt+u", "underline"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.ToggleNav, k.Help, k.Quit}
}

// NavHelp returns keybindings for the navigation pane.
func (k *KeyMap) NavHelp() []key.Binding {
	return []key.Binding{k.Select, k.NewPage, k.Delete, k.NextPane}
}

// EditorHelp returns keybindings for the document editor.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MoveUp, k.Bold, k.Italic, k.CloseCenter}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.NextPane, k.ToggleNav, k.CloseCenter, k.CloseDetail},
		{k.NewPage, k.Delete, k.MoveUp, k.MoveDown},
		{k.Bold, k.Italic, k.Underline},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
