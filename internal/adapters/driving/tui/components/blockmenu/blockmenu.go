// Package blockmenu provides the slash menu for changing a block's type.
package blockmenu

import (
	"strings"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// Menu is the block type picker opened with '/'. Typed characters filter
// the options; a space or deleting past the empty filter closes it.
type Menu struct {
	styles   *styles.Styles
	open     bool
	filter   string
	selected int
}

// New creates a closed menu.
func New(s *styles.Styles) *Menu {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Menu{styles: s}
}

// Open shows the menu with an empty filter.
func (m *Menu) Open() {
	m.open = true
	m.filter = ""
	m.selected = 0
}

// Close hides the menu.
func (m *Menu) Close() {
	m.open = false
	m.filter = ""
	m.selected = 0
}

// IsOpen reports whether the menu is shown.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Filter returns the typed filter.
func (m *Menu) Filter() string {
	return m.filter
}

// Type appends r to the filter. A space closes the menu.
func (m *Menu) Type(r rune) {
	if !m.open {
		return
	}
	if r == ' ' {
		m.Close()
		return
	}
	m.filter += string(r)
	m.selected = 0
}

// Backspace removes the last filter character, closing the menu when the
// filter is already empty.
func (m *Menu) Backspace() {
	if !m.open {
		return
	}
	if m.filter == "" {
		m.Close()
		return
	}
	r := []rune(m.filter)
	m.filter = string(r[:len(r)-1])
	m.selected = 0
}

// Options returns the options matching the filter.
func (m *Menu) Options() []domain.BlockOption {
	if !m.open {
		return nil
	}
	return domain.FilterBlockOptions(m.filter)
}

// Move shifts the cursor by delta, wrapping around.
func (m *Menu) Move(delta int) {
	n := len(m.Options())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// Selected returns the cursor index.
func (m *Menu) Selected() int {
	return m.selected
}

// Choice returns the option under the cursor.
func (m *Menu) Choice() (domain.BlockOption, bool) {
	opts := m.Options()
	if len(opts) == 0 || m.selected >= len(opts) {
		return domain.BlockOption{}, false
	}
	return opts[m.selected], true
}

// View renders the menu, or nothing when it is closed.
func (m *Menu) View() string {
	if !m.open {
		return ""
	}
	lines := []string{m.styles.Muted.Render("/" + m.filter)}
	opts := m.Options()
	if len(opts) == 0 {
		lines = append(lines, m.styles.Muted.Render("No matching blocks"))
	}
	for i, o := range opts {
		if i == m.selected {
			lines = append(lines, m.styles.Selected.Render(o.Label))
			continue
		}
		lines = append(lines, m.styles.Normal.Render(o.Label))
	}
	return m.styles.Popup.Render(strings.Join(lines, "\n"))
}
