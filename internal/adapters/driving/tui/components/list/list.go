// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
)

// Item is one row of a List.
type Item struct {
	// ID identifies the row for the owner.
	ID string

	// Title is the main line; it may contain pre-rendered styling.
	Title string

	// Detail is an optional muted second line.
	Detail string
}

// List displays items in a navigable, scrolling list.
type List struct {
	items    []Item
	selected int
	styles   *styles.Styles
	empty    string
	width    int
	height   int
}

// New creates a list that shows empty when it has no items.
func New(s *styles.Styles, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		styles: s,
		empty:  empty,
		width:  40,
		height: 10,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *List) View() string {
	return l.Render(true)
}

// Render renders the list. The cursor is only highlighted when focused.
func (l *List) Render(focused bool) string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	rows := l.rowsPerItem()
	visible := l.height / rows
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	lines := make([]string, 0, (end-start)*rows)
	for i := start; i < end; i++ {
		item := l.items[i]
		title := truncate(item.Title, l.width-2)
		if i == l.selected && focused {
			lines = append(lines, l.styles.Selected.Render("> "+title))
		} else if i == l.selected {
			lines = append(lines, l.styles.Active.Render("  "+title))
		} else {
			lines = append(lines, "  "+title)
		}
		if rows > 1 {
			lines = append(lines, l.styles.Muted.Render("    "+truncate(item.Detail, l.width-4)))
		}
	}
	return strings.Join(lines, "\n")
}

func (l *List) rowsPerItem() int {
	for _, it := range l.items {
		if it.Detail != "" {
			return 2
		}
	}
	return 1
}

// truncate shortens plain text to max runes. Styled titles are left alone.
func truncate(s string, max int) string {
	if max < 4 || strings.Contains(s, "\x1b") {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// SetItems replaces the items, keeping the cursor in range.
func (l *List) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// Select moves the cursor to the item with id and reports whether it exists.
func (l *List) Select(id string) bool {
	for i, it := range l.items {
		if it.ID == id {
			l.selected = i
			return true
		}
	}
	return false
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *List) SelectedItem() *Item {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}
