// Package nav provides the navigation pane: the predefined feature entries
// followed by the user's pages.
package nav

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// DeleteQuestion is asked before a page is deleted.
const DeleteQuestion = "Do you really want to delete this page?"

// View is the navigation pane.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	pageService driving.PageService

	pages     []domain.Page
	cursor    int
	activeID  string
	confirm   *domain.Page
	collapsed bool
	focused   bool
	loading   bool
	width     int
	height    int
}

// NewView creates a navigation pane.
func NewView(ctx context.Context, s *styles.Styles, km *keymap.KeyMap, pages driving.PageService) *View {
	if ctx == nil {
		ctx = context.Background()
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:         ctx,
		styles:      s,
		keymap:      km,
		pageService: pages,
		width:       30,
		height:      20,
	}
}

// Init loads the page directory.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	pages := v.pageService
	ctx := v.ctx
	return func() tea.Msg {
		if pages == nil {
			return messages.PagesLoaded{Err: domain.ErrNotImplemented}
		}
		list, err := pages.List(ctx)
		return messages.PagesLoaded{Pages: list, Err: err}
	}
}

func (v *View) create() tea.Cmd {
	pages := v.pageService
	ctx := v.ctx
	return func() tea.Msg {
		if pages == nil {
			return messages.PageCreated{Err: domain.ErrNotImplemented}
		}
		page, err := pages.Create(ctx)
		return messages.PageCreated{Page: page, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	pages := v.pageService
	ctx := v.ctx
	return func() tea.Msg {
		if pages == nil {
			return messages.PageDeleted{ID: id, Err: domain.ErrNotImplemented}
		}
		return messages.PageDeleted{ID: id, Err: pages.Delete(ctx, id)}
	}
}

// Items returns every entry in display order.
func (v *View) Items() []domain.NavItem {
	items := make([]domain.NavItem, 0, len(domain.PredefinedNavItems)+len(v.pages))
	items = append(items, domain.PredefinedNavItems...)
	for _, p := range v.pages {
		items = append(items, domain.PageNavItem(p))
	}
	return items
}

func (v *View) current() *domain.NavItem {
	items := v.Items()
	if v.cursor < 0 || v.cursor >= len(items) {
		return nil
	}
	item := items[v.cursor]
	return &item
}

// Update handles messages for the navigation pane.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PagesLoaded:
		v.loading = false
		if msg.Err != nil {
			logger.Warn("nav: loading pages: %v", msg.Err)
			return v, notify(domain.LoadPagesFailure.Message(msg.Err))
		}
		v.pages = msg.Pages
		v.clamp()
		return v, nil

	case messages.PageCreated:
		if msg.Err != nil || msg.Page == nil {
			logger.Warn("nav: creating page: %v", msg.Err)
			return v, notify(domain.SavePageFailure.Message(orRejected(msg.Err)))
		}
		v.pages = append(v.pages, *msg.Page)
		v.cursor = len(v.Items()) - 1
		item := domain.PageNavItem(*msg.Page)
		return v, func() tea.Msg { return messages.NavSelected{Item: &item} }

	case messages.PageDeleted:
		if msg.Err != nil {
			logger.Warn("nav: deleting page %s: %v", msg.ID, msg.Err)
			return v, notify(domain.DeletePageFailure.Message(msg.Err))
		}
		v.pages = domain.RemovePage(v.pages, msg.ID)
		v.clamp()
		return v, func() tea.Msg { return messages.Notice{Text: "Page deleted."} }

	case messages.PageSaved:
		v.pageSaved(msg)
		return v, nil

	case messages.IdentityChanged:
		return v, v.load()
	}
	return v, nil
}

func (v *View) pageSaved(msg messages.PageSaved) {
	for i := range v.pages {
		if v.pages[i].ID == msg.ID {
			v.pages[i].Title = msg.Title
			v.pages[i].StoredContent = msg.Content
			return
		}
	}
	v.pages = append(v.pages, domain.Page{ID: msg.ID, Title: msg.Title, StoredContent: msg.Content})
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if v.confirm != nil {
		switch {
		case keymap.Matches(key, v.keymap.Confirm):
			id := v.confirm.ID
			v.confirm = nil
			return v, v.remove(id)
		case keymap.Matches(key, v.keymap.Decline):
			v.confirm = nil
		}
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.cursor < len(v.Items())-1 {
			v.cursor++
		}
	case keymap.Matches(key, v.keymap.Select):
		if item := v.current(); item != nil {
			return v, func() tea.Msg { return messages.NavSelected{Item: item} }
		}
	case keymap.Matches(key, v.keymap.NewPage):
		return v, v.create()
	case keymap.Matches(key, v.keymap.Delete):
		if item := v.current(); item != nil && item.Page != nil {
			v.confirm = item.Page
		}
	}
	return v, nil
}

func (v *View) clamp() {
	if n := len(v.Items()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// View renders the navigation pane.
func (v *View) View() string {
	if v.collapsed {
		return v.renderCollapsed()
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Predefined Pages"))
	b.WriteString("\n")
	for i, item := range domain.PredefinedNavItems {
		b.WriteString(v.renderItem(i, item.ID, item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Documents"))
	b.WriteString("\n")
	switch {
	case v.loading && len(v.pages) == 0:
		b.WriteString(v.styles.Muted.Render("  Loading..."))
		b.WriteString("\n")
	case len(v.pages) == 0:
		b.WriteString(v.styles.Muted.Render("  No pages yet."))
		b.WriteString("\n")
	}
	offset := len(domain.PredefinedNavItems)
	for i, p := range v.pages {
		b.WriteString(v.renderItem(offset+i, p.ID, p.DisplayTitle()))
		b.WriteString("\n")
	}

	if v.confirm != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(DeleteQuestion + " [y/n]"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderItem(index int, id, label string) string {
	label = truncate(label, v.width-4)
	switch {
	case index == v.cursor && v.focused:
		return v.styles.Selected.Render("> " + label)
	case id == v.activeID:
		return v.styles.Active.Render("  " + label)
	default:
		return "  " + label
	}
}

// renderCollapsed shows one-letter markers for each entry.
func (v *View) renderCollapsed() string {
	items := v.Items()
	lines := make([]string, 0, len(items))
	for i, item := range items {
		mark := "·"
		if r := []rune(item.Label); len(r) > 0 {
			mark = strings.ToUpper(string(r[0]))
		}
		switch {
		case i == v.cursor && v.focused:
			lines = append(lines, v.styles.Selected.Render(mark))
		case item.ID == v.activeID:
			lines = append(lines, v.styles.Active.Render(mark))
		default:
			lines = append(lines, mark)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return messages.Notice{Text: text, Err: true} }
}

func orRejected(err error) error {
	if err != nil {
		return err
	}
	return &domain.BackendError{Op: "create page"}
}

// Pages returns the loaded pages.
func (v *View) Pages() []domain.Page {
	return v.pages
}

// Cursor returns the index of the highlighted entry.
func (v *View) Cursor() int {
	return v.cursor
}

// Confirming reports whether a delete confirmation is pending.
func (v *View) Confirming() bool {
	return v.confirm != nil
}

// SetActive marks the entry shown in the center pane. Empty clears it.
func (v *View) SetActive(id string) {
	v.activeID = id
}

// SetCollapsed switches between the full and the collapsed rendering.
func (v *View) SetCollapsed(collapsed bool) {
	v.collapsed = collapsed
}

// Collapsed reports whether the pane is collapsed.
func (v *View) Collapsed() bool {
	return v.collapsed
}

// SetFocused sets whether the pane has keyboard focus.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
}

// SetDimensions sets the pane dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
