package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/views/ideas"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/views/nav"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/views/tags"
	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// Column widths of the layout, frame included.
const (
	navWidth          = 28
	navCollapsedWidth = 7
	detailWidth       = 36
)

// EmptyCenterText is shown in the center pane before anything is selected.
const EmptyCenterText = "Please select an item from the navigation pane."

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the global keybindings.
	keymap *keymap.KeyMap

	// panes is the layout state.
	panes domain.Panes

	// focus is the pane receiving keys.
	focus messages.Pane

	// navView lists the predefined entries and the user's pages.
	navView *nav.View

	// ideasView is the quick idea capture feature.
	ideasView *ideas.View

	// tagsView is the hashtag listing.
	tagsView *tags.View

	// editorView edits the open document.
	editorView *editor.View

	// detailView is the secondary pane.
	detailView *detail.View

	// statusBar shows the user, the last message and key hints.
	statusBar *status.Bar

	// showHelp overlays the help text.
	showHelp bool

	// width is the terminal width.
	width int

	// height is the terminal height.
	height int

	// ready indicates the app has received initial window size.
	ready bool
}

// Verify App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Returns an error if the ports are invalid.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	ctx := context.Background()

	a := &App{
		ports:     ports,
		ctx:       ctx,
		styles:    s,
		keymap:    km,
		focus:     messages.PaneNav,
		statusBar: status.NewBar(s, km),
	}
	a.buildViews()
	a.syncUser()
	a.syncFocus()
	return a, nil
}

func (a *App) buildViews() {
	a.navView = nav.NewView(a.ctx, a.styles, a.keymap, a.ports.Pages)
	a.ideasView = ideas.NewView(a.ctx, a.styles, a.keymap, a.ports.Ideas, a.ports.Tags)
	a.tagsView = tags.NewView(a.ctx, a.styles, a.keymap, a.ports.Tags)
	a.editorView = editor.NewView(a.ctx, a.styles, a.keymap, a.ports.Session, a.ports.Tags)
	a.detailView = detail.NewView(a.ctx, a.styles, a.keymap, a.ports.Ideas, a.ports.Tags)
}

// WithContext sets the context for the application.
// The views are rebuilt so their backend calls use ctx.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.buildViews()
	a.syncFocus()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ideapad"),
		a.navView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // message routing switch
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.NavSelected:
		return a, a.selectNav(msg.Item)

	case messages.DetailRequested:
		a.panes = a.panes.OpenDetail(msg.Detail)
		cmd := a.detailView.Open(msg.Detail)
		a.setFocus(messages.PaneDetail)
		return a, cmd

	case messages.DetailClosed:
		a.panes = a.panes.CloseDetail()
		a.detailView.Close()
		if a.focus == messages.PaneDetail {
			a.setFocus(messages.PaneCenter)
		}
		return a, nil

	case messages.CenterClosed:
		a.closeCenter()
		return a, nil

	case messages.FocusChanged:
		a.setFocus(msg.Pane)
		return a, nil

	case messages.PageDeleted:
		var cmd tea.Cmd
		a.navView, cmd = a.navView.Update(msg)
		if msg.Err == nil && a.panes.IsSelected(msg.ID) {
			a.closeCenter()
		}
		return a, cmd

	case messages.PagesLoaded, messages.PageCreated, messages.PageSaved:
		var cmd tea.Cmd
		a.navView, cmd = a.navView.Update(msg)
		return a, cmd

	case messages.Persisted:
		var cmd tea.Cmd
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.IdeasLoaded, messages.IdeaCaptured, messages.IdeaDeleted:
		var cmd tea.Cmd
		a.ideasView, cmd = a.ideasView.Update(msg)
		return a, cmd

	case messages.SuggestionsLoaded:
		return a, a.routeOwner(msg.Owner, msg)

	case messages.TagCreated:
		return a, a.routeOwner(msg.Owner, msg)

	case messages.TagsLoaded:
		var cmd tea.Cmd
		a.tagsView, cmd = a.tagsView.Update(msg)
		return a, cmd

	case messages.TagIdeasLoaded, messages.TagMessagesLoaded:
		var cmd tea.Cmd
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.IdentityChanged:
		a.syncUser()
		var navCmd, ideasCmd, tagsCmd tea.Cmd
		a.navView, navCmd = a.navView.Update(msg)
		a.ideasView, ideasCmd = a.ideasView.Update(msg)
		a.tagsView, tagsCmd = a.tagsView.Update(msg)
		return a, tea.Batch(navCmd, ideasCmd, tagsCmd)

	case messages.Notice:
		if msg.Err {
			a.statusBar.SetError(msg.Text)
		} else {
			a.statusBar.SetInfo(msg.Text)
		}
		return a, nil

	case messages.StatusCleared:
		a.statusBar.Clear()
		return a, nil
	}

	return a, a.updateFocused(msg)
}

// handleKeyMsg applies global bindings and forwards the rest to the
// focused pane.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case keymap.Matches(msg.String(), a.keymap.Help):
		a.showHelp = true
		return a, nil
	case keymap.Matches(msg.String(), a.keymap.NextPane):
		a.cycleFocus()
		return a, nil
	case keymap.Matches(msg.String(), a.keymap.ToggleNav):
		return a, func() tea.Msg { return messages.NavSelected{} }
	case keymap.Matches(msg.String(), a.keymap.CloseCenter):
		return a, func() tea.Msg { return messages.CenterClosed{} }
	case keymap.Matches(msg.String(), a.keymap.CloseDetail):
		if a.panes.Detail == nil {
			return a, nil
		}
		return a, func() tea.Msg { return messages.DetailClosed{} }
	}

	return a, a.updateFocused(msg)
}

// selectNav applies a navigation selection. A nil item toggles collapse.
func (a *App) selectNav(item *domain.NavItem) tea.Cmd {
	a.panes = a.panes.Select(item)
	if item == nil {
		a.navView.SetCollapsed(a.panes.Collapsed)
		a.layout()
		return nil
	}

	a.detailView.Close()
	a.navView.SetActive(item.ID)

	var cmd tea.Cmd
	switch item.Target {
	case domain.TargetFeature:
		a.editorView.Open(nil)
		cmd = a.ideasView.Init()
	case domain.TargetTagListing:
		a.editorView.Open(nil)
		cmd = a.tagsView.Init()
	case domain.TargetDocument:
		a.editorView.Open(item.Page)
	case domain.TargetNone:
	}
	a.setFocus(messages.PaneCenter)
	a.layout()
	return cmd
}

func (a *App) closeCenter() {
	a.panes = a.panes.Close()
	a.detailView.Close()
	a.navView.SetActive("")
	a.editorView.Open(nil)
	a.setFocus(messages.PaneNav)
	a.layout()
}

// routeOwner forwards a suggestion message to the input that asked for it.
func (a *App) routeOwner(owner string, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch owner {
	case ideas.Owner:
		a.ideasView, cmd = a.ideasView.Update(msg)
	case editor.Owner:
		a.editorView, cmd = a.editorView.Update(msg)
	}
	return cmd
}

// updateFocused forwards msg to the view owning the focused pane.
func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case messages.PaneNav:
		a.navView, cmd = a.navView.Update(msg)
	case messages.PaneCenter:
		switch a.panes.Target() {
		case domain.TargetFeature:
			a.ideasView, cmd = a.ideasView.Update(msg)
		case domain.TargetTagListing:
			a.tagsView, cmd = a.tagsView.Update(msg)
		case domain.TargetDocument:
			a.editorView, cmd = a.editorView.Update(msg)
		case domain.TargetNone:
		}
	case messages.PaneDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	}
	return cmd
}

// visiblePanes returns the panes that can take focus, in tab order.
func (a *App) visiblePanes() []messages.Pane {
	panes := []messages.Pane{messages.PaneNav}
	if a.panes.Target() != domain.TargetNone {
		panes = append(panes, messages.PaneCenter)
	}
	if a.panes.Detail != nil {
		panes = append(panes, messages.PaneDetail)
	}
	return panes
}

func (a *App) cycleFocus() {
	panes := a.visiblePanes()
	next := panes[0]
	for i, p := range panes {
		if p == a.focus {
			next = panes[(i+1)%len(panes)]
			break
		}
	}
	a.setFocus(next)
}

func (a *App) setFocus(p messages.Pane) {
	a.focus = p
	a.syncFocus()
}

// syncFocus tells every view whether it owns the keyboard and updates the
// key hints.
func (a *App) syncFocus() {
	center := a.focus == messages.PaneCenter
	target := a.panes.Target()

	a.navView.SetFocused(a.focus == messages.PaneNav)
	a.ideasView.SetFocused(center && target == domain.TargetFeature)
	a.tagsView.SetFocused(center && target == domain.TargetTagListing)
	a.editorView.SetFocused(center && target == domain.TargetDocument)
	a.detailView.SetFocused(a.focus == messages.PaneDetail)

	switch {
	case a.focus == messages.PaneNav:
		a.statusBar.SetBindings(a.keymap.NavHelp())
	case center && target == domain.TargetDocument:
		a.statusBar.SetBindings(a.keymap.EditorHelp())
	default:
		a.statusBar.SetBindings(nil)
	}
}

func (a *App) syncUser() {
	if a.ports.Identity == nil {
		return
	}
	a.statusBar.SetUser(a.ports.Identity.Current().UserID)
}

// columns returns the outer widths of the three columns.
func (a *App) columns() (navW, centerW, detailW int) {
	navW = navWidth
	if a.panes.Collapsed {
		navW = navCollapsedWidth
	}
	if a.panes.Detail != nil {
		detailW = detailWidth
	}
	centerW = a.width - navW - detailW
	if centerW < 10 {
		centerW = 10
	}
	return navW, centerW, detailW
}

// paneHeight is the outer height of a column.
func (a *App) paneHeight() int {
	h := a.height - 1
	if h < 3 {
		h = 3
	}
	return h
}

// layout sizes every view to its column. Frames take two rows and four
// columns.
func (a *App) layout() {
	navW, centerW, detailW := a.columns()
	h := a.paneHeight() - 2

	a.navView.SetDimensions(navW-4, h)
	a.ideasView.SetDimensions(centerW-4, h)
	a.tagsView.SetDimensions(centerW-4, h)
	a.editorView.SetDimensions(centerW-4, h)
	if detailW > 0 {
		a.detailView.SetDimensions(detailW-4, h)
	}
	a.statusBar.SetWidth(a.width)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.showHelp {
		return a.viewHelp()
	}

	navW, centerW, detailW := a.columns()
	h := a.paneHeight()

	cols := []string{
		a.frame(a.navView.View(), navW, h, a.focus == messages.PaneNav),
		a.frame(a.viewCenter(), centerW, h, a.focus == messages.PaneCenter),
	}
	if detailW > 0 {
		cols = append(cols, a.frame(a.detailView.View(), detailW, h, a.focus == messages.PaneDetail))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		a.statusBar.View(),
	)
}

func (a *App) frame(content string, width, height int, focused bool) string {
	return a.styles.Frame(focused).
		Width(width - 2).
		Height(height - 2).
		Render(content)
}

// viewCenter renders the view selected by the navigation pane.
func (a *App) viewCenter() string {
	switch a.panes.Target() {
	case domain.TargetFeature:
		return a.ideasView.View()
	case domain.TargetTagListing:
		return a.tagsView.View()
	case domain.TargetDocument:
		return a.editorView.View()
	case domain.TargetNone:
	}
	return a.styles.Muted.Render(EmptyCenterText)
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Global:
  tab          Next pane
  ctrl+b       Collapse or expand navigation
  ctrl+w       Close the center pane
  ctrl+x       Close the detail pane
  f1           Help
  ctrl+c       Quit

Navigation:
  j/k, ↑/↓     Move
  enter        Open
  ctrl+n       New page
  ctrl+d       Delete page

Ideas:
  enter        Save idea
  #            Suggest hashtags
  ↓            Browse ideas
  ←/→          Pick a hashtag, enter to list its ideas

Editor:
  /            Block type menu
  shift+↑/↓    Move block
  alt+b/i/u    Bold, italic, underline

[any key] close`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Panes returns the layout state.
func (a *App) Panes() domain.Panes {
	return a.panes
}

// Focus returns the pane receiving keys.
func (a *App) Focus() messages.Pane {
	return a.focus
}

// ShowingHelp reports whether the help overlay is shown.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.statusBar
}

// Nav returns the navigation view.
func (a *App) Nav() *nav.View {
	return a.navView
}

// Editor returns the editor view.
func (a *App) Editor() *editor.View {
	return a.editorView
}

// Ideas returns the idea capture view.
func (a *App) Ideas() *ideas.View {
	return a.ideasView
}

// Detail returns the detail view.
func (a *App) Detail() *detail.View {
	return a.detailView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
