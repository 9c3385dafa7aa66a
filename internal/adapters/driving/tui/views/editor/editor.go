// Package editor provides the document pane: a title input above the
// block list of the open page. Every edit is handed to the document
// session, which decides what to persist.
package editor

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/blockmenu"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/suggest"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/core/services"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// Owner tags suggestion messages that belong to this view.
const Owner = "editor"

// View is the document editor.
type View struct {
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	session    driving.DocumentSession
	tagService driving.TagService
	newKey     func() string

	title   *input.TextInput
	block   *input.TextInput
	menu    *blockmenu.Menu
	popup   *suggest.Popup
	content domain.StructuredContent
	// cursor is the focused block; -1 is the title.
	cursor  int
	focused bool
	width   int
	height  int
}

// NewView creates the editor.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.DocumentSession,
	tags driving.TagService,
) *View {
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
		ctx:        ctx,
		styles:     s,
		keymap:     km,
		session:    session,
		tagService: tags,
		newKey:     services.NewBlockKey,
		title:      input.NewTextInput(s, "", "Enter the page title..."),
		block:      input.NewTextInput(s, "", "Start editing this content..."),
		menu:       blockmenu.New(s),
		popup:      suggest.New(s),
		content:    domain.EmptyContent(),
		cursor:     -1,
		width:      80,
		height:     24,
	}
}

// SetKeyFunc replaces the block key generator.
func (v *View) SetKeyFunc(fn func() string) {
	v.newKey = fn
}

// Open loads page into the session. Nil opens a new empty document.
func (v *View) Open(page *domain.Page) {
	v.menu.Close()
	v.popup.Track("")
	if v.session == nil {
		v.content = domain.EmptyContent()
		return
	}
	v.session.Open(page)
	doc := v.session.Document()
	v.title.SetValue(doc.Title)
	v.content = doc.Content
	if v.content.IsEmpty() {
		v.content.InsertBlock(0, v.newKey(), domain.BlockUnstyled)
	}
	v.focusTitle()
}

// Update handles messages for the editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.session == nil {
			return v, nil
		}
		if v.cursor < 0 {
			return v.handleTitleKey(msg)
		}
		return v.handleBlockKey(msg)

	case messages.Persisted:
		return v, v.complete(msg.Result)

	case messages.SuggestionsLoaded:
		if msg.Owner != Owner {
			return v, nil
		}
		if msg.Err != nil {
			logger.Warn("editor: suggestions for %q: %v", msg.Suggestions.Query, msg.Err)
			return v, notice(domain.SuggestTagsFailure.Message(msg.Err), true)
		}
		v.popup.SetSuggestions(msg.Suggestions)
		return v, nil

	case messages.TagCreated:
		if msg.Owner != Owner {
			return v, nil
		}
		if msg.Err != nil {
			logger.Warn("editor: creating tag %q: %v", msg.Name, msg.Err)
			return v, notice(domain.CreateTagFailure.Message(msg.Err), true)
		}
		return v, v.completeTag(msg.Name)
	}

	if v.focused {
		var cmd tea.Cmd
		if v.cursor < 0 {
			v.title, cmd = v.title.Update(msg)
		} else {
			v.block, cmd = v.block.Update(msg)
		}
		return v, cmd
	}
	return v, nil
}

func (v *View) handleTitleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyDown:
		v.focusBlock(0)
		return v, nil
	}

	before := v.title.Value()
	var cmd tea.Cmd
	v.title, cmd = v.title.Update(msg)
	if after := v.title.Value(); after != before {
		return v, tea.Batch(cmd, v.persist(v.session.SetTitle(after)))
	}
	return v, cmd
}

//nolint:gocyclo // key dispatch for the focused block
func (v *View) handleBlockKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.menu.IsOpen() {
		return v.handleMenuKey(msg)
	}
	if consumed, choice := v.popup.Key(msg); consumed {
		if choice == nil {
			return v, nil
		}
		if choice.Create {
			return v, suggest.Create(v.ctx, v.tagService, Owner, choice.Tag)
		}
		return v, v.completeTag(choice.Tag)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.MoveUp):
		return v, v.moveBlock(-1)
	case keymap.Matches(key, v.keymap.MoveDown):
		return v, v.moveBlock(1)
	case keymap.Matches(key, v.keymap.Bold):
		return v, v.toggleStyle(domain.StyleBold)
	case keymap.Matches(key, v.keymap.Italic):
		return v, v.toggleStyle(domain.StyleItalic)
	case keymap.Matches(key, v.keymap.Underline):
		return v, v.toggleStyle(domain.StyleUnderline)
	}

	switch msg.Type {
	case tea.KeyUp:
		v.focusBlock(v.cursor - 1)
		return v, nil
	case tea.KeyDown:
		if v.cursor < len(v.content.Blocks)-1 {
			v.focusBlock(v.cursor + 1)
		}
		return v, nil
	case tea.KeyEnter:
		return v, v.split()
	case tea.KeyBackspace:
		if v.block.Value() == "" && len(v.content.Blocks) > 1 {
			return v, v.removeBlock()
		}
	case tea.KeyRunes:
		if string(msg.Runes) == "/" && v.slashOpensMenu() {
			v.menu.Open()
			return v, nil
		}
	}

	before := v.block.Value()
	var cmd tea.Cmd
	v.block, cmd = v.block.Update(msg)
	after := v.block.Value()
	if after == before {
		return v, cmd
	}
	cmds := []tea.Cmd{cmd, v.setBlockText(after)}
	if query, fetch := v.popup.Track(after); fetch {
		cmds = append(cmds, suggest.Fetch(v.ctx, v.tagService, Owner, query))
	}
	return v, tea.Batch(cmds...)
}

func (v *View) handleMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		v.menu.Move(-1)
	case tea.KeyDown:
		v.menu.Move(1)
	case tea.KeyEsc:
		v.menu.Close()
	case tea.KeyBackspace:
		v.menu.Backspace()
	case tea.KeySpace:
		v.menu.Type(' ')
	case tea.KeyEnter:
		choice, ok := v.menu.Choice()
		v.menu.Close()
		if !ok {
			return v, nil
		}
		if err := v.content.ToggleBlockType(v.currentKey(), choice.Type); err != nil {
			logger.Warn("editor: toggling block type: %v", err)
			return v, nil
		}
		return v, v.persistContent()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			v.menu.Type(r)
		}
	}
	return v, nil
}

// slashOpensMenu reports whether a typed '/' starts a block command: at
// the start of the block or after whitespace.
func (v *View) slashOpensMenu() bool {
	runes := []rune(v.block.Value())
	pos := v.block.Position()
	if pos == 0 || pos > len(runes) {
		return true
	}
	return unicode.IsSpace(runes[pos-1])
}

func (v *View) currentKey() string {
	if v.cursor < 0 || v.cursor >= len(v.content.Blocks) {
		return ""
	}
	return v.content.Blocks[v.cursor].Key
}

func (v *View) setBlockText(text string) tea.Cmd {
	if err := v.content.SetBlockText(v.currentKey(), text); err != nil {
		logger.Warn("editor: setting block text: %v", err)
		return nil
	}
	return v.persistContent()
}

// split moves the text after the cursor into a new block below.
func (v *View) split() tea.Cmd {
	runes := []rune(v.block.Value())
	pos := v.block.Position()
	if pos > len(runes) {
		pos = len(runes)
	}
	head, tail := string(runes[:pos]), string(runes[pos:])

	current := v.content.Blocks[v.cursor]
	next := domain.BlockUnstyled
	switch current.Type {
	case domain.BlockUnorderedListItem, domain.BlockOrderedListItem:
		next = current.Type
	}

	_ = v.content.SetBlockText(current.Key, head)
	idx := v.content.InsertBlock(v.cursor+1, v.newKey(), next)
	_ = v.content.SetBlockText(v.content.Blocks[idx].Key, tail)
	v.focusBlock(idx)
	v.block.SetValue(tail)
	v.popup.Track("")
	return v.persistContent()
}

func (v *View) removeBlock() tea.Cmd {
	if err := v.content.RemoveBlock(v.currentKey()); err != nil {
		logger.Warn("editor: removing block: %v", err)
		return nil
	}
	target := v.cursor - 1
	if target < 0 {
		target = 0
	}
	v.focusBlock(target)
	return v.persistContent()
}

func (v *View) moveBlock(delta int) tea.Cmd {
	idx, err := v.content.MoveBlock(v.currentKey(), delta)
	if err != nil || idx == v.cursor {
		return nil
	}
	v.cursor = idx
	return v.persistContent()
}

func (v *View) toggleStyle(style domain.InlineStyle) tea.Cmd {
	if err := v.content.ToggleStyle(v.currentKey(), style); err != nil {
		logger.Warn("editor: toggling %s: %v", style, err)
		return nil
	}
	return v.persistContent()
}

// completeTag replaces the active query of the focused block with tag.
func (v *View) completeTag(tag string) tea.Cmd {
	if v.cursor < 0 {
		return nil
	}
	v.block.SetValue(domain.CompleteTag(v.block.Value(), tag))
	v.popup.Track(v.block.Value())
	return v.setBlockText(v.block.Value())
}

func (v *View) persistContent() tea.Cmd {
	return v.persist(v.session.SetContent(v.content))
}

// persist runs req in the background. A nil request means nothing may be
// sent; the session message explains why, if anything.
func (v *View) persist(req *driving.PersistRequest) tea.Cmd {
	if req == nil {
		if text := v.session.Message(); text != "" {
			return notice(text, true)
		}
		return nil
	}
	session := v.session
	ctx := v.ctx
	r := *req
	return func() tea.Msg {
		return messages.Persisted{Result: session.Run(ctx, r)}
	}
}

// complete hands a persist result back to the session.
func (v *View) complete(res driving.PersistResult) tea.Cmd {
	if v.session == nil {
		return nil
	}
	followUp, applied := v.session.Complete(res)
	if !applied {
		// A document closed before its save finished still has to reach
		// the page list, or reopening it would load the old content.
		if res.Err == nil && !res.Request.IsCreate() && v.session.Latest(res.Request) {
			return pageSaved(res)
		}
		return nil
	}

	var cmds []tea.Cmd
	if res.Err != nil {
		cmds = append(cmds, notice(v.session.Message(), true))
	} else {
		cmds = append(cmds, pageSaved(res))
	}
	if followUp != nil {
		cmds = append(cmds, v.persist(followUp))
	}
	return tea.Batch(cmds...)
}

func pageSaved(res driving.PersistResult) tea.Cmd {
	saved := messages.PageSaved{
		ID:      res.PageID,
		Title:   res.Request.Title,
		Content: res.Request.Content,
	}
	return func() tea.Msg { return saved }
}

func (v *View) focusTitle() {
	v.cursor = -1
	v.block.Blur()
	if v.focused {
		v.title.Focus()
	}
}

func (v *View) focusBlock(i int) {
	if i < 0 {
		v.focusTitle()
		return
	}
	if i >= len(v.content.Blocks) {
		return
	}
	v.cursor = i
	v.title.Blur()
	v.block.SetValue(v.content.Blocks[i].Text)
	v.popup.Track("")
	v.menu.Close()
	if v.focused {
		v.block.Focus()
	}
}

func notice(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return messages.Notice{Text: text, Err: isErr} }
}

// View renders the editor.
func (v *View) View() string {
	if v.session == nil {
		return v.styles.Muted.Render("Please select an item from the navigation pane.")
	}

	var b strings.Builder
	b.WriteString(v.title.View())
	b.WriteString("\n\n")

	ordinal := 0
	for i, blk := range v.content.Blocks {
		if blk.Type == domain.BlockOrderedListItem {
			ordinal++
		} else {
			ordinal = 0
		}
		if i == v.cursor {
			b.WriteString(marker(blk.Type, ordinal))
			b.WriteString(v.block.View())
			if menu := v.menu.View(); menu != "" {
				b.WriteString("\n")
				b.WriteString(menu)
			}
			if popup := v.popup.View(); popup != "" {
				b.WriteString("\n")
				b.WriteString(popup)
			}
		} else {
			b.WriteString(v.renderBlock(blk, ordinal))
		}
		b.WriteString("\n")
	}

	if v.session.State() == driving.SessionPersisting {
		b.WriteString(v.styles.Muted.Render("Saving..."))
	} else if msg := v.session.Message(); msg != "" {
		b.WriteString(v.styles.Error.Render(msg))
	}
	return strings.TrimRight(b.String(), "\n")
}

func marker(t domain.BlockType, ordinal int) string {
	switch t {
	case domain.BlockHeaderOne:
		return "# "
	case domain.BlockHeaderTwo:
		return "## "
	case domain.BlockHeaderThree:
		return "### "
	case domain.BlockQuote:
		return "> "
	case domain.BlockUnorderedListItem:
		return "• "
	case domain.BlockOrderedListItem:
		return strconv.Itoa(ordinal) + ". "
	case domain.BlockCode:
		return "    "
	default:
		return ""
	}
}

func (v *View) renderBlock(blk domain.Block, ordinal int) string {
	var style lipgloss.Style
	switch blk.Type {
	case domain.BlockHeaderOne:
		style = v.styles.HeadingOne
	case domain.BlockHeaderTwo:
		style = v.styles.HeadingTwo
	case domain.BlockHeaderThree:
		style = v.styles.HeadingThree
	case domain.BlockQuote:
		style = v.styles.Quote
	case domain.BlockCode:
		style = v.styles.Code
	default:
		style = v.styles.Normal
	}
	for _, r := range blk.Styles {
		switch r.Style {
		case domain.StyleBold:
			style = style.Bold(true)
		case domain.StyleItalic:
			style = style.Italic(true)
		case domain.StyleUnderline:
			style = style.Underline(true)
		}
	}
	text := blk.Text
	if text == "" {
		text = " "
	}
	return marker(blk.Type, ordinal) + style.Render(text)
}

// Content returns the working copy of the content.
func (v *View) Content() domain.StructuredContent {
	return v.content.Clone()
}

// Title returns the title input.
func (v *View) Title() *input.TextInput {
	return v.title
}

// Block returns the focused block input.
func (v *View) Block() *input.TextInput {
	return v.block
}

// Menu returns the slash block menu.
func (v *View) Menu() *blockmenu.Menu {
	return v.menu
}

// Popup returns the hashtag suggestion popup.
func (v *View) Popup() *suggest.Popup {
	return v.popup
}

// Cursor returns the focused block index, or -1 for the title.
func (v *View) Cursor() int {
	return v.cursor
}

// Message returns the session's user-visible error, if any.
func (v *View) Message() string {
	if v.session == nil {
		return ""
	}
	return v.session.Message()
}

// SetFocused sets whether the editor has keyboard focus.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
	if !focused {
		v.title.Blur()
		v.block.Blur()
		return
	}
	if v.cursor < 0 {
		v.title.Focus()
	} else {
		v.block.Focus()
	}
}

// SetDimensions sets the editor dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.title.SetWidth(width)
	v.block.SetWidth(width - 4)
}
