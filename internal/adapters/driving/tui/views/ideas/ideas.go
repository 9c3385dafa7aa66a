// Package ideas provides the Capture Quick Ideas view: a capture input with
// inline hashtag suggestions above the list of the user's ideas.
package ideas

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/suggest"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// Owner tags suggestion messages that belong to this view.
const Owner = "ideas"

// DeleteQuestion is asked before an idea is deleted.
const DeleteQuestion = "Do you really want to delete this Idea Capture?"

// View is the idea capture view.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	ideaService driving.IdeaService
	tagService  driving.TagService

	input  *input.TextInput
	popup  *suggest.Popup
	ideas  []domain.Idea
	cursor int
	// tag is the highlighted hashtag of the idea under the cursor.
	tag     int
	inList  bool
	confirm *domain.Idea
	saving  bool
	loading bool
	focused bool
	width   int
	height  int
}

// NewView creates the idea capture view.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	ideas driving.IdeaService,
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
		ctx:         ctx,
		styles:      s,
		keymap:      km,
		ideaService: ideas,
		tagService:  tags,
		input:       input.NewTextInput(s, "", "Type your idea..."),
		popup:       suggest.New(s),
		width:       60,
		height:      20,
	}
}

// Init loads the user's ideas.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	svc := v.ideaService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.IdeasLoaded{Err: domain.ErrNotImplemented}
		}
		list, err := svc.List(ctx)
		return messages.IdeasLoaded{Ideas: list, Err: err}
	}
}

func (v *View) capture(text string) tea.Cmd {
	v.saving = true
	svc := v.ideaService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.IdeaCaptured{Err: domain.ErrNotImplemented}
		}
		idea, err := svc.Capture(ctx, text)
		return messages.IdeaCaptured{Idea: idea, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	svc := v.ideaService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.IdeaDeleted{ID: id, Err: domain.ErrNotImplemented}
		}
		return messages.IdeaDeleted{ID: id, Err: svc.Delete(ctx, id)}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.IdeasLoaded:
		v.loading = false
		if msg.Err != nil {
			logger.Warn("ideas: loading: %v", msg.Err)
			return v, notice(domain.LoadIdeasFailure.Message(msg.Err), true)
		}
		v.ideas = msg.Ideas
		v.clamp()
		return v, nil

	case messages.IdeaCaptured:
		v.saving = false
		if msg.Err != nil {
			logger.Warn("ideas: capture: %v", msg.Err)
			return v, notice(domain.SaveIdeaFailure.Message(msg.Err), true)
		}
		v.input.Reset()
		v.popup.Track("")
		return v, tea.Batch(v.load(), notice("Idea saved.", false))

	case messages.IdeaDeleted:
		if msg.Err != nil {
			logger.Warn("ideas: delete %s: %v", msg.ID, msg.Err)
			return v, notice(domain.DeleteIdeaFailure.Message(msg.Err), true)
		}
		v.ideas = domain.RemoveIdea(v.ideas, msg.ID)
		v.clamp()
		return v, notice("Idea deleted.", false)

	case messages.SuggestionsLoaded:
		if msg.Owner != Owner {
			return v, nil
		}
		if msg.Err != nil {
			logger.Warn("ideas: suggestions for %q: %v", msg.Suggestions.Query, msg.Err)
			return v, notice(domain.SuggestTagsFailure.Message(msg.Err), true)
		}
		v.popup.SetSuggestions(msg.Suggestions)
		return v, nil

	case messages.TagCreated:
		if msg.Owner != Owner {
			return v, nil
		}
		if msg.Err != nil {
			logger.Warn("ideas: creating tag %q: %v", msg.Name, msg.Err)
			return v, notice(domain.CreateTagFailure.Message(msg.Err), true)
		}
		v.complete(msg.Name)
		return v, nil

	case messages.IdentityChanged:
		return v, v.load()
	}

	if v.focused && !v.inList {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirm != nil {
		key := msg.String()
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
	if v.inList {
		return v.handleListKey(msg)
	}
	return v.handleInputKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if consumed, choice := v.popup.Key(msg); consumed {
		if choice == nil {
			return v, nil
		}
		if choice.Create {
			return v, suggest.Create(v.ctx, v.tagService, Owner, choice.Tag)
		}
		v.complete(choice.Tag)
		return v, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		if v.saving {
			return v, nil
		}
		return v, v.capture(v.input.Value())
	case tea.KeyDown:
		if len(v.ideas) > 0 {
			v.inList = true
			v.tag = 0
			v.input.Blur()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if query, fetch := v.popup.Track(v.input.Value()); fetch {
		return v, tea.Batch(cmd, suggest.Fetch(v.ctx, v.tagService, Owner, query))
	}
	return v, cmd
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case msg.Type == tea.KeyEsc:
		v.leaveList()
	case keymap.Matches(key, v.keymap.Up):
		if v.cursor == 0 {
			v.leaveList()
			return v, nil
		}
		v.cursor--
		v.tag = 0
	case keymap.Matches(key, v.keymap.Down):
		if v.cursor < len(v.ideas)-1 {
			v.cursor++
			v.tag = 0
		}
	case key == "left" || key == "h":
		v.cycleTag(-1)
	case key == "right" || key == "l":
		v.cycleTag(1)
	case keymap.Matches(key, v.keymap.Select):
		if tag, ok := v.SelectedTag(); ok {
			d := domain.Detail{Kind: domain.DetailIdeasForTag, Tag: tag}
			return v, func() tea.Msg { return messages.DetailRequested{Detail: d} }
		}
	case keymap.Matches(key, v.keymap.Delete):
		if idea := v.SelectedIdea(); idea != nil {
			v.confirm = idea
		}
	}
	return v, nil
}

func (v *View) leaveList() {
	v.inList = false
	if v.focused {
		v.input.Focus()
	}
}

func (v *View) cycleTag(delta int) {
	idea := v.SelectedIdea()
	if idea == nil {
		return
	}
	n := len(idea.Hashtags())
	if n == 0 {
		return
	}
	v.tag = ((v.tag+delta)%n + n) % n
}

// complete replaces the active query with tag.
func (v *View) complete(tag string) {
	v.input.SetValue(domain.CompleteTag(v.input.Value(), tag))
	v.popup.Track(v.input.Value())
}

func (v *View) clamp() {
	if v.cursor >= len(v.ideas) {
		v.cursor = len(v.ideas) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	if len(v.ideas) == 0 && v.inList {
		v.leaveList()
	}
	v.tag = 0
}

// View renders the view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Capture Quick Ideas"))
	b.WriteString("\n")
	b.WriteString(v.input.View())
	if popup := v.popup.View(); popup != "" {
		b.WriteString("\n")
		b.WriteString(popup)
	}
	if v.saving {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Saving..."))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Your Ideas"))
	b.WriteString("\n")
	b.WriteString(v.renderIdeas())
	if v.confirm != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Warning.Render(DeleteQuestion + " [y/n]"))
	}
	return b.String()
}

func (v *View) renderIdeas() string {
	if len(v.ideas) == 0 {
		if v.loading {
			return v.styles.Muted.Render("Loading...")
		}
		return v.styles.Muted.Render("No ideas yet.")
	}

	visible := (v.height - 8) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if v.cursor >= visible {
		start = v.cursor - visible + 1
	}
	end := start + visible
	if end > len(v.ideas) {
		end = len(v.ideas)
	}

	lines := make([]string, 0, 2*(end-start))
	for i := start; i < end; i++ {
		idea := v.ideas[i]
		current := v.inList && i == v.cursor
		prefix := "  "
		if current {
			prefix = v.styles.Selected.Render(">") + " "
		}
		lines = append(lines, prefix+v.renderText(idea.Text, current))
		if !idea.CreatedAt.IsZero() {
			lines = append(lines, "  "+v.styles.Muted.Render(idea.CreatedAt.Local().Format(time.DateTime)))
		}
	}
	return strings.Join(lines, "\n")
}

// renderText styles the hashtags of text. The highlighted tag of the
// current idea is rendered as selected.
func (v *View) renderText(text string, current bool) string {
	var b strings.Builder
	tag := 0
	for _, seg := range domain.SplitHashtags(text) {
		if !seg.IsTag() {
			b.WriteString(v.styles.Normal.Render(seg.Text))
			continue
		}
		if current && tag == v.tag {
			b.WriteString(v.styles.Selected.Render(seg.Text))
		} else {
			b.WriteString(v.styles.Tag.Render(seg.Text))
		}
		tag++
	}
	return b.String()
}

func notice(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return messages.Notice{Text: text, Err: isErr} }
}

// Ideas returns the loaded ideas.
func (v *View) Ideas() []domain.Idea {
	return v.ideas
}

// Input returns the capture input.
func (v *View) Input() *input.TextInput {
	return v.input
}

// Popup returns the hashtag suggestion popup.
func (v *View) Popup() *suggest.Popup {
	return v.popup
}

// InList reports whether the cursor is in the idea list.
func (v *View) InList() bool {
	return v.inList
}

// Confirming reports whether a delete confirmation is pending.
func (v *View) Confirming() bool {
	return v.confirm != nil
}

// Saving reports whether a capture is in flight.
func (v *View) Saving() bool {
	return v.saving
}

// SelectedIdea returns the idea under the cursor while the list is active.
func (v *View) SelectedIdea() *domain.Idea {
	if !v.inList || len(v.ideas) == 0 {
		return nil
	}
	idea := v.ideas[v.cursor]
	return &idea
}

// SelectedTag returns the highlighted hashtag of the idea under the cursor.
func (v *View) SelectedTag() (string, bool) {
	idea := v.SelectedIdea()
	if idea == nil {
		return "", false
	}
	tags := idea.Hashtags()
	if len(tags) == 0 {
		return "", false
	}
	return tags[v.tag], true
}

// SetFocused sets whether the view has keyboard focus.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
	if focused && !v.inList {
		v.input.Focus()
		return
	}
	v.input.Blur()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}
