// Package detail provides the secondary pane: the ideas or messages that
// mention one hashtag.
package detail

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// View is the detail pane.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	ideaService driving.IdeaService
	tagService  driving.TagService

	detail  *domain.Detail
	list    *list.List
	loading bool
	focused bool
	width   int
	height  int
}

// NewView creates the detail pane.
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
		list:        list.New(s, "No messages for this hashtag."),
	}
}

// Open shows d and returns the command loading its entries.
func (v *View) Open(d domain.Detail) tea.Cmd {
	v.detail = &d
	v.list.SetItems(nil)
	v.loading = true

	ctx := v.ctx
	tag := d.Tag
	if d.Kind == domain.DetailIdeasForTag {
		svc := v.ideaService
		return func() tea.Msg {
			if svc == nil {
				return messages.TagIdeasLoaded{Tag: tag, Err: domain.ErrNotImplemented}
			}
			ideas, err := svc.ByHashtag(ctx, tag)
			return messages.TagIdeasLoaded{Tag: tag, Ideas: ideas, Err: err}
		}
	}
	svc := v.tagService
	return func() tea.Msg {
		if svc == nil {
			return messages.TagMessagesLoaded{Tag: tag, Err: domain.ErrNotImplemented}
		}
		msgs, err := svc.Messages(ctx, tag)
		return messages.TagMessagesLoaded{Tag: tag, Messages: msgs, Err: err}
	}
}

// Close clears the pane.
func (v *View) Close() {
	v.detail = nil
	v.loading = false
	v.list.SetItems(nil)
}

// Update handles messages for the pane. Results for a tag or kind that is
// no longer shown are dropped.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TagIdeasLoaded:
		if !v.showing(domain.DetailIdeasForTag, msg.Tag) {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			logger.Warn("detail: ideas for #%s: %v", msg.Tag, msg.Err)
			return v, notice(domain.LoadIdeasFailure.Message(msg.Err))
		}
		items := make([]list.Item, len(msg.Ideas))
		for i, idea := range msg.Ideas {
			items[i] = list.Item{ID: idea.ID, Title: idea.Text, Detail: stamp(idea.CreatedAt)}
		}
		v.list.SetItems(items)
		return v, nil

	case messages.TagMessagesLoaded:
		if !v.showing(domain.DetailTagMessages, msg.Tag) {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			logger.Warn("detail: messages for #%s: %v", msg.Tag, msg.Err)
			return v, notice(domain.LoadMessagesFailure.Message(msg.Err))
		}
		items := make([]list.Item, len(msg.Messages))
		for i, m := range msg.Messages {
			items[i] = list.Item{ID: m.ID, Title: m.Text, Detail: stamp(m.CreatedAt)}
		}
		v.list.SetItems(items)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg { return messages.DetailClosed{} }
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) showing(kind domain.DetailKind, tag string) bool {
	return v.detail != nil && v.detail.Kind == kind && v.detail.Tag == tag
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.DateTime)
}

func notice(text string) tea.Cmd {
	return func() tea.Msg { return messages.Notice{Text: text, Err: true} }
}

// View renders the pane.
func (v *View) View() string {
	if v.detail == nil {
		return v.styles.Muted.Render("No content selected for the right pane.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.header()))
	b.WriteString("\n\n")
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}
	b.WriteString(v.list.Render(v.focused))
	return b.String()
}

func (v *View) header() string {
	if v.detail.Kind == domain.DetailIdeasForTag {
		return "Ideas for #" + v.detail.Tag
	}
	return "Messages for #" + v.detail.Tag
}

// Detail returns what the pane shows, or nil.
func (v *View) Detail() *domain.Detail {
	return v.detail
}

// Count returns the number of loaded entries.
func (v *View) Count() int {
	return v.list.Count()
}

// SetFocused sets whether the pane has keyboard focus.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
}

// SetDimensions sets the pane dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-2)
}
