// Package tags provides the Hashtag Messages listing.
package tags

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// View lists every hashtag with its usage count.
type View struct {
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	tagService driving.TagService

	list    *list.List
	tags    []domain.Tag
	loading bool
	focused bool
	width   int
	height  int
}

// NewView creates the tag listing.
func NewView(ctx context.Context, s *styles.Styles, km *keymap.KeyMap, tags driving.TagService) *View {
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
		tagService: tags,
		list:       list.New(s, "No hashtags yet."),
	}
}

// Init loads the tag listing.
func (v *View) Init() tea.Cmd {
	v.loading = true
	svc := v.tagService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.TagsLoaded{Err: domain.ErrNotImplemented}
		}
		all, err := svc.ListAll(ctx)
		return messages.TagsLoaded{Tags: all, Err: err}
	}
}

// Update handles messages for the listing.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TagsLoaded:
		v.loading = false
		if msg.Err != nil {
			logger.Warn("tags: loading: %v", msg.Err)
			text := domain.LoadTagsFailure.Message(msg.Err)
			return v, func() tea.Msg { return messages.Notice{Text: text, Err: true} }
		}
		v.setTags(msg.Tags)
		return v, nil

	case messages.IdentityChanged:
		return v, v.Init()

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Select) {
			if tag, ok := v.SelectedTag(); ok {
				d := domain.Detail{Kind: domain.DetailTagMessages, Tag: tag}
				return v, func() tea.Msg { return messages.DetailRequested{Detail: d} }
			}
			return v, nil
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) setTags(all []domain.Tag) {
	v.tags = all
	items := make([]list.Item, len(all))
	for i, t := range all {
		items[i] = list.Item{ID: t.Name, Title: fmt.Sprintf("#%s (%d)", t.Name, t.UsageCount)}
	}
	v.list.SetItems(items)
}

// View renders the listing.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Hashtag Messages"))
	b.WriteString("\n\n")
	if v.loading && len(v.tags) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}
	b.WriteString(v.list.Render(v.focused))
	return b.String()
}

// Tags returns the loaded tags.
func (v *View) Tags() []domain.Tag {
	return v.tags
}

// SelectedTag returns the tag under the cursor.
func (v *View) SelectedTag() (string, bool) {
	item := v.list.SelectedItem()
	if item == nil {
		return "", false
	}
	return item.ID, true
}

// SetFocused sets whether the view has keyboard focus.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-2)
}
