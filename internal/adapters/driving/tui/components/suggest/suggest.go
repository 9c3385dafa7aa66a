// Package suggest provides the inline '#' hashtag suggestion popup.
//
// The popup follows the trigger rule of domain.FindTagQuery: typing '#'
// opens it, every following character refines the query and whitespace or
// a chosen tag closes it. Answers for anything but the current query are
// dropped.
package suggest

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// Option is a row of the popup.
type Option struct {
	// Tag is the tag name without '#'.
	Tag string

	// Create is true for the "create new tag" row.
	Create bool
}

// Popup tracks the active tag query of one input and its candidates.
type Popup struct {
	styles      *styles.Styles
	query       domain.TagQuery
	suggestions driving.Suggestions
	loaded      bool
	selected    int
	// dismissed holds the Start of a query closed with esc.
	dismissed int
}

// New creates a closed popup.
func New(s *styles.Styles) *Popup {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Popup{styles: s, dismissed: -1}
}

// Track re-applies the trigger rule to value. It returns the query to fetch
// when the query changed and is not empty.
func (p *Popup) Track(value string) (string, bool) {
	q := domain.FindTagQuery(value)
	if !q.Active {
		p.reset()
		return "", false
	}
	if p.dismissed >= 0 && p.dismissed != q.Start {
		p.dismissed = -1
	}
	if p.query.Active && p.query.Start == q.Start && p.query.Query == q.Query {
		return "", false
	}
	p.query = q
	p.loaded = false
	p.selected = 0
	p.suggestions = driving.Suggestions{}
	if q.Query == "" || p.dismissed >= 0 {
		return "", false
	}
	return q.Query, true
}

func (p *Popup) reset() {
	p.query = domain.TagQuery{}
	p.suggestions = driving.Suggestions{}
	p.loaded = false
	p.selected = 0
	p.dismissed = -1
}

// SetSuggestions applies s if it answers the current query and reports
// whether it was applied.
func (p *Popup) SetSuggestions(s driving.Suggestions) bool {
	if !p.query.Active || s.Query != p.query.Query {
		return false
	}
	p.suggestions = s
	p.loaded = true
	if p.selected >= len(p.Options()) {
		p.selected = 0
	}
	return true
}

// Active reports whether the popup is shown.
func (p *Popup) Active() bool {
	return p.query.Active && p.dismissed < 0
}

// Query returns the text typed after the active '#'.
func (p *Popup) Query() string {
	return p.query.Query
}

// Loaded reports whether candidates for the current query arrived.
func (p *Popup) Loaded() bool {
	return p.loaded
}

// Options returns the rows: candidates, then "create" when the query is
// not an exact match.
func (p *Popup) Options() []Option {
	if !p.Active() {
		return nil
	}
	opts := make([]Option, 0, len(p.suggestions.Tags)+1)
	for _, t := range p.suggestions.Tags {
		opts = append(opts, Option{Tag: t})
	}
	if p.loaded && p.query.Query != "" && !p.suggestions.ExactMatch && domain.IsValidTagName(p.query.Query) {
		opts = append(opts, Option{Tag: p.query.Query, Create: true})
	}
	return opts
}

// Move shifts the cursor by delta, wrapping around.
func (p *Popup) Move(delta int) {
	n := len(p.Options())
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// Selected returns the cursor index.
func (p *Popup) Selected() int {
	return p.selected
}

// Choice returns the option under the cursor.
func (p *Popup) Choice() (Option, bool) {
	opts := p.Options()
	if len(opts) == 0 {
		return Option{}, false
	}
	return opts[p.selected], true
}

// Dismiss hides the popup until a new '#' is typed.
func (p *Popup) Dismiss() {
	if p.query.Active {
		p.dismissed = p.query.Start
	}
}

// Key applies a navigation key to the open popup. It reports whether the
// key was consumed and, for enter or tab, returns the chosen option.
func (p *Popup) Key(msg tea.KeyMsg) (bool, *Option) {
	if !p.Active() {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyUp:
		p.Move(-1)
		return true, nil
	case tea.KeyDown:
		p.Move(1)
		return true, nil
	case tea.KeyEsc:
		p.Dismiss()
		return true, nil
	case tea.KeyEnter, tea.KeyTab:
		choice, ok := p.Choice()
		if !ok {
			return false, nil
		}
		return true, &choice
	}
	return false, nil
}

// View renders the popup, or nothing when it is closed.
func (p *Popup) View() string {
	if !p.Active() {
		return ""
	}

	var lines []string
	switch {
	case p.query.Query == "":
		lines = append(lines, p.styles.Muted.Render("Type to search hashtags"))
	case !p.loaded:
		lines = append(lines, p.styles.Muted.Render("Searching #"+p.query.Query+"..."))
	}
	for i, o := range p.Options() {
		label := "#" + o.Tag
		if o.Create {
			label = "Create new tag: #" + o.Tag
		}
		if i == p.selected {
			lines = append(lines, p.styles.Selected.Render(label))
			continue
		}
		if o.Create {
			lines = append(lines, p.styles.Muted.Render(label))
			continue
		}
		lines = append(lines, p.styles.Tag.Render(label))
	}
	if p.loaded && len(lines) == 0 {
		lines = append(lines, p.styles.Muted.Render("No matching hashtags"))
	}
	return p.styles.Popup.Render(strings.Join(lines, "\n"))
}

// Fetch returns a command that loads suggestions for owner's query.
func Fetch(ctx context.Context, tags driving.TagService, owner, query string) tea.Cmd {
	return func() tea.Msg {
		if tags == nil {
			return messages.SuggestionsLoaded{Owner: owner, Err: domain.ErrNotImplemented}
		}
		s, err := tags.Suggest(ctx, query)
		if s.Query == "" {
			s.Query = strings.TrimPrefix(query, "#")
		}
		return messages.SuggestionsLoaded{Owner: owner, Suggestions: s, Err: err}
	}
}

// Create returns a command that registers name for owner's input.
func Create(ctx context.Context, tags driving.TagService, owner, name string) tea.Cmd {
	return func() tea.Msg {
		if tags == nil {
			return messages.TagCreated{Owner: owner, Name: name, Err: domain.ErrNotImplemented}
		}
		return messages.TagCreated{Owner: owner, Name: name, Err: tags.Create(ctx, name)}
	}
}
