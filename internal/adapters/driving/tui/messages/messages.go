// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
// Backend calls run as tea.Cmd functions and report back with one of these.
package messages

import (
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// Pane identifies one of the three layout columns.
type Pane int

const (
	// PaneNav is the navigation pane.
	PaneNav Pane = iota
	// PaneCenter is the main content pane.
	PaneCenter
	// PaneDetail is the secondary pane.
	PaneDetail
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneNav:
		return "nav"
	case PaneCenter:
		return "center"
	case PaneDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// NavSelected is sent when a navigation entry is chosen. A nil Item
// toggles navigation collapse.
type NavSelected struct {
	Item *domain.NavItem
}

// DetailRequested opens the detail pane.
type DetailRequested struct {
	Detail domain.Detail
}

// DetailClosed closes the detail pane.
type DetailClosed struct{}

// CenterClosed clears the center pane selection.
type CenterClosed struct{}

// FocusChanged moves keyboard focus to a pane.
type FocusChanged struct {
	Pane Pane
}

// PagesLoaded carries the page directory.
type PagesLoaded struct {
	Pages []domain.Page
	Err   error
}

// PageCreated is sent when a new page was stored.
type PageCreated struct {
	Page *domain.Page
	Err  error
}

// PageDeleted is sent when a page delete finished.
type PageDeleted struct {
	ID  string
	Err error
}

// PageSaved is sent when a document was persisted so the navigation pane
// holds its current title and serialized content.
type PageSaved struct {
	ID      string
	Title   string
	Content string
}

// Persisted carries the outcome of a document persist request.
type Persisted struct {
	Result driving.PersistResult
}

// IdeasLoaded carries the user's ideas.
type IdeasLoaded struct {
	Ideas []domain.Idea
	Err   error
}

// IdeaCaptured is sent when an idea capture finished.
type IdeaCaptured struct {
	Idea *domain.Idea
	Err  error
}

// IdeaDeleted is sent when an idea delete finished.
type IdeaDeleted struct {
	ID  string
	Err error
}

// SuggestionsLoaded carries hashtag suggestions for Owner's input.
type SuggestionsLoaded struct {
	Owner       string
	Suggestions driving.Suggestions
	Err         error
}

// TagCreated is sent when a new hashtag was registered from Owner's input.
type TagCreated struct {
	Owner string
	Name  string
	Err   error
}

// TagsLoaded carries the tag listing.
type TagsLoaded struct {
	Tags []domain.Tag
	Err  error
}

// TagMessagesLoaded carries the messages mentioning Tag.
type TagMessagesLoaded struct {
	Tag      string
	Messages []domain.TagMessage
	Err      error
}

// TagIdeasLoaded carries the user's ideas mentioning Tag.
type TagIdeasLoaded struct {
	Tag   string
	Ideas []domain.Idea
	Err   error
}

// IdentityChanged is sent when the stored user changed outside the TUI.
type IdentityChanged struct{}

// StatusCleared resets the status bar message.
type StatusCleared struct{}

// Notice asks the status bar to show Text. Err marks it as a failure.
type Notice struct {
	Text string
	Err  bool
}
