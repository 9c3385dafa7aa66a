package domain

// Target is the renderer the center pane routes a selection to.
type Target int

const (
	// TargetNone is shown before anything is selected.
	TargetNone Target = iota
	// TargetFeature is a named predefined feature view.
	TargetFeature
	// TargetTagListing is the tag aggregate listing.
	TargetTagListing
	// TargetDocument is an open document session.
	TargetDocument
)

// String returns the string representation of the target.
func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetFeature:
		return "feature"
	case TargetTagListing:
		return "tag_listing"
	case TargetDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Identifiers of the predefined navigation entries.
const (
	NavCaptureIdeas    = "capture-ideas"
	NavHashtagMessages = "hashtag-messages"
)

// NavItem is an entry of the navigation pane.
type NavItem struct {
	ID     string
	Label  string
	Target Target
	// Page is set for document entries.
	Page *Page
}

// PredefinedNavItems are listed above the user's pages.
var PredefinedNavItems = []NavItem{
	{ID: NavCaptureIdeas, Label: "Capture Quick Ideas", Target: TargetFeature},
	{ID: NavHashtagMessages, Label: "Hashtag Messages", Target: TargetTagListing},
}

// PageNavItem returns the navigation entry for a page.
func PageNavItem(p Page) NavItem {
	page := p
	return NavItem{ID: p.ID, Label: p.DisplayTitle(), Target: TargetDocument, Page: &page}
}

// DetailKind identifies what the detail pane shows.
type DetailKind int

const (
	// DetailIdeasForTag lists the user's ideas mentioning a tag.
	DetailIdeasForTag DetailKind = iota + 1
	// DetailTagMessages lists every message mentioning a tag.
	DetailTagMessages
)

// Detail is the content of the secondary pane.
type Detail struct {
	Kind DetailKind
	Tag  string
}

// Panes is the layout state: selection, navigation collapse and the
// detail pane. Transitions are pure and return the next state.
type Panes struct {
	Selected  *NavItem
	Collapsed bool
	Detail    *Detail
}

// Select applies a selection. A nil item toggles navigation collapse and
// leaves everything else unchanged. Any item replaces the selection and
// closes the detail pane.
func (p Panes) Select(item *NavItem) Panes {
	if item == nil {
		p.Collapsed = !p.Collapsed
		return p
	}
	sel := *item
	p.Selected = &sel
	p.Detail = nil
	return p
}

// Target returns the renderer for the current selection.
func (p Panes) Target() Target {
	if p.Selected == nil {
		return TargetNone
	}
	return p.Selected.Target
}

// OpenDetail shows d in the detail pane.
func (p Panes) OpenDetail(d Detail) Panes {
	p.Detail = &d
	return p
}

// CloseDetail hides the detail pane.
func (p Panes) CloseDetail() Panes {
	p.Detail = nil
	return p
}

// Close clears the selection and the detail pane.
func (p Panes) Close() Panes {
	p.Selected = nil
	p.Detail = nil
	return p
}

// Removed reacts to the deletion of the item with id. The selection is
// cleared when it pointed at that item.
func (p Panes) Removed(id string) Panes {
	if p.Selected != nil && p.Selected.ID == id {
		return p.Close()
	}
	return p
}

// IsSelected reports whether the item with id is selected.
func (p Panes) IsSelected(id string) bool {
	return p.Selected != nil && p.Selected.ID == id
}
