package domain

import "strings"

// DefaultTitle is used for documents without a title.
const DefaultTitle = "Untitled Page"

// Document is an editable page.
type Document struct {
	// ID is the backend-assigned identifier. Empty means the document
	// has never been saved.
	ID string

	// Title is the human-readable title.
	Title string

	// Content is the structured rich-text body.
	Content StructuredContent
}

// IsNew reports whether the document has not been persisted yet.
func (d Document) IsNew() bool {
	return d.ID == ""
}

// Page is a document entry as listed by the backend. StoredContent is the
// stored serialized content exactly as received and may be absent, a
// string, or any other JSON value.
type Page struct {
	ID            string
	Title         string
	StoredContent any
}

// DisplayTitle returns the title, or DefaultTitle when it is blank.
func (p Page) DisplayTitle() string {
	if strings.TrimSpace(p.Title) == "" {
		return DefaultTitle
	}
	return p.Title
}

// RemovePage returns pages without the entry matching id.
func RemovePage(pages []Page, id string) []Page {
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
