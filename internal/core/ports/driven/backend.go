package driven

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// IdeaStore persists the ideas of a user.
type IdeaStore interface {
	// List returns all ideas captured by the user.
	List(ctx context.Context, id domain.Identity) ([]domain.Idea, error)

	// Create stores a new idea. hashtags is the comma-joined tag list.
	// The returned idea carries the backend identifier when one is reported.
	Create(ctx context.Context, id domain.Identity, text, hashtags string) (*domain.Idea, error)

	// Delete removes the idea with ideaID.
	Delete(ctx context.Context, id domain.Identity, ideaID string) error

	// ListByHashtag returns the user's ideas that mention tag.
	ListByHashtag(ctx context.Context, id domain.Identity, tag string) ([]domain.Idea, error)
}

// PageWrite is the payload of a page create-or-update.
type PageWrite struct {
	// ID is empty for a create.
	ID string

	// Title is the trimmed page title.
	Title string

	// Content is the serialized structured content.
	Content string
}

// PageStore persists the document pages of a user.
type PageStore interface {
	// List returns the user's pages for the navigation pane.
	List(ctx context.Context, id domain.Identity) ([]domain.Page, error)

	// Save creates the page when w.ID is empty, otherwise updates it.
	// It returns the page identifier.
	Save(ctx context.Context, id domain.Identity, w PageWrite) (string, error)

	// Delete removes the page with pageID.
	Delete(ctx context.Context, id domain.Identity, pageID string) error
}

// HashtagStore serves tag suggestions and aggregates.
type HashtagStore interface {
	// Suggest returns candidate tag names for a non-empty query.
	// The matching policy belongs to the implementation.
	Suggest(ctx context.Context, query string) ([]string, error)

	// Create registers a new tag name.
	Create(ctx context.Context, name string) error

	// List returns every tag with its usage count.
	List(ctx context.Context) ([]domain.Tag, error)

	// Messages returns the texts mentioning tag.
	Messages(ctx context.Context, tag string) ([]domain.TagMessage, error)
}
