package driving

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// Suggestions is the answer to a tag query.
type Suggestions struct {
	// Query is the query the suggestions were computed for.
	Query string

	// Tags are the candidate tag names.
	Tags []string

	// ExactMatch is true when Query itself is among Tags.
	ExactMatch bool
}

// TagService serves the inline '#' autocomplete and the tag listing.
type TagService interface {
	// Suggest returns candidates for query. An empty query returns no
	// candidates without contacting the backend.
	Suggest(ctx context.Context, query string) (Suggestions, error)

	// Create registers a new tag name.
	Create(ctx context.Context, name string) error

	// ListAll returns every tag with its usage count.
	ListAll(ctx context.Context) ([]domain.Tag, error)

	// Messages returns the texts mentioning tag.
	Messages(ctx context.Context, tag string) ([]domain.TagMessage, error)
}
