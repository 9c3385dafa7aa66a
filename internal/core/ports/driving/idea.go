package driving

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// IdeaService manages the current user's ideas.
type IdeaService interface {
	// List returns the user's ideas.
	List(ctx context.Context) ([]domain.Idea, error)

	// Capture trims and stores text as a new idea tagged with the hashtags
	// it embeds. Empty text is rejected with domain.ErrEmptyIdea.
	Capture(ctx context.Context, text string) (*domain.Idea, error)

	// Delete removes the idea with id.
	Delete(ctx context.Context, id string) error

	// ByHashtag returns the user's ideas mentioning tag.
	ByHashtag(ctx context.Context, tag string) ([]domain.Idea, error)
}
