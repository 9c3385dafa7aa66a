package driving

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

// PageService manages the page directory shown in the navigation pane.
type PageService interface {
	// List returns the user's pages.
	List(ctx context.Context) ([]domain.Page, error)

	// Create stores a new empty page titled domain.DefaultTitle.
	Create(ctx context.Context) (*domain.Page, error)

	// Delete removes the page with id.
	Delete(ctx context.Context, id string) error
}
