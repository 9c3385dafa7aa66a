package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ideapad/internal/core/codec"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// Ensure PageService implements the interface.
var _ driving.PageService = (*PageService)(nil)

// PageService manages the page directory.
type PageService struct {
	pages    driven.PageStore
	identity driven.IdentityStore
}

// NewPageService creates a new page service.
func NewPageService(pages driven.PageStore, identity driven.IdentityStore) *PageService {
	return &PageService{pages: pages, identity: identity}
}

// List returns the user's pages.
func (s *PageService) List(ctx context.Context) ([]domain.Page, error) {
	if s.pages == nil {
		return nil, domain.ErrNotImplemented
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return nil, err
	}
	pages, err := s.pages.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	return pages, nil
}

// Create stores a new empty page.
func (s *PageService) Create(ctx context.Context) (*domain.Page, error) {
	if s.pages == nil {
		return nil, domain.ErrNotImplemented
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return nil, err
	}
	pageID, err := s.pages.Save(ctx, id, driven.PageWrite{
		Title:   domain.DefaultTitle,
		Content: codec.EmptySerialized,
	})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return &domain.Page{ID: pageID, Title: domain.DefaultTitle, StoredContent: codec.EmptySerialized}, nil
}

// Delete removes the page with id.
func (s *PageService) Delete(ctx context.Context, pageID string) error {
	if s.pages == nil {
		return domain.ErrNotImplemented
	}
	if pageID == "" {
		return fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return err
	}
	if err := s.pages.Delete(ctx, id, pageID); err != nil {
		return fmt.Errorf("deleting page %s: %w", pageID, err)
	}
	return nil
}
