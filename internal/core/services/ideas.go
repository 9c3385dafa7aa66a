package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// Ensure IdeaService implements the interface.
var _ driving.IdeaService = (*IdeaService)(nil)

// IdeaService manages the current user's ideas.
type IdeaService struct {
	ideas    driven.IdeaStore
	identity driven.IdentityStore
}

// NewIdeaService creates a new idea service.
func NewIdeaService(ideas driven.IdeaStore, identity driven.IdentityStore) *IdeaService {
	return &IdeaService{ideas: ideas, identity: identity}
}

// List returns the user's ideas.
func (s *IdeaService) List(ctx context.Context) ([]domain.Idea, error) {
	if s.ideas == nil {
		return nil, domain.ErrNotImplemented
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return nil, err
	}
	ideas, err := s.ideas.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}
	return ideas, nil
}

// Capture trims text and stores it with the hashtags it embeds.
func (s *IdeaService) Capture(ctx context.Context, text string) (*domain.Idea, error) {
	if s.ideas == nil {
		return nil, domain.ErrNotImplemented
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyIdea
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return nil, err
	}

	tags := domain.JoinHashtags(domain.ExtractHashtags(text))
	logger.Debug("capturing idea for user %s with tags %q", id.UserID, tags)

	idea, err := s.ideas.Create(ctx, id, text, tags)
	if err != nil {
		return nil, fmt.Errorf("capturing idea: %w", err)
	}
	if idea == nil {
		idea = &domain.Idea{}
	}
	if idea.Text == "" {
		idea.Text = text
	}
	return idea, nil
}

// Delete removes the idea with id.
func (s *IdeaService) Delete(ctx context.Context, ideaID string) error {
	if s.ideas == nil {
		return domain.ErrNotImplemented
	}
	if ideaID == "" {
		return fmt.Errorf("%w: idea id is required", domain.ErrInvalidInput)
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return err
	}
	if err := s.ideas.Delete(ctx, id, ideaID); err != nil {
		return fmt.Errorf("deleting idea %s: %w", ideaID, err)
	}
	return nil
}

// ByHashtag returns the user's ideas mentioning tag.
func (s *IdeaService) ByHashtag(ctx context.Context, tag string) ([]domain.Idea, error) {
	if s.ideas == nil {
		return nil, domain.ErrNotImplemented
	}
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return nil, fmt.Errorf("%w: hashtag is required", domain.ErrInvalidInput)
	}
	id, err := requireIdentity(s.identity)
	if err != nil {
		return nil, err
	}
	ideas, err := s.ideas.ListByHashtag(ctx, id, tag)
	if err != nil {
		return nil, fmt.Errorf("listing ideas for #%s: %w", tag, err)
	}
	return ideas, nil
}
