package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService serves tag suggestions and the tag listing.
// It keeps no cache; every query goes to the store. Creating a tag needs a
// session.
type TagService struct {
	hashtags driven.HashtagStore
	identity driven.IdentityStore
}

// NewTagService creates a new tag service.
func NewTagService(hashtags driven.HashtagStore, identity driven.IdentityStore) *TagService {
	return &TagService{hashtags: hashtags, identity: identity}
}

// Suggest returns candidates for query and whether query is one of them.
func (s *TagService) Suggest(ctx context.Context, query string) (driving.Suggestions, error) {
	query = strings.TrimPrefix(query, "#")
	result := driving.Suggestions{Query: query, Tags: []string{}}
	if query == "" {
		return result, nil
	}
	if s.hashtags == nil {
		return result, domain.ErrNotImplemented
	}

	tags, err := s.hashtags.Suggest(ctx, query)
	if err != nil {
		return result, fmt.Errorf("suggesting hashtags for %q: %w", query, err)
	}
	if tags != nil {
		result.Tags = tags
	}
	for _, t := range tags {
		if t == query {
			result.ExactMatch = true
			break
		}
	}
	return result, nil
}

// Create registers a new tag name.
func (s *TagService) Create(ctx context.Context, name string) error {
	if s.hashtags == nil {
		return domain.ErrNotImplemented
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	if !domain.IsValidTagName(name) {
		return fmt.Errorf("%w: %q is not a valid hashtag", domain.ErrInvalidInput, name)
	}
	if _, err := requireIdentity(s.identity); err != nil {
		return err
	}
	if err := s.hashtags.Create(ctx, name); err != nil {
		return fmt.Errorf("creating hashtag %q: %w", name, err)
	}
	return nil
}

// ListAll returns every tag with its usage count.
func (s *TagService) ListAll(ctx context.Context) ([]domain.Tag, error) {
	if s.hashtags == nil {
		return nil, domain.ErrNotImplemented
	}
	tags, err := s.hashtags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hashtags: %w", err)
	}
	return tags, nil
}

// Messages returns the texts mentioning tag.
func (s *TagService) Messages(ctx context.Context, tag string) ([]domain.TagMessage, error) {
	if s.hashtags == nil {
		return nil, domain.ErrNotImplemented
	}
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return nil, fmt.Errorf("%w: hashtag is required", domain.ErrInvalidInput)
	}
	msgs, err := s.hashtags.Messages(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("loading messages for #%s: %w", tag, err)
	}
	return msgs, nil
}
