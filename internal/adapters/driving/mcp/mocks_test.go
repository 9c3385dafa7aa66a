package mcp

import (
	"context"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// mockIdeaService is a mock implementation of driving.IdeaService.
type mockIdeaService struct {
	ideas    []domain.Idea
	captured []string
	tag      string
	err      error
}

func (m *mockIdeaService) List(_ context.Context) ([]domain.Idea, error) {
	return m.ideas, m.err
}

func (m *mockIdeaService) Capture(_ context.Context, text string) (*domain.Idea, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.captured = append(m.captured, text)
	return &domain.Idea{ID: "1", Text: text}, nil
}

func (m *mockIdeaService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIdeaService) ByHashtag(_ context.Context, tag string) ([]domain.Idea, error) {
	m.tag = tag
	return m.ideas, m.err
}

// mockTagService is a mock implementation of driving.TagService.
type mockTagService struct {
	suggestions driving.Suggestions
	tags        []domain.Tag
	messages    []domain.TagMessage
	tag         string
	err         error
}

func (m *mockTagService) Suggest(_ context.Context, _ string) (driving.Suggestions, error) {
	return m.suggestions, m.err
}

func (m *mockTagService) Create(_ context.Context, _ string) error {
	return m.err
}

func (m *mockTagService) ListAll(_ context.Context) ([]domain.Tag, error) {
	return m.tags, m.err
}

func (m *mockTagService) Messages(_ context.Context, tag string) ([]domain.TagMessage, error) {
	m.tag = tag
	return m.messages, m.err
}

// mockPageService is a mock implementation of driving.PageService.
type mockPageService struct {
	pages []domain.Page
	err   error
}

func (m *mockPageService) List(_ context.Context) ([]domain.Page, error) {
	return m.pages, m.err
}

func (m *mockPageService) Create(_ context.Context) (*domain.Page, error) {
	return &domain.Page{ID: "1", Title: domain.DefaultTitle}, m.err
}

func (m *mockPageService) Delete(_ context.Context, _ string) error {
	return m.err
}
