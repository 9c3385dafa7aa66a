package tags

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// MockTagService implements driving.TagService for testing.
type MockTagService struct {
	ListAllFunc func(ctx context.Context) ([]domain.Tag, error)
}

func (m *MockTagService) Suggest(_ context.Context, q string) (driving.Suggestions, error) {
	return driving.Suggestions{Query: q}, nil
}

func (m *MockTagService) Create(context.Context, string) error { return nil }

func (m *MockTagService) ListAll(ctx context.Context) ([]domain.Tag, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockTagService) Messages(context.Context, string) ([]domain.TagMessage, error) {
	return nil, nil
}

func TestView_InitLoadsTags(t *testing.T) {
	mock := &MockTagService{ListAllFunc: func(context.Context) ([]domain.Tag, error) {
		return []domain.Tag{{Name: "launch", UsageCount: 3}, {Name: "docs", UsageCount: 1}}, nil
	}}
	v := NewView(context.Background(), nil, nil, mock)

	cmd := v.Init()
	assert.Contains(t, v.View(), "Loading...")

	v.Update(cmd())

	require.Len(t, v.Tags(), 2)
	view := v.View()
	assert.Contains(t, view, "Hashtag Messages")
	assert.Contains(t, view, "#launch (3)")
	assert.Contains(t, view, "#docs (1)")
}

func TestView_Empty(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockTagService{})

	v.Update(messages.TagsLoaded{})

	assert.Contains(t, v.View(), "No hashtags yet.")
	_, ok := v.SelectedTag()
	assert.False(t, ok)
}

func TestView_LoadError(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockTagService{})

	_, cmd := v.Update(messages.TagsLoaded{Err: &domain.TransportError{Op: "tags", Err: errors.New("x")}})

	require.NotNil(t, cmd)
	assert.Equal(t, domain.LoadTagsFailure.Unreachable, cmd().(messages.Notice).Text)
}

func TestView_EnterOpensMessages(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockTagService{})
	v.SetFocused(true)
	v.Update(messages.TagsLoaded{Tags: []domain.Tag{{Name: "a"}, {Name: "b"}}})

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	req := cmd().(messages.DetailRequested)
	assert.Equal(t, domain.Detail{Kind: domain.DetailTagMessages, Tag: "b"}, req.Detail)
}

func TestView_EnterWithoutTags(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockTagService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil, nil, nil)

	msg := v.Init()().(messages.TagsLoaded)

	assert.ErrorIs(t, msg.Err, domain.ErrNotImplemented)
}
