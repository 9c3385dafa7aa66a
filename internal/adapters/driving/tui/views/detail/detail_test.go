package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// MockIdeaService implements driving.IdeaService for testing.
type MockIdeaService struct {
	ByHashtagFunc func(ctx context.Context, tag string) ([]domain.Idea, error)
}

func (m *MockIdeaService) List(context.Context) ([]domain.Idea, error) { return nil, nil }

func (m *MockIdeaService) Capture(context.Context, string) (*domain.Idea, error) { return nil, nil }

func (m *MockIdeaService) Delete(context.Context, string) error { return nil }

func (m *MockIdeaService) ByHashtag(ctx context.Context, tag string) ([]domain.Idea, error) {
	if m.ByHashtagFunc != nil {
		return m.ByHashtagFunc(ctx, tag)
	}
	return nil, nil
}

// MockTagService implements driving.TagService for testing.
type MockTagService struct {
	MessagesFunc func(ctx context.Context, tag string) ([]domain.TagMessage, error)
}

func (m *MockTagService) Suggest(_ context.Context, q string) (driving.Suggestions, error) {
	return driving.Suggestions{Query: q}, nil
}

func (m *MockTagService) Create(context.Context, string) error { return nil }

func (m *MockTagService) ListAll(context.Context) ([]domain.Tag, error) { return nil, nil }

func (m *MockTagService) Messages(ctx context.Context, tag string) ([]domain.TagMessage, error) {
	if m.MessagesFunc != nil {
		return m.MessagesFunc(ctx, tag)
	}
	return nil, nil
}

func TestView_EmptyPane(t *testing.T) {
	v := NewView(nil, nil, nil, nil, nil)

	assert.Nil(t, v.Detail())
	assert.Contains(t, v.View(), "No content selected for the right pane.")
}

func TestView_OpenIdeasForTag(t *testing.T) {
	var asked string
	ideas := &MockIdeaService{ByHashtagFunc: func(_ context.Context, tag string) ([]domain.Idea, error) {
		asked = tag
		return []domain.Idea{{ID: "1", Text: "Ship #launch", CreatedAt: time.Now()}}, nil
	}}
	v := NewView(context.Background(), nil, nil, ideas, &MockTagService{})

	cmd := v.Open(domain.Detail{Kind: domain.DetailIdeasForTag, Tag: "launch"})
	assert.Contains(t, v.View(), "Loading...")

	v.Update(cmd())

	assert.Equal(t, "launch", asked)
	assert.Equal(t, 1, v.Count())
	view := v.View()
	assert.Contains(t, view, "Ideas for #launch")
	assert.Contains(t, view, "Ship #launch")
}

func TestView_OpenTagMessages(t *testing.T) {
	tags := &MockTagService{MessagesFunc: func(context.Context, string) ([]domain.TagMessage, error) {
		return []domain.TagMessage{{ID: "1", Text: "first"}, {ID: "2", Text: "second"}}, nil
	}}
	v := NewView(context.Background(), nil, nil, &MockIdeaService{}, tags)

	v.Update(v.Open(domain.Detail{Kind: domain.DetailTagMessages, Tag: "docs"})())

	assert.Equal(t, 2, v.Count())
	assert.Contains(t, v.View(), "Messages for #docs")
}

func TestView_NoMessages(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockIdeaService{}, &MockTagService{})

	v.Update(v.Open(domain.Detail{Kind: domain.DetailTagMessages, Tag: "docs"})())

	assert.Contains(t, v.View(), "No messages for this hashtag.")
}

func TestView_StaleResultDropped(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockIdeaService{}, &MockTagService{})
	v.Open(domain.Detail{Kind: domain.DetailTagMessages, Tag: "new"})

	v.Update(messages.TagMessagesLoaded{Tag: "old", Messages: []domain.TagMessage{{ID: "1"}}})
	assert.Equal(t, 0, v.Count())

	v.Update(messages.TagIdeasLoaded{Tag: "new", Ideas: []domain.Idea{{ID: "1"}}})
	assert.Equal(t, 0, v.Count(), "kind must match too")
}

func TestView_LoadErrorNotifies(t *testing.T) {
	v := NewView(context.Background(), nil, nil, &MockIdeaService{}, &MockTagService{})
	v.Open(domain.Detail{Kind: domain.DetailTagMessages, Tag: "x"})

	_, cmd := v.Update(messages.TagMessagesLoaded{Tag: "x", Err: errors.New("down")})

	require.NotNil(t, cmd)
	assert.Equal(t, domain.LoadMessagesFailure.Unreachable, cmd().(messages.Notice).Text)
}

func TestView_EscRequestsClose(t *testing.T) {
	v := NewView(context.Background(), nil, nil, nil, nil)
	v.Open(domain.Detail{Kind: domain.DetailTagMessages, Tag: "x"})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, messages.DetailClosed{}, cmd())
}

func TestView_Close(t *testing.T) {
	v := NewView(context.Background(), nil, nil, nil, nil)
	v.Open(domain.Detail{Kind: domain.DetailIdeasForTag, Tag: "x"})

	v.Close()

	assert.Nil(t, v.Detail())
}

func TestView_NilServices(t *testing.T) {
	v := NewView(context.Background(), nil, nil, nil, nil)

	ideas := v.Open(domain.Detail{Kind: domain.DetailIdeasForTag, Tag: "x"})().(messages.TagIdeasLoaded)
	assert.ErrorIs(t, ideas.Err, domain.ErrNotImplemented)

	msgs := v.Open(domain.Detail{Kind: domain.DetailTagMessages, Tag: "x"})().(messages.TagMessagesLoaded)
	assert.ErrorIs(t, msgs.Err, domain.ErrNotImplemented)
}
