package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/core/domain"
	"github.com/custodia-labs/ideapad/internal/core/ports/driving"
)

// TestPane_String tests the string form of each pane
func TestPane_String(t *testing.T) {
	tests := []struct {
		pane Pane
		want string
	}{
		{PaneNav, "nav"},
		{PaneCenter, "center"},
		{PaneDetail, "detail"},
		{Pane(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pane.String())
		})
	}
}

// TestNavSelected tests the NavSelected message type
func TestNavSelected(t *testing.T) {
	t.Run("with item", func(t *testing.T) {
		item := domain.PredefinedNavItems[0]
		msg := NavSelected{Item: &item}

		require.NotNil(t, msg.Item)
		assert.Equal(t, domain.NavCaptureIdeas, msg.Item.ID)
	})

	t.Run("nil toggles collapse", func(t *testing.T) {
		msg := NavSelected{}
		assert.Nil(t, msg.Item)
	})
}

// TestDetailRequested tests the DetailRequested message type
func TestDetailRequested(t *testing.T) {
	msg := DetailRequested{Detail: domain.Detail{Kind: domain.DetailTagMessages, Tag: "launch"}}

	assert.Equal(t, domain.DetailTagMessages, msg.Detail.Kind)
	assert.Equal(t, "launch", msg.Detail.Tag)
}

// TestPageMessages tests the page lifecycle messages
func TestPageMessages(t *testing.T) {
	created := PageCreated{Page: &domain.Page{ID: "7"}}
	assert.Equal(t, "7", created.Page.ID)

	deleted := PageDeleted{ID: "7", Err: errors.New("down")}
	assert.Error(t, deleted.Err)

	saved := PageSaved{ID: "7", Title: "Plans"}
	assert.Equal(t, "Plans", saved.Title)

	loaded := PagesLoaded{Pages: []domain.Page{{ID: "1"}, {ID: "2"}}}
	assert.Len(t, loaded.Pages, 2)
	assert.NoError(t, loaded.Err)
}

// TestPersisted tests the Persisted message type
func TestPersisted(t *testing.T) {
	msg := Persisted{Result: driving.PersistResult{}}
	assert.NoError(t, msg.Result.Err)
}

// TestIdeaMessages tests the idea messages
func TestIdeaMessages(t *testing.T) {
	captured := IdeaCaptured{Idea: &domain.Idea{ID: "3", Text: "Ship #launch"}}
	assert.Equal(t, []string{"launch"}, captured.Idea.Hashtags())

	deleted := IdeaDeleted{ID: "3"}
	assert.Equal(t, "3", deleted.ID)
}

// TestTagMessages tests the hashtag messages
func TestTagMessages(t *testing.T) {
	s := SuggestionsLoaded{Owner: "ideas", Suggestions: driving.Suggestions{Query: "la", Tags: []string{"launch"}}}
	assert.Equal(t, "ideas", s.Owner)
	assert.Equal(t, "la", s.Suggestions.Query)

	c := TagCreated{Owner: "editor", Name: "launch"}
	assert.Equal(t, "launch", c.Name)

	m := TagMessagesLoaded{Tag: "launch", Messages: []domain.TagMessage{{ID: "1"}}}
	assert.Len(t, m.Messages, 1)

	i := TagIdeasLoaded{Tag: "launch", Err: domain.ErrNoSession}
	assert.ErrorIs(t, i.Err, domain.ErrNoSession)
}

// TestNotice tests the Notice message type
func TestNotice(t *testing.T) {
	msg := Notice{Text: domain.SaveIdeaFailure.Unreachable, Err: true}

	assert.True(t, msg.Err)
	assert.NotEmpty(t, msg.Text)
}
