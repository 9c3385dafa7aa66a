package suggest

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

type stubTags struct {
	suggest func(query string) (driving.Suggestions, error)
	created []string
	err     error
}

func (s *stubTags) Suggest(_ context.Context, query string) (driving.Suggestions, error) {
	return s.suggest(query)
}

func (s *stubTags) Create(_ context.Context, name string) error {
	s.created = append(s.created, name)
	return s.err
}

func (s *stubTags) ListAll(context.Context) ([]domain.Tag, error) { return nil, nil }

func (s *stubTags) Messages(context.Context, string) ([]domain.TagMessage, error) { return nil, nil }

func TestPopup_ClosedByDefault(t *testing.T) {
	p := New(nil)

	assert.False(t, p.Active())
	assert.Empty(t, p.View())
	assert.Nil(t, p.Options())
}

func TestPopup_TrackOpensOnHash(t *testing.T) {
	p := New(nil)

	q, fetch := p.Track("Ship it #")
	assert.False(t, fetch, "a bare # has nothing to fetch")
	assert.Empty(t, q)
	assert.True(t, p.Active())
	assert.Contains(t, p.View(), "Type to search hashtags")

	q, fetch = p.Track("Ship it #la")
	assert.True(t, fetch)
	assert.Equal(t, "la", q)
	assert.Contains(t, p.View(), "Searching #la")
}

func TestPopup_TrackSameQueryDoesNotRefetch(t *testing.T) {
	p := New(nil)
	p.Track("#la")

	_, fetch := p.Track("#la")
	assert.False(t, fetch)
}

func TestPopup_WhitespaceCloses(t *testing.T) {
	p := New(nil)
	p.Track("#launch")

	_, fetch := p.Track("#launch ")

	assert.False(t, fetch)
	assert.False(t, p.Active())
}

func TestPopup_StaleSuggestionsDropped(t *testing.T) {
	p := New(nil)
	p.Track("#l")
	p.Track("#la")

	applied := p.SetSuggestions(driving.Suggestions{Query: "l", Tags: []string{"later"}})
	assert.False(t, applied)
	assert.False(t, p.Loaded())

	applied = p.SetSuggestions(driving.Suggestions{Query: "la", Tags: []string{"launch"}})
	assert.True(t, applied)
	assert.True(t, p.Loaded())
}

func TestPopup_SuggestionsIgnoredWhenClosed(t *testing.T) {
	p := New(nil)

	assert.False(t, p.SetSuggestions(driving.Suggestions{Query: "x"}))
}

func TestPopup_OptionsIncludeCreateWithoutExactMatch(t *testing.T) {
	p := New(nil)
	p.Track("#la")
	p.SetSuggestions(driving.Suggestions{Query: "la", Tags: []string{"launch", "lab"}})

	opts := p.Options()
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Tag: "launch"}, opts[0])
	assert.Equal(t, Option{Tag: "la", Create: true}, opts[2])
	assert.Contains(t, p.View(), "Create new tag: #la")
}

func TestPopup_OptionsWithoutCreateOnExactMatch(t *testing.T) {
	p := New(nil)
	p.Track("#launch")
	p.SetSuggestions(driving.Suggestions{Query: "launch", Tags: []string{"launch"}, ExactMatch: true})

	opts := p.Options()
	require.Len(t, opts, 1)
	assert.False(t, opts[0].Create)
	assert.NotContains(t, p.View(), "Create new tag")
}

func TestPopup_MoveWrapsAndChoice(t *testing.T) {
	p := New(nil)
	p.Track("#a")
	p.SetSuggestions(driving.Suggestions{Query: "a", Tags: []string{"alpha", "beta"}})

	choice, ok := p.Choice()
	require.True(t, ok)
	assert.Equal(t, "alpha", choice.Tag)

	p.Move(1)
	p.Move(1)
	choice, _ = p.Choice()
	assert.True(t, choice.Create)

	p.Move(1)
	assert.Equal(t, 0, p.Selected(), "wraps to the top")

	p.Move(-1)
	assert.Equal(t, 2, p.Selected(), "wraps to the bottom")
}

func TestPopup_ChoiceEmpty(t *testing.T) {
	p := New(nil)
	p.Track("#")

	_, ok := p.Choice()
	assert.False(t, ok)
}

func TestPopup_DismissHoldsUntilNewHash(t *testing.T) {
	p := New(nil)
	p.Track("#la")
	p.Dismiss()
	assert.False(t, p.Active())

	_, fetch := p.Track("#lau")
	assert.False(t, fetch)
	assert.False(t, p.Active())

	q, fetch := p.Track("#lau #x")
	assert.True(t, fetch)
	assert.Equal(t, "x", q)
	assert.True(t, p.Active())
}

func TestPopup_NoMatchesView(t *testing.T) {
	p := New(nil)
	p.Track("#with-dash")
	p.SetSuggestions(driving.Suggestions{Query: "with-dash", Tags: []string{}})

	assert.Empty(t, p.Options(), "invalid names cannot be created")
	assert.Contains(t, p.View(), "No matching hashtags")
}

func TestFetch(t *testing.T) {
	tags := &stubTags{suggest: func(q string) (driving.Suggestions, error) {
		return driving.Suggestions{Query: q, Tags: []string{"launch"}}, nil
	}}

	msg := Fetch(context.Background(), tags, "ideas", "la")()

	loaded, ok := msg.(messages.SuggestionsLoaded)
	require.True(t, ok)
	assert.Equal(t, "ideas", loaded.Owner)
	assert.Equal(t, []string{"launch"}, loaded.Suggestions.Tags)
	assert.NoError(t, loaded.Err)
}

func TestFetch_ErrorKeepsQuery(t *testing.T) {
	tags := &stubTags{suggest: func(string) (driving.Suggestions, error) {
		return driving.Suggestions{}, errors.New("down")
	}}

	loaded := Fetch(context.Background(), tags, "editor", "la")().(messages.SuggestionsLoaded)

	assert.Error(t, loaded.Err)
	assert.Equal(t, "la", loaded.Suggestions.Query)
}

func TestFetch_NilService(t *testing.T) {
	loaded := Fetch(context.Background(), nil, "ideas", "la")().(messages.SuggestionsLoaded)

	assert.ErrorIs(t, loaded.Err, domain.ErrNotImplemented)
}

func TestCreate(t *testing.T) {
	tags := &stubTags{}

	msg := Create(context.Background(), tags, "ideas", "launch")()

	created, ok := msg.(messages.TagCreated)
	require.True(t, ok)
	assert.Equal(t, "launch", created.Name)
	assert.NoError(t, created.Err)
	assert.Equal(t, []string{"launch"}, tags.created)
}

func TestPopup_Key(t *testing.T) {
	p := New(nil)
	p.Track("#a")
	p.SetSuggestions(driving.Suggestions{Query: "a", Tags: []string{"alpha", "beta"}})

	consumed, choice := p.Key(tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, consumed)
	assert.Nil(t, choice)

	consumed, choice = p.Key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, consumed)
	require.NotNil(t, choice)
	assert.Equal(t, "beta", choice.Tag)

	consumed, _ = p.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, consumed, "typing goes to the input")

	consumed, _ = p.Key(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, consumed)
	assert.False(t, p.Active())

	consumed, _ = p.Key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, consumed, "closed popup ignores keys")
}

func TestPopup_KeyEnterWithoutOptions(t *testing.T) {
	p := New(nil)
	p.Track("#")

	consumed, choice := p.Key(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, consumed)
	assert.Nil(t, choice)
}
