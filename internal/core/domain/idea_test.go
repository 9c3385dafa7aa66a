package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveIdea(t *testing.T) {
	ideas := []Idea{{ID: "3"}, {ID: "1"}, {ID: "2"}}

	got := RemoveIdea(ideas, "1")
	assert.Equal(t, []Idea{{ID: "3"}, {ID: "2"}}, got)
	assert.Len(t, ideas, 3, "input must not be modified")

	assert.Equal(t, ideas, RemoveIdea(ideas, "missing"))
	assert.Empty(t, RemoveIdea(nil, "1"))
}

func TestIdea_Hashtags(t *testing.T) {
	assert.Equal(t, []string{"go", "tui"}, Idea{Text: "learn #go and #tui"}.Hashtags())
}

func TestRemovePage(t *testing.T) {
	pages := []Page{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, []Page{{ID: "b"}}, RemovePage(pages, "a"))
}

func TestPage_DisplayTitle(t *testing.T) {
	assert.Equal(t, DefaultTitle, Page{Title: "  "}.DisplayTitle())
	assert.Equal(t, "Notes", Page{Title: "Notes"}.DisplayTitle())
}

func TestDocument_IsNew(t *testing.T) {
	assert.True(t, Document{}.IsNew())
	assert.False(t, Document{ID: "7"}.IsNew())
}

func TestIdentity(t *testing.T) {
	assert.True(t, NewIdentity("   ").IsZero())
	assert.ErrorIs(t, Identity{}.Require(), ErrNoSession)

	id := NewIdentity(" 42 ")
	assert.Equal(t, "42", id.UserID)
	assert.NoError(t, id.Require())
}

func TestFilterBlockOptions(t *testing.T) {
	assert.Len(t, FilterBlockOptions(""), len(BlockOptions))

	heads := FilterBlockOptions("head")
	assert.Equal(t, []BlockOption{
		{Label: "Heading 1", Type: BlockHeaderOne},
		{Label: "Heading 2", Type: BlockHeaderTwo},
		{Label: "Heading 3", Type: BlockHeaderThree},
	}, heads)

	assert.Empty(t, FilterBlockOptions("video"))
	assert.Equal(t, BlockQuote, FilterBlockOptions("QUO")[0].Type)
}

func TestCountTags(t *testing.T) {
	tags := CountTags([]string{
		"#go is fun, #Go again",
		"#tui and #go",
		"#alpha #beta #Beta",
		"nothing",
	})

	assert.Equal(t, []Tag{
		{Name: "go", UsageCount: 3},
		{Name: "beta", UsageCount: 2},
		{Name: "alpha", UsageCount: 1},
		{Name: "tui", UsageCount: 1},
	}, tags)
	assert.Empty(t, CountTags(nil))
}

func TestMentionsTag(t *testing.T) {
	assert.True(t, MentionsTag("ship #Release", "release"))
	assert.True(t, MentionsTag("ship #release", "#release"))
	assert.False(t, MentionsTag("ship #releases", "release"))
}
