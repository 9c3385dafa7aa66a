package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i)), Title: "Item " + string(rune('A'+i))}
	}
	return items
}

func TestNew(t *testing.T) {
	l := New(nil, "Nothing here")

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedItem())
	assert.Nil(t, l.Init())
}

func TestList_ViewEmpty(t *testing.T) {
	l := New(nil, "Nothing here")

	assert.Contains(t, l.View(), "Nothing here")
}

func TestList_ViewItems(t *testing.T) {
	l := New(nil, "")
	l.SetItems([]Item{{ID: "1", Title: "First", Detail: "one"}, {ID: "2", Title: "Second"}})

	view := l.View()

	assert.Contains(t, view, "> First")
	assert.Contains(t, view, "one")
	assert.Contains(t, view, "Second")
}

func TestList_RenderUnfocusedHasNoCursor(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems(2))

	assert.NotContains(t, l.Render(false), ">")
}

func TestList_Navigation(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems(3))

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Selected(), "stops at the end")

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 2, l.Selected())

	l.MoveUp()
	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected(), "stops at the start")
}

func TestList_SetItemsClampsSelection(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems(5))
	l.SetSelected(4)

	l.SetItems(sampleItems(2))
	assert.Equal(t, 1, l.Selected())

	l.SetItems(nil)
	assert.Equal(t, 0, l.Selected())
}

func TestList_Select(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems(3))

	assert.True(t, l.Select("c"))
	assert.Equal(t, "c", l.SelectedItem().ID)
	assert.False(t, l.Select("zz"))
	assert.Equal(t, 2, l.Selected())
}

func TestList_SetSelectedOutOfRange(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems(2))

	l.SetSelected(9)
	assert.Equal(t, 0, l.Selected())
}

func TestList_ScrollsToSelection(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems(10))
	l.SetDimensions(40, 3)
	l.SetSelected(9)

	view := l.View()

	assert.Contains(t, view, "Item J")
	assert.NotContains(t, view, "Item A")
	assert.Len(t, strings.Split(view, "\n"), 3)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("ab", 2), "tiny widths are left alone")
}
