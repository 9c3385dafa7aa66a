package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ideapad/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "", bar.User())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_ViewReady(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	view := bar.View()

	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "not logged in")
	assert.Contains(t, view, "quit")
}

func TestStatusBar_ViewUser(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetUser("42")

	assert.Contains(t, bar.View(), "user 42")
}

func TestStatusBar_SetError(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetError("Failed to save idea.")

	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Failed to save idea.")
}

func TestStatusBar_SetErrorEmptyClears(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetError("boom")

	bar.SetError("")

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestStatusBar_SetInfo(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetInfo("Idea saved.")

	assert.Equal(t, StateInfo, bar.State())
	assert.Contains(t, bar.View(), "Idea saved.")
}

func TestStatusBar_Saving(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetState(StateSaving)

	assert.Contains(t, bar.View(), "Saving...")
}

func TestStatusBar_SetBindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(160)

	bar.SetBindings(km.NavHelp())
	assert.Contains(t, bar.View(), "new page")

	bar.SetBindings(nil)
	assert.NotContains(t, bar.View(), "new page")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetError("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(100)

	assert.Equal(t, 100, bar.Width())
}
