package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"ctrl+c"}, km.Quit.Keys(), "q must stay typeable in inputs")
}

func TestDefaultKeyMap_NavigationBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Select.Keys(), "enter")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.NextPane.Keys(), "tab")
}

func TestDefaultKeyMap_PaneBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.ToggleNav.Keys(), "ctrl+b")
	assert.Contains(t, km.CloseCenter.Keys(), "ctrl+w")
	assert.Contains(t, km.CloseDetail.Keys(), "ctrl+x")
	assert.Contains(t, km.NewPage.Keys(), "ctrl+n")
	assert.Contains(t, km.Delete.Keys(), "ctrl+d")
}

func TestDefaultKeyMap_StyleBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Bold.Keys(), "alt+b")
	assert.Contains(t, km.Italic.Keys(), "alt+i")
	assert.Contains(t, km.Underline.Keys(), "alt+u")
}

func TestDefaultKeyMap_ConfirmBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Confirm.Keys(), "y")
	assert.Contains(t, km.Decline.Keys(), "n")
	assert.Contains(t, km.Decline.Keys(), "esc")
}

func TestDefaultKeyMap_AllBindingsHaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	for _, row := range km.FullHelp() {
		for _, b := range row {
			assert.NotEmpty(t, b.Help().Key)
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()
	require.Len(t, help, 4)
	assert.Equal(t, "tab", help[0].Help().Key)
}

func TestKeyMap_NavHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.NavHelp())
	assert.NotEmpty(t, km.EditorHelp())
}

func TestMatches(t *testing.T) {
	binding := key.NewBinding(key.WithKeys("a", "b"))

	assert.True(t, Matches("a", binding))
	assert.True(t, Matches("b", binding))
	assert.False(t, Matches("c", binding))
}

func TestMatches_DefaultBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("shift+up", km.MoveUp))
	assert.False(t, Matches("K", km.MoveUp), "letters stay free for typing")
	assert.True(t, Matches("shift+down", km.MoveDown))
	assert.False(t, Matches("x", km.Quit))
}
