package blockmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/core/domain"
)

func TestMenu_ClosedByDefault(t *testing.T) {
	m := New(nil)

	assert.False(t, m.IsOpen())
	assert.Empty(t, m.View())
	assert.Nil(t, m.Options())
	_, ok := m.Choice()
	assert.False(t, ok)
}

func TestMenu_OpenListsEverything(t *testing.T) {
	m := New(nil)
	m.Open()

	assert.True(t, m.IsOpen())
	assert.Len(t, m.Options(), len(domain.BlockOptions))
	assert.Contains(t, m.View(), "Heading 1")
	assert.Contains(t, m.View(), "Code Block")
}

func TestMenu_TypeFilters(t *testing.T) {
	m := New(nil)
	m.Open()

	for _, r := range "head" {
		m.Type(r)
	}

	assert.Equal(t, "head", m.Filter())
	require.Len(t, m.Options(), 3)
	assert.NotContains(t, m.View(), "Quote")
}

func TestMenu_SpaceCloses(t *testing.T) {
	m := New(nil)
	m.Open()
	m.Type('q')

	m.Type(' ')

	assert.False(t, m.IsOpen())
	assert.Empty(t, m.Filter())
}

func TestMenu_BackspaceClosesOnEmptyFilter(t *testing.T) {
	m := New(nil)
	m.Open()
	m.Type('q')

	m.Backspace()
	assert.True(t, m.IsOpen())
	assert.Empty(t, m.Filter())

	m.Backspace()
	assert.False(t, m.IsOpen())
}

func TestMenu_MoveAndChoice(t *testing.T) {
	m := New(nil)
	m.Open()

	m.Move(1)
	choice, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, domain.BlockHeaderOne, choice.Type)

	m.Move(-2)
	choice, _ = m.Choice()
	assert.Equal(t, domain.BlockCode, choice.Type, "wraps to the bottom")
}

func TestMenu_NoMatches(t *testing.T) {
	m := New(nil)
	m.Open()
	m.Type('z')

	assert.Empty(t, m.Options())
	assert.Contains(t, m.View(), "No matching blocks")
	_, ok := m.Choice()
	assert.False(t, ok)
	m.Move(1)
	assert.Equal(t, 0, m.Selected())
}

func TestMenu_TypeWhenClosedIgnored(t *testing.T) {
	m := New(nil)

	m.Type('a')
	m.Backspace()

	assert.False(t, m.IsOpen())
	assert.Empty(t, m.Filter())
}
