package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanes_SelectNilTogglesCollapseOnly(t *testing.T) {
	doc := PageNavItem(Page{ID: "9", Title: "Plan"})
	p := Panes{}.Select(&doc).OpenDetail(Detail{Kind: DetailTagMessages, Tag: "go"})

	collapsed := p.Select(nil)
	assert.True(t, collapsed.Collapsed)
	require.NotNil(t, collapsed.Selected)
	assert.Equal(t, "9", collapsed.Selected.ID)
	assert.NotNil(t, collapsed.Detail, "collapse does not touch the detail pane")

	assert.False(t, collapsed.Select(nil).Collapsed)
}

func TestPanes_SelectClearsDetail(t *testing.T) {
	ideas := PredefinedNavItems[0]
	p := Panes{}.Select(&ideas).OpenDetail(Detail{Kind: DetailIdeasForTag, Tag: "go"})
	require.NotNil(t, p.Detail)

	p = p.Select(&ideas)
	assert.Nil(t, p.Detail)
}

func TestPanes_SelectKeepsCollapse(t *testing.T) {
	item := PredefinedNavItems[1]
	p := Panes{Collapsed: true}.Select(&item)
	assert.True(t, p.Collapsed)
}

func TestPanes_Target(t *testing.T) {
	assert.Equal(t, TargetNone, Panes{}.Target())

	for _, tt := range []struct {
		item NavItem
		want Target
	}{
		{PredefinedNavItems[0], TargetFeature},
		{PredefinedNavItems[1], TargetTagListing},
		{PageNavItem(Page{ID: "1"}), TargetDocument},
	} {
		item := tt.item
		assert.Equal(t, tt.want, Panes{}.Select(&item).Target())
	}
}

func TestPanes_IsPureValue(t *testing.T) {
	item := PageNavItem(Page{ID: "1"})
	before := Panes{}
	after := before.Select(&item)

	assert.Nil(t, before.Selected)
	item.ID = "mutated"
	assert.Equal(t, "1", after.Selected.ID)
}

func TestPanes_Removed(t *testing.T) {
	a, b := PageNavItem(Page{ID: "a"}), PageNavItem(Page{ID: "b"})
	p := Panes{}.Select(&a)

	assert.True(t, p.Removed("b").IsSelected("a"))
	assert.Equal(t, TargetNone, p.Removed("a").Target())
	assert.False(t, p.Select(&b).Close().IsSelected("b"))
}

func TestPageNavItem(t *testing.T) {
	item := PageNavItem(Page{ID: "3", Title: ""})
	assert.Equal(t, DefaultTitle, item.Label)
	require.NotNil(t, item.Page)
	assert.Equal(t, "3", item.Page.ID)
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "feature", TargetFeature.String())
	assert.Equal(t, "tag_listing", TargetTagListing.String())
	assert.Equal(t, "document", TargetDocument.String())
	assert.Equal(t, "unknown", Target(42).String())
}
