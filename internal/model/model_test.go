package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brockcataldi/deodar-docs/internal/site"
)

func TestGroup_OrdersByPositionThenTitle(t *testing.T) {
	s := &SiteData{
		Config: site.Deodar(),
		Docs: []*Doc{
			{ID: "learn/zeta", Title: "Zeta", Sidebar: "learnSidebar"},
			{ID: "learn/blocks", Title: "Blocks", Sidebar: "learnSidebar", Position: 2, HasPosition: true},
			{ID: "learn/alpha", Title: "Alpha", Sidebar: "learnSidebar"},
			{ID: "learn/index", Title: "Introduction", Sidebar: "learnSidebar", Position: 1, HasPosition: true},
			{ID: "orphan", Title: "Orphan"},
		},
	}
	s.Group()

	learn := s.Sidebars["learnSidebar"]
	require.NotNil(t, learn)
	var ids []string
	for _, d := range learn.Docs {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"learn/index", "learn/blocks", "learn/alpha", "learn/zeta"}, ids)
	assert.Equal(t, "learn/index", learn.First().ID)

	assert.Nil(t, s.Sidebars["referenceSidebar"].First())
	assert.Len(t, s.Sidebars, 3)
}

func TestDoc_Label(t *testing.T) {
	assert.Equal(t, "Title", (&Doc{Title: "Title"}).Label())
	assert.Equal(t, "Short", (&Doc{Title: "Title", SidebarLabel: "Short"}).Label())
}
