package model

import (
	"html/template"
	"sort"

	"github.com/brockcataldi/deodar-docs/internal/site"
)

// Doc represents a single documentation page.
type Doc struct {
	ID           string // slash path relative to the docs dir, without extension
	Title        string
	SidebarLabel string
	Description  string
	Sidebar      string // sidebar id, empty when the doc sits outside every sidebar
	Position     int
	HasPosition  bool
	SourcePath   string
	Permalink    string
	ContentHTML  template.HTML
	Frontmatter  map[string]interface{}
}

// Label is the text shown for the doc in sidebars.
func (d *Doc) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// Sidebar is one ordered navigation tree of docs.
type Sidebar struct {
	ID   string
	Docs []*Doc
}

// First returns the doc a navbar entry for this sidebar links to.
func (s *Sidebar) First() *Doc {
	if s == nil || len(s.Docs) == 0 {
		return nil
	}
	return s.Docs[0]
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Config   site.Config
	Docs     []*Doc
	Sidebars map[string]*Sidebar
	Year     int
}

// Group builds Sidebars from Docs. Docs with a sidebar_position come first in
// ascending order, the rest follow by title.
func (s *SiteData) Group() {
	s.Sidebars = make(map[string]*Sidebar, len(s.Config.Docs.Sidebars))
	for _, sb := range s.Config.Docs.Sidebars {
		s.Sidebars[sb.ID] = &Sidebar{ID: sb.ID}
	}
	for _, d := range s.Docs {
		if sb, ok := s.Sidebars[d.Sidebar]; ok {
			sb.Docs = append(sb.Docs, d)
		}
	}
	for _, sb := range s.Sidebars {
		sort.SliceStable(sb.Docs, func(i, j int) bool {
			a, b := sb.Docs[i], sb.Docs[j]
			if a.HasPosition != b.HasPosition {
				return a.HasPosition
			}
			if a.HasPosition && a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.Title < b.Title
		})
	}
}
