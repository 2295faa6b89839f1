package build

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/brockcataldi/deodar-docs/internal/model"
	"github.com/brockcataldi/deodar-docs/internal/site"
)

// funcMap exposes routing helpers to layouts.
func funcMap(cfg site.Config) template.FuncMap {
	local := func(p string) string {
		return cfg.Routing.Path("/" + strings.TrimPrefix(p, "/"))
	}
	return template.FuncMap{
		"url":   local,
		"asset": local,
		"abs": func(p string) string {
			return strings.TrimSuffix(cfg.Routing.URL, "/") + p
		},
		"initialTheme": func() string {
			if cfg.Theming.ColorMode == site.ColorModeDark {
				return "dark"
			}
			return "light"
		},
		"respectSystem": func() bool {
			return cfg.Theming.ColorMode == site.ColorModeSystem
		},
		"hasHeading": func(d *model.Doc) bool {
			return d != nil && strings.Contains(string(d.ContentHTML), "<h1")
		},
	}
}

// pageData fills the shared chrome (navbar, footer) for one page. current is
// the doc being rendered, or nil.
func pageData(s *model.SiteData, current *model.Doc) *model.PageData {
	cfg := s.Config
	data := &model.PageData{
		Site:      s,
		Doc:       current,
		Copyright: strings.ReplaceAll(cfg.Navigation.Footer.Copyright, "{year}", strconv.Itoa(s.Year)),
	}

	for _, item := range cfg.Navigation.Primary {
		link := model.NavLink{Label: item.Label, External: item.IsExternal()}
		switch {
		case item.Sidebar != "":
			link.URL = sidebarURL(s, item.Sidebar)
			link.Active = current != nil && current.Sidebar == item.Sidebar
		case item.Href != "":
			link.URL = item.Href
		default:
			link.URL = cfg.Routing.Path(item.To)
		}
		if item.Position == site.PositionRight {
			data.NavRight = append(data.NavRight, link)
		} else {
			data.NavLeft = append(data.NavLeft, link)
		}
	}

	for _, group := range cfg.Navigation.Footer.Groups {
		col := model.FooterColumn{Title: group.Title}
		for _, l := range group.Items {
			nl := model.NavLink{Label: l.Label, URL: l.Href, External: l.Href != ""}
			if l.To != "" {
				nl.URL = cfg.Routing.Path(l.To)
			}
			col.Links = append(col.Links, nl)
		}
		data.Footer = append(data.Footer, col)
	}

	if current != nil {
		if sb, ok := s.Sidebars[current.Sidebar]; ok {
			for _, d := range sb.Docs {
				data.Sidebar = append(data.Sidebar, model.NavLink{
					Label:  d.Label(),
					URL:    d.Permalink,
					Active: d == current,
				})
			}
		}
	}
	return data
}

// sidebarURL points at the first doc of a sidebar. An empty sidebar falls
// back to its directory so the link checker reports it.
func sidebarURL(s *model.SiteData, id string) string {
	if first := s.Sidebars[id].First(); first != nil {
		return first.Permalink
	}
	dir := id
	if sb, ok := s.Config.Docs.Sidebar(id); ok {
		dir = sb.Dir
	}
	return s.Config.Routing.Path(strings.TrimSuffix(s.Config.Docs.RoutePrefix, "/") + "/" + dir + "/")
}
