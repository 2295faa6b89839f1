package model

import "html/template"

// NavLink is a resolved navbar or footer link ready for a template.
type NavLink struct {
	Label    string
	URL      string
	External bool
	Active   bool
}

// FooterColumn is one titled list of footer links.
type FooterColumn struct {
	Title string
	Links []NavLink
}

// PageData is the context every layout executes with.
type PageData struct {
	Site        *SiteData
	PageTitle   string
	Description string
	Permalink   string
	Layout      string

	NavLeft   []NavLink
	NavRight  []NavLink
	Footer    []FooterColumn
	Copyright string

	Doc      *Doc
	Sidebar  []NavLink
	Features template.HTML
}
