// Package site describes the Deodar documentation site: identity, routing,
// navigation and theming. A Config is built once and never mutated; the build
// pipeline reads it but does not write to it.
package site

import "strings"

// ColorMode selects how the site picks between its light and dark palettes.
type ColorMode string

const (
	ColorModeSystem ColorMode = "respect-system"
	ColorModeLight  ColorMode = "light"
	ColorModeDark   ColorMode = "dark"
)

// Position places a navbar item on one side of the bar.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// BrokenLinkPolicy decides what the build does when an internal link has no target.
type BrokenLinkPolicy string

const (
	BrokenLinksThrow  BrokenLinkPolicy = "throw"
	BrokenLinksWarn   BrokenLinkPolicy = "warn"
	BrokenLinksIgnore BrokenLinkPolicy = "ignore"
)

type Config struct {
	Identity      Identity         `yaml:"identity"`
	Routing       Routing          `yaml:"routing"`
	Navigation    Navigation       `yaml:"navigation"`
	Theming       Theming          `yaml:"theming"`
	Docs          Docs             `yaml:"docs"`
	OnBrokenLinks BrokenLinkPolicy `yaml:"on_broken_links"`
}

type Identity struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Favicon string `yaml:"favicon"`
	Logo    Logo   `yaml:"logo"`
}

type Logo struct {
	Alt string `yaml:"alt"`
	Src string `yaml:"src"`
}

// Routing holds where the site is published and which locales it serves.
// The first locale is the default unless DefaultLocale says otherwise.
type Routing struct {
	URL           string   `yaml:"url"`
	BasePath      string   `yaml:"base_path"`
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
}

// Default returns the effective default locale.
func (r Routing) Default() string {
	if r.DefaultLocale != "" {
		return r.DefaultLocale
	}
	if len(r.Locales) > 0 {
		return r.Locales[0]
	}
	return ""
}

// Path joins p onto the base path. p is expected to start with "/".
func (r Routing) Path(p string) string {
	return strings.TrimSuffix(r.BasePath, "/") + p
}

type Navigation struct {
	Primary []NavItem `yaml:"primary"`
	Footer  Footer    `yaml:"footer"`
}

// NavItem is one navbar entry. Exactly one of Sidebar, Href or To is set:
// Sidebar points at a documentation group, Href at an external page and To
// at a path inside the site.
type NavItem struct {
	Label    string   `yaml:"label"`
	Sidebar  string   `yaml:"sidebar,omitempty"`
	Href     string   `yaml:"href,omitempty"`
	To       string   `yaml:"to,omitempty"`
	Position Position `yaml:"position,omitempty"`
}

// IsExternal reports whether the item leaves the site.
func (n NavItem) IsExternal() bool { return n.Href != "" }

type Footer struct {
	Style     string        `yaml:"style"`
	Groups    []FooterGroup `yaml:"groups"`
	Copyright string        `yaml:"copyright"`
}

type FooterGroup struct {
	Title string       `yaml:"title"`
	Items []FooterLink `yaml:"items"`
}

type FooterLink struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

// Target returns the link destination, preferring the internal path.
func (l FooterLink) Target() string {
	if l.To != "" {
		return l.To
	}
	return l.Href
}

type Theming struct {
	ColorMode ColorMode `yaml:"color_mode"`
	Code      CodeTheme `yaml:"code"`
	Image     string    `yaml:"image"`
}

// CodeTheme names the highlighting styles used for code blocks in light and
// dark mode, plus languages that must be highlightable beyond the defaults.
type CodeTheme struct {
	Theme               string   `yaml:"theme"`
	DarkTheme           string   `yaml:"dark_theme"`
	AdditionalLanguages []string `yaml:"additional_languages"`
}

type Docs struct {
	Path        string    `yaml:"path"`
	RoutePrefix string    `yaml:"route_prefix"`
	Sidebars    []Sidebar `yaml:"sidebars"`
	Exclude     []string  `yaml:"exclude"`
}

// Sidebar groups every document below Dir under one navigation tree.
type Sidebar struct {
	ID  string `yaml:"id"`
	Dir string `yaml:"dir"`
}

// Sidebar looks up a sidebar by id.
func (d Docs) Sidebar(id string) (Sidebar, bool) {
	for _, s := range d.Sidebars {
		if s.ID == id {
			return s, true
		}
	}
	return Sidebar{}, false
}
