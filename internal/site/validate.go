package site

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/brockcataldi/deodar-docs/internal/highlight"
)

// ErrInvalidConfig classifies every validation failure.
// Use errors.Is(err, ErrInvalidConfig) instead of string matching.
var ErrInvalidConfig = errors.New("invalid site config")

// FieldError is a single violated rule, addressed by a dotted field path.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidConfig }

// Validate checks cfg and returns nil or the joined list of FieldErrors.
func Validate(cfg Config) error {
	v := &validator{}

	if strings.TrimSpace(cfg.Identity.Title) == "" {
		v.add("identity.title", "must not be empty")
	}
	v.routing(cfg.Routing)
	v.docs(cfg.Docs)
	v.navigation(cfg.Navigation, cfg.Docs)
	v.theming(cfg.Theming)

	switch cfg.OnBrokenLinks {
	case BrokenLinksThrow, BrokenLinksWarn, BrokenLinksIgnore:
	default:
		v.add("on_broken_links", fmt.Sprintf("unknown policy %q", cfg.OnBrokenLinks))
	}

	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) add(field, reason string) {
	v.errs = append(v.errs, &FieldError{Field: field, Reason: reason})
}

func (v *validator) routing(r Routing) {
	if len(r.Locales) == 0 {
		v.add("routing.locales", "must list at least one locale")
	}
	seen := make(map[string]bool, len(r.Locales))
	for i, l := range r.Locales {
		if l == "" {
			v.add(fmt.Sprintf("routing.locales[%d]", i), "must not be empty")
		}
		if seen[l] {
			v.add(fmt.Sprintf("routing.locales[%d]", i), fmt.Sprintf("duplicate locale %q", l))
		}
		seen[l] = true
	}
	if def := r.Default(); def != "" && !seen[def] {
		v.add("routing.default_locale", fmt.Sprintf("%q is not in the locale list", def))
	}

	u, err := url.Parse(r.URL)
	switch {
	case err != nil:
		v.add("routing.url", err.Error())
	case !u.IsAbs() || u.Host == "":
		v.add("routing.url", fmt.Sprintf("%q is not an absolute URL", r.URL))
	}

	if !strings.HasPrefix(r.BasePath, "/") || !strings.HasSuffix(r.BasePath, "/") {
		v.add("routing.base_path", fmt.Sprintf("%q must start and end with /", r.BasePath))
	}
}

func (v *validator) navigation(n Navigation, docs Docs) {
	labels := make(map[string]bool, len(n.Primary))
	for i, item := range n.Primary {
		field := fmt.Sprintf("navigation.primary[%d]", i)
		v.label(labels, field, item.Label)

		targets := 0
		for _, t := range []string{item.Sidebar, item.Href, item.To} {
			if t != "" {
				targets++
			}
		}
		if targets != 1 {
			v.add(field, "must set exactly one of sidebar, href or to")
		}
		if item.Sidebar != "" {
			if _, ok := docs.Sidebar(item.Sidebar); !ok {
				v.add(field+".sidebar", fmt.Sprintf("unknown sidebar %q", item.Sidebar))
			}
		}
		if item.Href != "" {
			v.absolute(field+".href", item.Href)
		}
		if item.To != "" {
			v.sitePath(field+".to", item.To)
		}
		switch item.Position {
		case PositionLeft, PositionRight:
		default:
			v.add(field+".position", fmt.Sprintf("unknown position %q", item.Position))
		}
	}

	switch n.Footer.Style {
	case "dark", "light":
	default:
		v.add("navigation.footer.style", fmt.Sprintf("unknown style %q", n.Footer.Style))
	}
	for g, group := range n.Footer.Groups {
		groupLabels := make(map[string]bool, len(group.Items))
		for i, link := range group.Items {
			field := fmt.Sprintf("navigation.footer.groups[%d].items[%d]", g, i)
			v.label(groupLabels, field, link.Label)
			if (link.To == "") == (link.Href == "") {
				v.add(field, "must set exactly one of to or href")
			}
			if link.Href != "" {
				v.absolute(field+".href", link.Href)
			}
			if link.To != "" {
				v.sitePath(field+".to", link.To)
			}
		}
	}
}

func (v *validator) label(seen map[string]bool, field, label string) {
	if label == "" {
		v.add(field+".label", "must not be empty")
		return
	}
	if seen[label] {
		v.add(field+".label", fmt.Sprintf("duplicate label %q", label))
	}
	seen[label] = true
}

func (v *validator) absolute(field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		v.add(field, fmt.Sprintf("%q is not an absolute URL", raw))
	}
}

// sitePath rejects relative and protocol-relative paths; Routing.Path only
// prefixes the base path.
func (v *validator) sitePath(field, p string) {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		v.add(field, fmt.Sprintf("%q must be a site path starting with /", p))
	}
}

func (v *validator) docs(d Docs) {
	ids := make(map[string]bool, len(d.Sidebars))
	for i, sb := range d.Sidebars {
		field := fmt.Sprintf("docs.sidebars[%d]", i)
		switch {
		case sb.ID == "":
			v.add(field+".id", "must not be empty")
		case ids[sb.ID]:
			v.add(field+".id", fmt.Sprintf("duplicate sidebar %q", sb.ID))
		}
		ids[sb.ID] = true
		if sb.Dir == "" {
			v.add(field+".dir", "must not be empty")
		}
	}
}

func (v *validator) theming(t Theming) {
	switch t.ColorMode {
	case ColorModeSystem, ColorModeLight, ColorModeDark:
	default:
		v.add("theming.color_mode", fmt.Sprintf("unknown color mode %q", t.ColorMode))
	}
	if !highlight.StyleExists(t.Code.Theme) {
		v.add("theming.code.theme", fmt.Sprintf("unknown code theme %q", t.Code.Theme))
	}
	if !highlight.StyleExists(t.Code.DarkTheme) {
		v.add("theming.code.dark_theme", fmt.Sprintf("unknown code theme %q", t.Code.DarkTheme))
	}
	for i, lang := range t.Code.AdditionalLanguages {
		if !highlight.LanguageExists(lang) {
			v.add(fmt.Sprintf("theming.code.additional_languages[%d]", i), fmt.Sprintf("unknown language %q", lang))
		}
	}
}
