// Package theme holds the default page layouts and stylesheet, and parses a
// layout directory into one template set per page layout.
package theme

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed layouts static
var files embed.FS

const (
	BaseLayout  = "base.html"
	partialsDir = "partials"
)

// Layouts returns the built-in layout directory.
func Layouts() fs.FS {
	sub, _ := fs.Sub(files, "layouts")
	return sub
}

// Static returns the built-in static assets, copied below /assets/.
func Static() fs.FS {
	sub, _ := fs.Sub(files, "static")
	return sub
}

// Set maps a page layout name ("home.html", "doc.html") to a template that
// already contains the base layout and every partial.
type Set struct {
	pages map[string]*template.Template
}

// Load parses base.html and partials/ first, then clones that root once per
// page layout so every page can define its own "main" block.
func Load(fsys fs.FS, funcs template.FuncMap) (*Set, error) {
	var partials, pages []string
	hasBase := false
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case p == BaseLayout:
			hasBase = true
		case strings.HasPrefix(p, partialsDir+"/"):
			partials = append(partials, p)
		case path.Dir(p) == ".":
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files: %w", err)
	}
	if !hasBase {
		return nil, fmt.Errorf("%s not found in layouts directory", BaseLayout)
	}
	sort.Strings(partials)
	sort.Strings(pages)

	root, err := template.New(BaseLayout).Funcs(funcs).ParseFS(fsys, append([]string{BaseLayout}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base.html and partials: %w", err)
	}

	set := &Set{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(fsys, page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		set.pages[page] = clone
	}
	return set, nil
}

// Has reports whether a page layout was loaded.
func (s *Set) Has(page string) bool {
	_, ok := s.pages[page]
	return ok
}

// Execute renders page through the base layout.
func (s *Set) Execute(w io.Writer, page string, data any) error {
	tpl, ok := s.pages[page]
	if !ok {
		return fmt.Errorf("layout %q not found", page)
	}
	return tpl.ExecuteTemplate(w, BaseLayout, data)
}
