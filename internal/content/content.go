// Package content collects markdown documentation into model.Docs.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/brockcataldi/deodar-docs/internal/highlight"
	"github.com/brockcataldi/deodar-docs/internal/model"
	"github.com/brockcataldi/deodar-docs/internal/site"
)

// Collector turns a docs directory into Docs using the site's routing and
// sidebar layout.
type Collector struct {
	cfg    site.Config
	md     goldmark.Markdown
	logger zerolog.Logger
}

func NewCollector(cfg site.Config, logger zerolog.Logger) *Collector {
	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if strings.TrimSuffix(cfg.Routing.BasePath, "/") != "" {
		parserOpts = append(parserOpts, newBasePathLinks(cfg.Routing))
	}
	return &Collector{
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, highlight.Extension(cfg.Theming.Code.Theme)),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
		logger: logger,
	}
}

// Collect walks dir for markdown files. A missing dir yields no docs.
func (c *Collector) Collect(dir string) ([]*model.Doc, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		c.logger.Warn().Str("dir", dir).Msg("docs directory not found, skipping")
		return nil, nil
	}

	var docs []*model.Doc
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if c.excluded(rel) {
			c.logger.Debug().Str("path", rel).Msg("excluded")
			return nil
		}

		raw, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}
		doc, err := c.Parse(rel, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		doc.SourcePath = p
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", err)
	}
	c.logger.Info().Int("docs", len(docs)).Str("dir", dir).Msg("collected docs")
	return docs, nil
}

func (c *Collector) excluded(rel string) bool {
	for _, pattern := range c.cfg.Docs.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Parse builds a Doc from one markdown file. rel is its slash path below the
// docs directory.
func (c *Collector) Parse(rel string, raw []byte) (*model.Doc, error) {
	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", rel).Msg("could not parse frontmatter, treating as pure markdown")
		body = raw
	}
	if fm == nil {
		fm = make(map[string]interface{})
	}

	var out bytes.Buffer
	if err := c.md.Convert(body, &out); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	id := strings.TrimSuffix(rel, path.Ext(rel))
	doc := &model.Doc{
		ID:          id,
		Title:       stringField(fm, "title"),
		Description: stringField(fm, "description"),
		Sidebar:     c.sidebarFor(id),
		ContentHTML: template.HTML(out.String()),
		Frontmatter: fm,
	}
	doc.SidebarLabel = stringField(fm, "sidebar_label")
	if doc.Title == "" {
		doc.Title = titleFromName(id)
	}
	doc.Position, doc.HasPosition = intField(fm, "sidebar_position")
	doc.Permalink = c.permalink(id, stringField(fm, "slug"))
	return doc, nil
}

func (c *Collector) sidebarFor(id string) string {
	first, _, _ := strings.Cut(id, "/")
	for _, sb := range c.cfg.Docs.Sidebars {
		if sb.Dir == first {
			return sb.ID
		}
	}
	return ""
}

// permalink maps "learn/index" to "/docs/learn/" and "reference/class-deodar"
// to "/docs/reference/class-deodar/". A slug starting with "/" replaces the
// whole path below the route prefix, any other slug replaces the last segment.
func (c *Collector) permalink(id, slug string) string {
	p := id
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	switch {
	case strings.HasPrefix(slug, "/"):
		p = slug
	case slug != "":
		p = path.Join(path.Dir(p), slug)
	}
	if p == "." {
		p = ""
	}
	link := path.Join("/", c.cfg.Docs.RoutePrefix, p)
	if !strings.HasSuffix(link, "/") {
		link += "/"
	}
	return c.cfg.Routing.Path(link)
}

var titleCaser = cases.Title(language.English)

func titleFromName(id string) string {
	base := path.Base(id)
	if base == "index" {
		if dir := path.Dir(id); dir != "." {
			base = path.Base(dir)
		}
	}
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
}

func stringField(fm map[string]interface{}, key string) string {
	if v, ok := fm[key].(string); ok {
		return v
	}
	return ""
}

func intField(fm map[string]interface{}, key string) (int, bool) {
	switch v := fm[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
