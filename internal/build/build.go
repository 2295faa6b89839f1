// Package build generates the static site: validated config in, a directory
// of HTML, assets and a sitemap out.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/brockcataldi/deodar-docs/internal/content"
	"github.com/brockcataldi/deodar-docs/internal/features"
	"github.com/brockcataldi/deodar-docs/internal/highlight"
	"github.com/brockcataldi/deodar-docs/internal/links"
	"github.com/brockcataldi/deodar-docs/internal/model"
	"github.com/brockcataldi/deodar-docs/internal/site"
	"github.com/brockcataldi/deodar-docs/internal/theme"
)

const (
	homeLayout     = "home.html"
	docLayout      = "doc.html"
	notFoundLayout = "404.html"
	assetsDir      = "assets"
)

// ErrDuplicatePermalink is returned when two docs resolve to the same URL.
var ErrDuplicatePermalink = errors.New("duplicate permalink")

// Options configures one build.
type Options struct {
	Site       site.Config
	SourceDir  string // holds the docs directory named by Site.Docs.Path
	OutputDir  string
	LayoutsDir string // optional; the built-in theme is used when missing
	StaticDir  string // optional; copied verbatim to the output root
	Now        func() time.Time
	Logger     zerolog.Logger
}

// Result summarises a finished build.
type Result struct {
	Pages  int
	Docs   int
	Broken []links.Broken
}

// Run performs a full build. Any error leaves OutputDir in an undefined state.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger.With().Str("component", "build").Logger()
	cfg := opts.Site

	if err := site.Validate(cfg); err != nil {
		return nil, fmt.Errorf("site config: %w", err)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	start := now()
	logger.Info().Str("output", opts.OutputDir).Str("url", cfg.Routing.URL).Msg("starting build")

	if err := prepareOutput(opts.OutputDir); err != nil {
		return nil, err
	}
	if err := copyAssets(opts, logger); err != nil {
		return nil, err
	}

	collector := content.NewCollector(cfg, logger)
	docs, err := collector.Collect(filepath.Join(opts.SourceDir, cfg.Docs.Path))
	if err != nil {
		return nil, err
	}
	if err := checkPermalinks(docs); err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Permalink < docs[j].Permalink })

	data := &model.SiteData{Config: cfg, Docs: docs, Year: start.Year()}
	data.Group()

	layouts, err := loadLayouts(opts, cfg, logger)
	if err != nil {
		return nil, err
	}

	pages, err := renderPages(ctx, opts.OutputDir, layouts, data)
	if err != nil {
		return nil, err
	}

	if err := writeFile(filepath.Join(opts.OutputDir, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, data)
	}); err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}

	res := &Result{Pages: pages, Docs: len(docs)}
	if err := checkLinks(opts.OutputDir, cfg, res, logger); err != nil {
		return res, err
	}

	logger.Info().Int("pages", pages).Int("docs", len(docs)).Dur("took", now().Sub(start)).Msg("build completed")
	return res, nil
}

func checkPermalinks(docs []*model.Doc) error {
	seen := make(map[string]string, len(docs))
	var errs []error
	for _, d := range docs {
		if prev, ok := seen[d.Permalink]; ok {
			errs = append(errs, fmt.Errorf("%w %s: %s and %s", ErrDuplicatePermalink, d.Permalink, prev, d.SourcePath))
			continue
		}
		seen[d.Permalink] = d.SourcePath
	}
	return errors.Join(errs...)
}

func prepareOutput(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", dir, err)
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}
	return nil
}

// copyAssets places the theme stylesheet under /assets, the highlight CSS
// next to it and the user's static dir at the output root.
func copyAssets(opts Options, logger zerolog.Logger) error {
	assets := filepath.Join(opts.OutputDir, assetsDir)
	if err := copyTree(theme.Static(), assets); err != nil {
		return fmt.Errorf("failed to copy theme assets: %w", err)
	}

	code := opts.Site.Theming.Code
	css := filepath.Join(assets, "css", "highlight.css")
	if err := writeFile(css, func(w io.Writer) error {
		return highlight.WriteStylesheet(w, code.Theme, code.DarkTheme)
	}); err != nil {
		return fmt.Errorf("highlight stylesheet: %w", err)
	}

	if opts.StaticDir == "" {
		return nil
	}
	if _, err := os.Stat(opts.StaticDir); os.IsNotExist(err) {
		logger.Debug().Str("dir", opts.StaticDir).Msg("static directory not found, skipping copy")
		return nil
	}
	if err := copyTree(os.DirFS(opts.StaticDir), opts.OutputDir); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	logger.Debug().Str("dir", opts.StaticDir).Msg("static assets copied")
	return nil
}

func loadLayouts(opts Options, cfg site.Config, logger zerolog.Logger) (*theme.Set, error) {
	fsys := theme.Layouts()
	if opts.LayoutsDir != "" {
		if info, err := os.Stat(opts.LayoutsDir); err == nil && info.IsDir() {
			logger.Info().Str("dir", opts.LayoutsDir).Msg("using custom layouts")
			fsys = os.DirFS(opts.LayoutsDir)
		}
	}
	set, err := theme.Load(fsys, funcMap(cfg))
	if err != nil {
		return nil, err
	}
	for _, required := range []string{homeLayout, docLayout, notFoundLayout} {
		if !set.Has(required) {
			return nil, fmt.Errorf("layout %q not found", required)
		}
	}
	return set, nil
}

type page struct {
	layout string
	out    string
	data   *model.PageData
}

func renderPages(ctx context.Context, outputDir string, layouts *theme.Set, s *model.SiteData) (int, error) {
	featuresHTML, err := features.HTML()
	if err != nil {
		return 0, fmt.Errorf("feature section: %w", err)
	}

	home := pageData(s, nil)
	home.Description = s.Config.Identity.Tagline
	home.Permalink = s.Config.Routing.Path("/")
	home.Features = featuresHTML
	home.Layout = homeLayout

	notFound := pageData(s, nil)
	notFound.PageTitle = "Page Not Found"
	notFound.Permalink = s.Config.Routing.Path("/404.html")
	notFound.Layout = notFoundLayout

	pages := []page{
		{layout: homeLayout, out: filepath.Join(outputDir, "index.html"), data: home},
		{layout: notFoundLayout, out: filepath.Join(outputDir, "404.html"), data: notFound},
	}
	for _, d := range s.Docs {
		data := pageData(s, d)
		data.PageTitle = d.Title
		data.Description = d.Description
		data.Permalink = d.Permalink
		data.Layout = docLayout
		pages = append(pages, page{layout: docLayout, out: outputPath(outputDir, s.Config.Routing.BasePath, d.Permalink), data: data})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(p.out, func(w io.Writer) error {
				return layouts.Execute(w, p.layout, p.data)
			}); err != nil {
				return fmt.Errorf("failed to execute template '%s' (outputting to '%s'): %w", p.layout, p.out, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// outputPath maps a permalink such as "/docs/learn/" to
// "<out>/docs/learn/index.html", stripping the base path first.
func outputPath(outputDir, basePath, permalink string) string {
	rel := strings.TrimPrefix(permalink, strings.TrimSuffix(basePath, "/"))
	return filepath.Join(outputDir, filepath.FromSlash(rel), "index.html")
}

// writeFile writes atomically via a pending file, creating parent dirs.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", filepath.Dir(path), err)
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer pending.Cleanup()

	if err := write(pending); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

func checkLinks(outputDir string, cfg site.Config, res *Result, logger zerolog.Logger) error {
	if cfg.OnBrokenLinks == site.BrokenLinksIgnore {
		return nil
	}
	broken, err := links.Check(outputDir, cfg.Routing.BasePath)
	if err != nil {
		return fmt.Errorf("link check: %w", err)
	}
	res.Broken = broken
	if len(broken) == 0 {
		return nil
	}

	for _, b := range broken {
		logger.Warn().Str("page", b.Page).Str("href", b.Href).Msg("broken link")
	}
	if cfg.OnBrokenLinks == site.BrokenLinksThrow {
		lines := make([]string, len(broken))
		for i, b := range broken {
			lines[i] = b.String()
		}
		return fmt.Errorf("%w: %d found:\n%s", links.ErrBrokenLinks, len(broken), strings.Join(lines, "\n"))
	}
	return nil
}

// IsConfigError reports whether err came from site config validation.
func IsConfigError(err error) bool {
	return errors.Is(err, site.ErrInvalidConfig)
}
