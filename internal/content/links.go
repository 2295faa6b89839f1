package content

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/brockcataldi/deodar-docs/internal/site"
)

// basePathLinks prefixes site-relative link and image destinations with the
// base path, so "/docs/learn/" in markdown lands on "/deodar/docs/learn/".
type basePathLinks struct {
	routing site.Routing
}

func newBasePathLinks(r site.Routing) parser.Option {
	return parser.WithASTTransformers(util.Prioritized(&basePathLinks{routing: r}, 100))
}

func (t *basePathLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch l := n.(type) {
		case *ast.Link:
			l.Destination = t.rewrite(l.Destination)
		case *ast.Image:
			l.Destination = t.rewrite(l.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func (t *basePathLinks) rewrite(dest []byte) []byte {
	s := string(dest)
	// "//host/x" is protocol-relative, not a site path.
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
		return dest
	}
	return []byte(t.routing.Path(s))
}
