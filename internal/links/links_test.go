package links

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestCheck_ReportsOnlyUnresolvedInternalLinks(t *testing.T) {
	out := t.TempDir()
	writePage(t, out, "index.html", `<html><body>
<a href="/docs/learn/">learn</a>
<a href="/docs/reference/class-deodar">no trailing slash</a>
<a href="/docs/missing/">missing</a>
<a href="https://github.com/brockcataldi/deodar">external</a>
<a href="#top">fragment</a>
<a href="mailto:someone@example.com">mail</a>
<a href="/img/logo.svg">asset</a>
</body></html>`)
	writePage(t, out, "docs/learn/index.html", `<a href="../reference/class-deodar/">rel</a><a href="nope/">rel missing</a>`)
	writePage(t, out, "docs/reference/class-deodar/index.html", `<p>ref</p>`)
	writePage(t, out, "img/logo.svg", `<svg/>`)

	broken, err := Check(out, "/")
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "/", Href: "/docs/missing/"},
		{Page: "/docs/learn/", Href: "nope/"},
	}, broken)
}

func TestCheck_BasePath(t *testing.T) {
	out := t.TempDir()
	writePage(t, out, "index.html", `<a href="/deodar/docs/">ok</a><a href="/elsewhere/">outside base</a><a href="/deodar/gone">gone</a>`)
	writePage(t, out, "docs/index.html", ``)

	broken, err := Check(out, "/deodar/")
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "/deodar/", Href: "/deodar/gone"},
		{Page: "/deodar/", Href: "/elsewhere/"},
	}, broken)
	assert.Equal(t, "/deodar/ -> /deodar/gone", broken[0].String())
}
