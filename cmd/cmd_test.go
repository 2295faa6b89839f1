package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brockcataldi/deodar-docs/internal/config"
	"github.com/brockcataldi/deodar-docs/internal/site"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd.PersistentFlags())
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestValidate_BuiltInSite(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, `site configuration for "Deodar" is valid`)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	siteFile := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(siteFile, []byte(`
identity:
  title: Deodar
routing:
  url: deodar.io
  default_locale: fr
  locales: [en]
theming:
  code:
    theme: github
    dark_theme: dracula
`), 0o644))

	out, err := execute(t, "validate", "--site", siteFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, site.ErrInvalidConfig))
	assert.Contains(t, out, "routing.url")
	assert.Contains(t, out, "routing.default_locale")
	assert.Contains(t, err.Error(), "2 problem(s)")
}

func TestBuild_WritesSite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for rel, body := range map[string]string{
		"docs/learn/index.md":            "# Learn\n",
		"docs/reference/class-deodar.md": "# Class Deodar\n",
		"docs/examples/index.md":         "# Examples\n",
	} {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	out := filepath.Join(dir, "public")
	_, err := execute(t, "build", "--output", out, "--log-level", "error")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "docs", "reference", "class-deodar", "index.html"))
}

func TestReloadSite(t *testing.T) {
	builtIn := site.Deodar()
	got, err := reloadSite(config.Config{}, builtIn)
	require.NoError(t, err)
	assert.Equal(t, builtIn, got)

	siteFile := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(siteFile, []byte("identity:\n  title: Edited\n"), 0o644))
	got, err = reloadSite(config.Config{SiteFile: siteFile}, builtIn)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Identity.Title)

	require.NoError(t, os.WriteFile(siteFile, []byte("identity:\n  titel: typo\n"), 0o644))
	_, err = reloadSite(config.Config{SiteFile: siteFile}, builtIn)
	require.Error(t, err)
}
