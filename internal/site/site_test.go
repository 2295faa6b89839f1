package site

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeodar_Validates(t *testing.T) {
	require.NoError(t, Validate(Deodar()))
}

func TestDeodar_FreshValuePerCall(t *testing.T) {
	a := Deodar()
	a.Routing.Locales[0] = "de"
	a.Navigation.Primary[0].Label = "changed"

	b := Deodar()
	assert.Equal(t, []string{"en"}, b.Routing.Locales)
	assert.Equal(t, "Learn", b.Navigation.Primary[0].Label)
}

func TestDeodar_Properties(t *testing.T) {
	cfg := Deodar()

	assert.Contains(t, cfg.Routing.Locales, cfg.Routing.Default())

	u, err := url.Parse(cfg.Routing.URL)
	require.NoError(t, err)
	assert.True(t, u.IsAbs())

	seen := map[string]bool{}
	for _, item := range cfg.Navigation.Primary {
		assert.False(t, seen[item.Label], "duplicate navbar label %q", item.Label)
		seen[item.Label] = true
	}
	for _, group := range cfg.Navigation.Footer.Groups {
		seen := map[string]bool{}
		for _, link := range group.Items {
			assert.False(t, seen[link.Label], "duplicate footer label %q in %q", link.Label, group.Title)
			seen[link.Label] = true
		}
	}
}

func TestValidate_Locales(t *testing.T) {
	tests := []struct {
		name    string
		routing Routing
		wantErr bool
	}{
		{"default in list", Routing{DefaultLocale: "en", Locales: []string{"en"}}, false},
		{"default missing", Routing{DefaultLocale: "fr", Locales: []string{"en"}}, true},
		{"implicit default", Routing{Locales: []string{"en", "fr"}}, false},
		{"empty list", Routing{DefaultLocale: "en"}, true},
		{"duplicate", Routing{Locales: []string{"en", "en"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Deodar()
			cfg.Routing.DefaultLocale = tt.routing.DefaultLocale
			cfg.Routing.Locales = tt.routing.Locales

			err := Validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestValidate_URL(t *testing.T) {
	for _, raw := range []string{"", "deodar.io", "/relative", "https://"} {
		cfg := Deodar()
		cfg.Routing.URL = raw
		err := Validate(cfg)
		require.Error(t, err, "url %q", raw)

		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "routing.url", fe.Field)
	}
}

func TestValidate_BasePath(t *testing.T) {
	cfg := Deodar()
	cfg.Routing.BasePath = "/docs"
	require.Error(t, Validate(cfg))

	cfg.Routing.BasePath = "/deodar/"
	require.NoError(t, Validate(cfg))
}

func TestValidate_DuplicateNavbarLabel(t *testing.T) {
	cfg := Deodar()
	cfg.Navigation.Primary = append(cfg.Navigation.Primary, NavItem{
		Label: "Learn", Href: "https://example.com", Position: PositionRight,
	})

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate label "Learn"`)
}

func TestValidate_FooterLabelsScopedPerGroup(t *testing.T) {
	cfg := Deodar()
	// "GitHub" in both groups is allowed.
	cfg.Navigation.Footer.Groups[0].Items = append(cfg.Navigation.Footer.Groups[0].Items,
		FooterLink{Label: "GitHub", Href: "https://github.com/brockcataldi/deodar"})
	require.NoError(t, Validate(cfg))

	cfg.Navigation.Footer.Groups[1].Items = append(cfg.Navigation.Footer.Groups[1].Items,
		FooterLink{Label: "GitHub", To: "/docs/learn/"})
	require.Error(t, Validate(cfg))
}

func TestValidate_NavTargets(t *testing.T) {
	cfg := Deodar()
	cfg.Navigation.Primary[0].Href = "https://example.com"
	require.Error(t, Validate(cfg), "two targets")

	cfg = Deodar()
	cfg.Navigation.Primary[0].Sidebar = "missingSidebar"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sidebar "missingSidebar"`)

	cfg = Deodar()
	cfg.Navigation.Primary[0].Position = "middle"
	require.Error(t, Validate(cfg))
}

func TestValidate_Theming(t *testing.T) {
	cfg := Deodar()
	cfg.Theming.ColorMode = "sepia"
	cfg.Theming.Code.DarkTheme = "nope"
	cfg.Theming.Code.AdditionalLanguages = []string{"php", "klingon-script"}

	err := Validate(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "theming.color_mode")
	assert.Contains(t, msg, "theming.code.dark_theme")
	assert.Contains(t, msg, "theming.code.additional_languages[1]")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	raw := `
identity:
  title: Deodar
routing:
  url: https://deodar.io
  locales: [en, fr]
navigation:
  primary:
    - label: Learn
      sidebar: learnSidebar
    - label: GitHub
      href: https://github.com/brockcataldi/deodar
      position: right
theming:
  code:
    theme: github
    dark_theme: dracula
docs:
  sidebars:
    - id: learnSidebar
      dir: learn
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "/", cfg.Routing.BasePath)
	assert.Equal(t, "en", cfg.Routing.DefaultLocale)
	assert.Equal(t, PositionLeft, cfg.Navigation.Primary[0].Position)
	assert.Equal(t, PositionRight, cfg.Navigation.Primary[1].Position)
	assert.Equal(t, ColorModeSystem, cfg.Theming.ColorMode)
	assert.Equal(t, BrokenLinksThrow, cfg.OnBrokenLinks)
	assert.Equal(t, "/docs", cfg.Docs.RoutePrefix)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("identity:\n  titel: typo\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_ExampleMatchesBuiltIn(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "site.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Deodar(), cfg)
}

func TestValidate_SitePaths(t *testing.T) {
	cfg := Deodar()
	cfg.Navigation.Primary = append(cfg.Navigation.Primary, NavItem{Label: "Blog", To: "blog/", Position: PositionLeft})
	cfg.Navigation.Footer.Groups[0].Items[0].To = "//docs/learn/"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigation.primary[3].to")
	assert.Contains(t, err.Error(), "navigation.footer.groups[0].items[0].to")

	cfg = Deodar()
	cfg.Navigation.Primary = append(cfg.Navigation.Primary, NavItem{Label: "Blog", To: "/blog/", Position: PositionLeft})
	assert.NoError(t, Validate(cfg))
}

func TestValidate_SidebarIDs(t *testing.T) {
	cfg := Deodar()
	cfg.Docs.Sidebars = append(cfg.Docs.Sidebars,
		Sidebar{ID: "learnSidebar", Dir: "guides"},
		Sidebar{ID: "", Dir: "misc"},
		Sidebar{ID: "blankDir"},
	)

	err := Validate(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `docs.sidebars[3].id: duplicate sidebar "learnSidebar"`)
	assert.Contains(t, msg, "docs.sidebars[4].id: must not be empty")
	assert.Contains(t, msg, "docs.sidebars[5].dir: must not be empty")
}
