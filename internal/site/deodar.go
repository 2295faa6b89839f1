package site

// Deodar returns the configuration of the deodar.io documentation site.
// Every call builds a fresh value, so callers may not observe each other's edits.
func Deodar() Config {
	return Config{
		Identity: Identity{
			Title:   "Deodar",
			Tagline: "An ACF Pro powered theme and plugin framework",
			Favicon: "img/favicon.ico",
			Logo: Logo{
				Alt: "Deodar Logo",
				Src: "img/deodar.svg",
			},
		},
		Routing: Routing{
			URL:           "https://deodar.io",
			BasePath:      "/",
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},
		Navigation: Navigation{
			Primary: []NavItem{
				{Label: "Learn", Sidebar: "learnSidebar", Position: PositionLeft},
				{Label: "Reference", Sidebar: "referenceSidebar", Position: PositionLeft},
				{Label: "GitHub", Href: "https://github.com/brockcataldi/deodar", Position: PositionRight},
			},
			Footer: Footer{
				Style: "dark",
				Groups: []FooterGroup{
					{
						Title: "Docs",
						Items: []FooterLink{
							{Label: "Learn", To: "/docs/learn/"},
							{Label: "Reference", To: "/docs/reference/class-deodar"},
							{Label: "Examples", To: "/docs/examples/"},
						},
					},
					{
						Title: "More",
						Items: []FooterLink{
							{Label: "GitHub", Href: "https://github.com/brockcataldi/deodar"},
						},
					},
				},
				Copyright: "Copyright © {year} Brock Cataldi. Built with deodar-docs.",
			},
		},
		Theming: Theming{
			ColorMode: ColorModeSystem,
			Code: CodeTheme{
				Theme:               "github",
				DarkTheme:           "dracula",
				AdditionalLanguages: []string{"php"},
			},
			Image: "img/docusaurus-social-card.jpg",
		},
		Docs: Docs{
			Path:        "docs",
			RoutePrefix: "/docs",
			Sidebars: []Sidebar{
				{ID: "learnSidebar", Dir: "learn"},
				{ID: "referenceSidebar", Dir: "reference"},
				{ID: "examplesSidebar", Dir: "examples"},
			},
			Exclude: []string{"**/_*"},
		},
		OnBrokenLinks: BrokenLinksThrow,
	}
}
