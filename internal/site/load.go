package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads a site configuration from a YAML file. Unknown keys are
// rejected, and unset optional fields receive their defaults. The result is
// not validated; call Validate before handing it to the build.
func Load(filename string) (Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("error reading site config %s: %w", filename, err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes into a Config with defaults applied.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling site config: %w", err)
	}
	return withDefaults(cfg), nil
}

func withDefaults(cfg Config) Config {
	if cfg.Routing.BasePath == "" {
		cfg.Routing.BasePath = "/"
	}
	if cfg.Routing.DefaultLocale == "" && len(cfg.Routing.Locales) > 0 {
		cfg.Routing.DefaultLocale = cfg.Routing.Locales[0]
	}
	if cfg.Theming.ColorMode == "" {
		cfg.Theming.ColorMode = ColorModeSystem
	}
	if cfg.Navigation.Footer.Style == "" {
		cfg.Navigation.Footer.Style = "dark"
	}
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = BrokenLinksThrow
	}
	if cfg.Docs.Path == "" {
		cfg.Docs.Path = "docs"
	}
	if cfg.Docs.RoutePrefix == "" {
		cfg.Docs.RoutePrefix = "/docs"
	}
	if cfg.Docs.Exclude == nil {
		cfg.Docs.Exclude = []string{"**/_*"}
	}

	primary := make([]NavItem, len(cfg.Navigation.Primary))
	for i, item := range cfg.Navigation.Primary {
		if item.Position == "" {
			item.Position = PositionLeft
		}
		primary[i] = item
	}
	cfg.Navigation.Primary = primary
	return cfg
}
