package config

// Config holds the tool settings resolved from flags, the config file and
// DEODAR_* environment variables.
type Config struct {
	SiteFile   string `mapstructure:"siteFile"`
	SourceDir  string `mapstructure:"sourceDir"`
	OutputDir  string `mapstructure:"outputDir"`
	LayoutsDir string `mapstructure:"layoutsDir"`
	StaticDir  string `mapstructure:"staticDir"`
	Port       int    `mapstructure:"port"`
	LogLevel   string `mapstructure:"logLevel"`
	LogFormat  string `mapstructure:"logFormat"`
}

// Defaults are applied before any file or environment value.
var Defaults = map[string]any{
	"siteFile":   "",
	"sourceDir":  ".",
	"outputDir":  "build",
	"layoutsDir": "layouts",
	"staticDir":  "static",
	"port":       3000,
	"logLevel":   "info",
	"logFormat":  "console",
}
