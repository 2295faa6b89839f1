package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brockcataldi/deodar-docs/internal/config"
	xlog "github.com/brockcataldi/deodar-docs/internal/log"
	"github.com/brockcataldi/deodar-docs/internal/site"
)

var (
	cfgFile    string
	appConfig  config.Config
	siteConfig site.Config
)

var rootCmd = &cobra.Command{
	Use:   "deodar-docs",
	Short: "Builds the Deodar documentation site",
	Long: `deodar-docs turns the Markdown under ./docs into the static Deodar
documentation website: a homepage with the feature section, one page per
doc grouped into sidebars, and the navbar and footer described by the site
configuration.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./deodar-docs.yaml)")
	rootCmd.PersistentFlags().String("site", "", "site configuration YAML (default is the built-in Deodar site)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output directory")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"siteFile":  "site",
		"logLevel":  "log-level",
		"outputDir": "output",
		"port":      "port",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, used, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Console: cfg.LogFormat != "json"})
	logger := xlog.WithComponent("cli")
	if used != "" {
		logger.Debug().Str("file", used).Msg("using config file")
	}

	if cfg.SiteFile == "" {
		siteConfig = site.Deodar()
		return nil
	}
	siteConfig, err = site.Load(cfg.SiteFile)
	if err != nil {
		return err
	}
	logger.Debug().Str("file", cfg.SiteFile).Msg("loaded site configuration")
	return nil
}
