package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brockcataldi/deodar-docs/internal/build"
	"github.com/brockcataldi/deodar-docs/internal/config"
	xlog "github.com/brockcataldi/deodar-docs/internal/log"
	"github.com/brockcataldi/deodar-docs/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from docs, layouts and static assets",
	Long: `The build command validates the site configuration, renders every
Markdown file below ./docs with its front matter, applies the layouts
(built in, or ./layouts when present), copies ./static, and writes the
site to the configured output directory (default './build/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(cmd.Context(), appConfig, siteConfig)
		return err
	},
}

func runBuildProcess(ctx context.Context, cfg config.Config, s site.Config) (*build.Result, error) {
	res, err := build.Run(ctx, buildOptions(cfg, s))
	if err != nil && build.IsConfigError(err) {
		return nil, fmt.Errorf("%w\nrun 'deodar-docs validate' for the full list of problems", err)
	}
	return res, err
}

func buildOptions(cfg config.Config, s site.Config) build.Options {
	return build.Options{
		Site:       s,
		SourceDir:  cfg.SourceDir,
		OutputDir:  cfg.OutputDir,
		LayoutsDir: filepath.Join(cfg.SourceDir, cfg.LayoutsDir),
		StaticDir:  filepath.Join(cfg.SourceDir, cfg.StaticDir),
		Logger:     xlog.Base(),
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
