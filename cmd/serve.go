package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/brockcataldi/deodar-docs/internal/config"
	xlog "github.com/brockcataldi/deodar-docs/internal/log"
	"github.com/brockcataldi/deodar-docs/internal/serve"
	"github.com/brockcataldi/deodar-docs/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of the site, then starts a
local web server for the output directory. It watches the docs, layouts and
static directories, plus the --site file when one is given, and rebuilds the
site when they change. A changed base path only takes effect after a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := xlog.WithComponent("serve")
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info().Msg("performing initial build")
		if _, err := runBuildProcess(ctx, appConfig, siteConfig); err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}

		current := siteConfig
		watcher := &serve.Watcher{
			Paths: []string{
				filepath.Join(appConfig.SourceDir, siteConfig.Docs.Path),
				filepath.Join(appConfig.SourceDir, appConfig.LayoutsDir),
				filepath.Join(appConfig.SourceDir, appConfig.StaticDir),
			},
			Logger: logger,
			Rebuild: func(ctx context.Context) error {
				next, err := reloadSite(appConfig, current)
				if err != nil {
					return err
				}
				if next.Routing.BasePath != current.Routing.BasePath {
					logger.Warn().Str("base_path", next.Routing.BasePath).Msg("base path changed, restart serve to apply it")
				}
				current = next
				_, err = runBuildProcess(ctx, appConfig, current)
				return err
			},
		}
		if appConfig.SiteFile != "" {
			watcher.Files = []string{appConfig.SiteFile}
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", appConfig.Port),
			Handler:           serve.Handler(appConfig.OutputDir, siteConfig.Routing.BasePath, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error { return watcher.Run(ctx) })
		g.Go(func() error {
			logger.Info().Str("dir", appConfig.OutputDir).Msgf("serving site on http://localhost%s%s", srv.Addr, siteConfig.Routing.BasePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to start HTTP server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

// reloadSite re-reads the --site file so rebuilds see edits to it. The
// built-in site is returned unchanged.
func reloadSite(cfg config.Config, current site.Config) (site.Config, error) {
	if cfg.SiteFile == "" {
		return current, nil
	}
	return site.Load(cfg.SiteFile)
}

func init() {
	serveCmd.Flags().IntP("port", "p", 3000, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
