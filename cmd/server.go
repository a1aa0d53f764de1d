package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shellmarks/catalog/internal/history"
	"github.com/shellmarks/catalog/internal/linkrouter"
	"github.com/shellmarks/catalog/internal/livereload"
	"github.com/shellmarks/catalog/internal/sectionmenu"
	"github.com/shellmarks/catalog/internal/server"
	"github.com/shellmarks/catalog/internal/site"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the live catalog page with working section menus",
	Long: `Starts the catalog server. The page is rendered fresh on every request,
reloads itself when section files change, and its links (Edit Section,
edit:, external URLs) are handled by this process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Port
		}

		// Open database.
		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		cat := newCatalog(cfg)
		links := linkrouter.New()
		newHost(cat, newOpener(cfg), store, history.SourceWeb, logger).Register(links)

		generator := site.NewGenerator(cat, cfg.OutputDir, cfg.ProjectName)
		generator.Injector = sectionmenu.New(sectionmenu.WithLogger(logger))
		generator.Logger = logger
		generator.LiveReload = true

		hub := livereload.NewHub(logger)

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: cfg.AllowAllOrigins,
		}, database, generator, links, hub, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := livereload.Watch(ctx, cat.Paths(), cat.Admits, hub, logger); err != nil {
				logger.Warn("live reload disabled", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		url := fmt.Sprintf("http://localhost:%d", port)
		fmt.Fprintf(os.Stderr, "shellmarks server %s\n", Version)
		fmt.Fprintf(os.Stderr, "  Catalog: %s\n", url)
		fmt.Fprintf(os.Stderr, "  Script paths: %v\n", cfg.ScriptPaths)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())

		if openBrowser, _ := cmd.Flags().GetBool("open"); openBrowser {
			go site.OpenBrowser(url)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().Int("port", 0, "port to listen on (defaults to the configured port)")
	serverCmd.Flags().Bool("open", false, "open the catalog in a browser")
	rootCmd.AddCommand(serverCmd)
}
