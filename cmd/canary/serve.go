package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/canary"
	"github.com/aretw0/canary/internal/config"
	"github.com/aretw0/canary/internal/demo"
	"github.com/aretw0/canary/pkg/adapters/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diagnostic HTTP server",
	Long: `Patches the demo model and exposes the classification registry over a
JSON API, with prometheus metrics on /metrics. When a configuration file is
given it is watched and reloaded on change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		logger := newLogger(cfg)

		registry := prometheus.NewRegistry()
		layer := canary.New(
			canary.WithLogger(logger),
			canary.WithReportWriter(io.Discard),
			canary.WithDenylist(cfg.Deny...),
			canary.WithMetrics(registry),
		)

		model := demo.New()
		layer.Mark(model.Circle, cfg.IncludeAll)
		layer.Mark(model.Geometry, cfg.IncludeAll)
		layer.MarkAncestors(cfg.IncludeAll)
		if err := layer.Patch(); err != nil {
			return err
		}

		handler := httpapi.NewHandler(layer, httpapi.WithGatherer(registry))
		srv := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: handler,
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Reload the config file on change. Denylist additions take effect
		// live; the rest is logged so the operator knows a restart is due.
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			watcher := config.NewWatcher(path, logger)
			go func() {
				err := watcher.Watch(ctx, func(next config.Config) {
					layer.Deny(next.Deny...)
					logger.Info("configuration changed",
						"verbosity", next.Verbosity,
						"deny", next.Deny)
				})
				if err != nil && ctx.Err() == nil {
					logger.Warn("config watcher stopped", "err", err)
				}
			}()
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting diagnostic server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("closing server: %w", err)
				}
			}
			logger.Info("diagnostic server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
