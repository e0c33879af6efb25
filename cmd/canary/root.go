package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/canary/internal/config"
	"github.com/aretw0/canary/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "canary",
	Short: "Canary is a runtime instrumentation layer for dynamic object models",
	Long: `Canary classifies the members of classes and modules, patches them in
place with observing wrappers, and routes get, set and call events to
subscribed callbacks which may veto or override the underlying operation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().IntP("verbosity", "v", -1, "Log verbosity (0=silent, 1=user, 2=debug, 3=trace)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
}

// loadConfig resolves the effective configuration: file (if given), then
// CANARY_VERBOSE, then the --verbosity flag on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if v, _ := cmd.Flags().GetInt("verbosity"); v >= 0 {
		cfg.Verbosity = v
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(cfg.Verbosity)
}
