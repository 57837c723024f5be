package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/killallgit/podradio/internal/logging"
	"github.com/killallgit/podradio/pkg/config"
)

// appConfig is populated by loadConfig for commands that need it
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "podradio",
	Short: "Random podcast episode sampler",
	Long: `podradio - Random podcast episode sampler

Serves random playable episodes drawn from curated RSS/Atom feeds and
hand-picked single episodes, grouped by language.

Features:
  • Concurrent feed fetching with per-feed timeouts
  • Diversity-aware sampling across feeds and singles
  • "new" time preference limited to recent episodes
  • Registries read from markdown/JSON files or SQLite`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig initializes configuration and logging for commands that need them.
// Explicit --log-level and --json-logs flags win over the config file.
func loadConfig(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		config.ConfigFile = path
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	opts := logging.Options{
		Level:  cfg.Logging.Level,
		JSON:   cfg.Logging.Format == "json",
		Output: cmd.ErrOrStderr(),
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		opts.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("json-logs"); f != nil && f.Changed {
		opts.JSON, _ = cmd.Flags().GetBool("json-logs")
	}
	if err := logging.Init(opts); err != nil {
		logging.Warn("invalid log level, using info", "err", err)
	}

	appConfig = cfg
	return nil
}
