// Package main provides the CLI entry point for gridsel.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/gridsel/internal/config"
)

var (
	configPath string
	sheetName  string
	logLevel   string
	noCache    bool

	// cfg is loaded once per invocation before any command runs.
	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridsel [file]",
		Short: "Select rectangles, rows and columns of a spreadsheet",
		Long: `gridsel opens an .xlsx, .csv or .tsv file in a terminal grid where
cells, rows and columns can be selected with the mouse or keyboard and
copied as TSV. Merged cells are always selected whole.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runView,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return err
		}
		return setupLogging(cmd, cfg)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")
	pf.StringVarP(&sheetName, "sheet", "s", "", "Worksheet name (default: first sheet)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.BoolVar(&noCache, "no-cache", false, "Bypass the parsed sheet cache")

	rootCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload when the file changes on disk")

	rootCmd.AddCommand(newViewCmd(), newSelectCmd(), newSheetsCmd(), newRecentCmd())
	return rootCmd
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if noCache {
		cfg.Cache.Disabled = true
	}
	return cfg, cfg.Validate()
}

// setupLogging points the global zerolog logger at the log file. The TUI owns
// the terminal, so nothing is logged to stderr.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	zerolog.SetGlobalLevel(cfg.Log.LevelOrDefault())

	path, err := cfg.Log.FileOrDefault()
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		if _, err := config.EnsureDataDir(); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Str("cmd", cmd.Name()).Logger()
	return nil
}
