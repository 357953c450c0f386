package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/catalog"
	"github.com/vmunix/seriesmatch/internal/config"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "seriesmatch",
	Short: "Match release titles against tracked series",
	Long: `seriesmatch - match release titles against tracked series

Decides whether a release title belongs to a series, extracts its
episode (S2E5) or date/number id and a quality tag, and keeps a
catalog of the best release seen per episode.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("seriesmatch {{.Version}}\n")
}

// resolveConfigPath returns --config or the discovered config file. Discovery
// is traced with --log-level debug.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.Discover(newLogger(rootCmd.ErrOrStderr(), logLevel).With("component", "config"))
}

// loadConfig loads and validates the configuration. --log-level replaces the
// configured level.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

// openStore opens the catalog database named by cfg.
func openStore(cfg *config.Config) (*catalog.Store, func(), error) {
	db, err := catalog.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewStore(db), func() { _ = db.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
