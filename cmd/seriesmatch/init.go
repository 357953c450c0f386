package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example config file",
	Long: `Write an example config file to path (default ./config.toml, or the
per-user location with --user).

Examples:
  seriesmatch init
  seriesmatch init --user
  seriesmatch init --series Lost --series "Doctor Who" ~/.config/seriesmatch/config.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().Bool("user", false, "Write to the per-user config location")
	initCmd.Flags().StringArray("series", nil, "Series to track (repeatable); replaces the example series")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	series, _ := cmd.Flags().GetStringArray("series")

	user, _ := cmd.Flags().GetBool("user")

	path := "config.toml"
	switch {
	case len(args) > 0 && user:
		return fmt.Errorf("--user and a path are mutually exclusive")
	case len(args) > 0:
		path = args[0]
	case user:
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if len(series) == 0 {
		if err := config.WriteDefault(path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	} else {
		cfg, err := config.Default()
		if err != nil {
			return err
		}
		cfg.Series = cfg.Series[:0]
		for _, name := range series {
			cfg.Series = append(cfg.Series, config.SeriesConfig{Name: name})
		}
		if err := cfg.Write(path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
