package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/config"
	"github.com/vmunix/seriesmatch/pkg/feed"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, patterns and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configTestCmd.Flags().Bool("feeds", false, "Also check that every feed answers a caps request")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		p, err := resolveConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)

	if checkFeeds, _ := cmd.Flags().GetBool("feeds"); checkFeeds {
		_, _ = fmt.Fprintln(out, "\nFeeds:")
		failed := 0
		for _, name := range cfg.FeedNames() {
			fc := cfg.Feeds[name]
			client := feed.NewClient(name, fc.URL, fc.APIKey, nil)
			if err := client.Caps(cmd.Context()); err != nil {
				_, _ = fmt.Fprintf(out, "  - %s: %v\n", name, err)
				failed++
				continue
			}
			_, _ = fmt.Fprintf(out, "  - %s: ok\n", name)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d feeds unreachable", failed, len(cfg.Feeds))
		}
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		_, _ = fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		_, _ = fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			_, _ = fmt.Fprintf(w, "  - %s\n", err)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Configuration Summary:")
	_, _ = fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
	_, _ = fmt.Fprintf(w, "  Database:   %s\n", cfg.Database.Path)
	_, _ = fmt.Fprintf(w, "  Feeds:      %s\n", strings.Join(cfg.FeedNames(), ", "))

	names := make([]string, 0, len(cfg.Series))
	for _, s := range cfg.Series {
		names = append(names, s.Name)
	}
	_, _ = fmt.Fprintf(w, "  Series:     %s\n", strings.Join(names, ", "))

	p := cfg.Patterns
	if len(p.Episode) > 0 || len(p.ID) > 0 || len(p.Qualities) > 0 {
		_, _ = fmt.Fprintf(w, "  Patterns:   %d episode, %d id, %d qualities (overrides)\n",
			len(p.Episode), len(p.ID), len(p.Qualities))
	}
}
