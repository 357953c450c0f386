package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/catalog"
	"github.com/vmunix/seriesmatch/internal/watch"
	"github.com/vmunix/seriesmatch/pkg/feed"
)

var searchCmd = &cobra.Command{
	Use:   "search <series>",
	Short: "Search feeds for a series and show what poll would record",
	Long: `Search every configured feed for a tracked series and classify each
result against the catalog without recording anything.

Examples:
  seriesmatch search Lost
  seriesmatch search "Doctor Who" --all`,
	Args: cobra.ExactArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("all", false, "Include results that do not match the series")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	showAll, _ := cmd.Flags().GetBool("all")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := syncSeries(store, cfg.Series, logger); err != nil {
		return err
	}
	series, err := store.GetSeriesByName(args[0])
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("series %q is not tracked", args[0])
		}
		return err
	}

	w, err := newWatcher(cfg, store, logger)
	if err != nil {
		return err
	}
	if len(cfg.Feeds) == 0 {
		return watch.ErrNoSources
	}

	report := &watch.Report{Sources: len(cfg.Feeds), Failed: make(map[string]error)}
	for _, name := range cfg.FeedNames() {
		fc := cfg.Feeds[name]
		client := feed.NewClient(name, fc.URL, fc.APIKey, logger, feed.WithLimit(fc.Limit))
		items, err := client.Search(cmd.Context(), series.Name, fc.Categories)
		if err != nil {
			logger.Warn("feed search failed", "feed", name, "error", err)
			report.Failed[name] = err
			continue
		}
		for _, item := range items {
			out := w.Classify(series, item.Title)
			out.Item = item
			if out.Decision == watch.Unmatched && !showAll {
				continue
			}
			report.Outcomes = append(report.Outcomes, out)
		}
	}

	printSearch(cmd.OutOrStdout(), report)
	if len(report.Failed) == report.Sources {
		return errors.New("all feeds failed")
	}
	return nil
}

func printSearch(out io.Writer, r *watch.Report) {
	if jsonOutput {
		_ = writeJSON(out, reportToJSON(r))
		return
	}
	printFailedFeeds(out, r.Failed)
	if len(r.Outcomes) == 0 {
		_, _ = fmt.Fprintln(out, "No matching releases")
		return
	}

	_, _ = fmt.Fprintln(out, searchTable(r.Outcomes))
}
