package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/catalog"
	"github.com/vmunix/seriesmatch/internal/config"
	"github.com/vmunix/seriesmatch/internal/watch"
	"github.com/vmunix/seriesmatch/pkg/feed"
	"github.com/vmunix/seriesmatch/pkg/release"
)

// OutcomeJSON is the JSON-friendly representation of a poll outcome.
type OutcomeJSON struct {
	Feed       string `json:"feed"`
	Title      string `json:"title"`
	Decision   string `json:"decision"`
	Series     string `json:"series,omitempty"`
	Identifier string `json:"id,omitempty"`
	Quality    string `json:"quality,omitempty"`
	Previous   string `json:"previous,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ReportJSON is the JSON-friendly representation of a poll report.
type ReportJSON struct {
	Sources  int               `json:"sources"`
	Failed   map[string]string `json:"failed,omitempty"`
	Outcomes []OutcomeJSON     `json:"outcomes"`
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Fetch feeds and record new episodes",
	Long: `Fetch the newest items of every configured feed, match them against
the tracked series and record first sightings and quality upgrades.

Series listed in the config are added to the catalog if missing.
Only one poll may run against a database at a time.`,
	Args: cobra.NoArgs,
	RunE: runPollCmd,
}

func init() {
	rootCmd.AddCommand(pollCmd)
	pollCmd.Flags().Duration("interval", 0, "Keep polling at this interval (0 polls once)")
}

func runPollCmd(cmd *cobra.Command, _ []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runPoll(ctx, cfg, interval, cmd.OutOrStdout(), logger)
}

func runPoll(ctx context.Context, cfg *config.Config, interval time.Duration, out io.Writer, logger *slog.Logger) error {
	// Lock first so a second poll never opens or migrates the database.
	unlock, err := acquirePollLock(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer unlock()

	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := syncSeries(store, cfg.Series, logger); err != nil {
		return err
	}

	w, err := newWatcher(cfg, store, logger)
	if err != nil {
		return err
	}

	if interval > 0 {
		logger.Info("polling", "interval", interval, "feeds", len(cfg.Feeds))
		return w.Run(ctx, interval, func(r *watch.Report) { printReport(out, r) })
	}

	report, err := w.Poll(ctx)
	if report != nil {
		printReport(out, report)
	}
	return err
}

// acquirePollLock takes the exclusive lock guarding the database at dbPath.
func acquirePollLock(dbPath string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire poll lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another poll is already running")
	}
	return func() { _ = lock.Unlock() }, nil
}

// syncSeries adds config series missing from the catalog. Series already in
// the catalog keep their stored patterns.
func syncSeries(store *catalog.Store, series []config.SeriesConfig, logger *slog.Logger) error {
	for _, s := range series {
		_, err := store.GetSeriesByName(s.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return err
		}
		if err := store.AddSeries(&catalog.Series{Name: s.Name, Patterns: s.Patterns}); err != nil {
			return fmt.Errorf("add series %q: %w", s.Name, err)
		}
		logger.Info("tracking series from config", "series", s.Name)
	}
	return nil
}

func newWatcher(cfg *config.Config, store watch.Store, logger *slog.Logger) (*watch.Watcher, error) {
	patterns, err := cfg.MatcherPatterns()
	if err != nil {
		return nil, err
	}
	m := release.NewMatcher(
		release.WithPatterns(patterns),
		release.WithLogger(logger.With("component", "matcher")),
	)

	var sources []watch.Source
	for _, name := range cfg.FeedNames() {
		fc := cfg.Feeds[name]
		sources = append(sources, feed.NewClient(name, fc.URL, fc.APIKey, logger,
			feed.WithCategories(fc.Categories...),
			feed.WithLimit(fc.Limit),
		))
	}

	return watch.New(m, store, sources, logger.With("component", "watch")), nil
}

func printReport(out io.Writer, r *watch.Report) {
	if jsonOutput {
		_ = writeJSON(out, reportToJSON(r))
		return
	}

	printFailedFeeds(out, r.Failed)

	if claimed := r.Claimed(); len(claimed) > 0 {
		_, _ = fmt.Fprintln(out, pollTable(claimed))
	}

	_, _ = fmt.Fprintf(out, "%d items from %d feeds: %d accepted, %d upgraded, %d duplicate, %d errors, %d unmatched\n",
		len(r.Outcomes), r.Sources,
		r.Count(watch.Accepted), r.Count(watch.Upgrade), r.Count(watch.Duplicate),
		r.Count(watch.Errored), r.Count(watch.Unmatched))
}

func printFailedFeeds(out io.Writer, failed map[string]error) {
	names := make([]string, 0, len(failed))
	for name := range failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "feed %s failed: %v\n", name, failed[name])
	}
}

func reportToJSON(r *watch.Report) ReportJSON {
	out := ReportJSON{Sources: r.Sources, Outcomes: make([]OutcomeJSON, 0, len(r.Outcomes))}
	if len(r.Failed) > 0 {
		out.Failed = make(map[string]string, len(r.Failed))
		for name, err := range r.Failed {
			out.Failed[name] = err.Error()
		}
	}
	for _, o := range r.Outcomes {
		oj := OutcomeJSON{
			Feed:       o.Item.Feed,
			Title:      o.Item.Title,
			Decision:   o.Decision.String(),
			Series:     o.Series,
			Identifier: o.Identifier,
			Quality:    o.Quality,
			Previous:   o.Previous,
		}
		if o.Err != nil {
			oj.Error = o.Err.Error()
		}
		out.Outcomes = append(out.Outcomes, oj)
	}
	return out
}
