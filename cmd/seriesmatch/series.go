package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/catalog"
	"github.com/vmunix/seriesmatch/pkg/release"
)

// SeriesJSON is the JSON-friendly representation of a tracked series.
type SeriesJSON struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Patterns []string `json:"patterns,omitempty"`
	AddedAt  string   `json:"added_at"`
}

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Manage tracked series",
}

var seriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Track a series",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeriesAdd,
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked series",
	Args:  cobra.NoArgs,
	RunE:  runSeriesList,
}

var seriesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Stop tracking a series and forget its sightings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeriesRemove,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesCmd.AddCommand(seriesAddCmd, seriesListCmd, seriesRemoveCmd)
	seriesAddCmd.Flags().StringArrayP("pattern", "p", nil, "Name pattern (repeatable)")
}

func runSeriesAdd(cmd *cobra.Command, args []string) error {
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	if err := release.ValidateNamePatterns(patterns); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	s := &catalog.Series{Name: args[0], Patterns: patterns}
	if err := store.AddSeries(s); err != nil {
		if errors.Is(err, catalog.ErrDuplicate) {
			return fmt.Errorf("series %q is already tracked", args[0])
		}
		return err
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), seriesToJSON(s))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %d)\n", s.Name, s.ID)
	return nil
}

func runSeriesList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	list, err := store.ListSeries()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		items := make([]SeriesJSON, len(list))
		for i, s := range list {
			items[i] = seriesToJSON(s)
		}
		return writeJSON(out, items)
	}

	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, "No series tracked")
		return nil
	}
	_, _ = fmt.Fprintln(out, seriesTable(list))
	return nil
}

func runSeriesRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	s, err := store.GetSeriesByName(args[0])
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("series %q is not tracked", args[0])
		}
		return err
	}
	if err := store.DeleteSeries(s.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", s.Name)
	return nil
}

func seriesToJSON(s *catalog.Series) SeriesJSON {
	return SeriesJSON{
		ID:       s.ID,
		Name:     s.Name,
		Patterns: s.Patterns,
		AddedAt:  s.AddedAt.Format(time.RFC3339),
	}
}
