package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/catalog"
)

// SightingJSON is the JSON-friendly representation of a sighting.
type SightingJSON struct {
	Series     string `json:"series"`
	Identifier string `json:"id"`
	Season     *int   `json:"season,omitempty"`
	Episode    *int   `json:"episode,omitempty"`
	Quality    string `json:"quality"`
	Title      string `json:"title"`
	Feed       string `json:"feed,omitempty"`
	SeenAt     string `json:"seen_at"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded sightings, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("series", "s", "", "Only show this series")
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of sightings (0 for all)")
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	seriesName, _ := cmd.Flags().GetString("series")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	filter := catalog.SightingFilter{Limit: limit}
	if seriesName != "" {
		s, err := store.GetSeriesByName(seriesName)
		if err != nil {
			return fmt.Errorf("series %q: %w", seriesName, err)
		}
		filter.SeriesID = &s.ID
	}

	sightings, total, err := store.ListSightings(filter)
	if err != nil {
		return err
	}
	names, err := seriesNames(store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		items := make([]SightingJSON, len(sightings))
		for i, sg := range sightings {
			items[i] = SightingJSON{
				Series:     names[sg.SeriesID],
				Identifier: sg.Identifier,
				Season:     sg.Season,
				Episode:    sg.Episode,
				Quality:    sg.Quality,
				Title:      sg.Title,
				Feed:       sg.Feed,
				SeenAt:     sg.SeenAt.Format(time.RFC3339),
			}
		}
		return writeJSON(out, items)
	}

	if len(sightings) == 0 {
		_, _ = fmt.Fprintln(out, "No sightings recorded")
		return nil
	}

	_, _ = fmt.Fprintln(out, sightingTable(sightings, names))
	_, _ = fmt.Fprintf(out, "Showing %d of %d\n", len(sightings), total)
	return nil
}

func seriesNames(store *catalog.Store) (map[int64]string, error) {
	list, err := store.ListSeries()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(list))
	for _, s := range list {
		names[s.ID] = s.Name
	}
	return names, nil
}
