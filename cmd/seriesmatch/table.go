package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/vmunix/seriesmatch/internal/catalog"
	"github.com/vmunix/seriesmatch/internal/watch"
)

// Release titles can run long; wrap them instead of widening the table.
const titleWidth = 60

func newTable(header table.Row, configs ...table.ColumnConfig) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(header)
	for i := range configs {
		configs[i].AlignHeader = text.AlignLeft
	}
	tw.SetColumnConfigs(configs)
	return tw
}

func seriesTable(list []*catalog.Series) string {
	tw := newTable(
		table.Row{"ID", "Name", "Patterns", "Added"},
		table.ColumnConfig{Name: "ID", Align: text.AlignRight},
	)
	for _, s := range list {
		patterns := "-"
		if len(s.Patterns) > 0 {
			patterns = strings.Join(s.Patterns, " | ")
		}
		tw.AppendRow(table.Row{s.ID, s.Name, patterns, s.AddedAt.Format("2006-01-02")})
	}
	return tw.Render()
}

func sightingTable(list []*catalog.Sighting, names map[int64]string) string {
	tw := newTable(
		table.Row{"Seen", "Series", "ID", "Quality", "Feed", "Title"},
		table.ColumnConfig{Name: "Title", WidthMax: titleWidth},
	)
	for _, sg := range list {
		tw.AppendRow(table.Row{
			sg.SeenAt.Local().Format("2006-01-02 15:04"),
			names[sg.SeriesID],
			sg.Identifier,
			sg.Quality,
			sg.Feed,
			sg.Title,
		})
	}
	return tw.Render()
}

// pollTable lists the outcomes a poll acted on. Upgrades show the quality
// they replaced and errors carry their cause.
func pollTable(outcomes []watch.Outcome) string {
	tw := newTable(table.Row{"Feed", "Series", "ID", "Quality", "Decision"})
	for _, o := range outcomes {
		quality := o.Quality
		if o.Previous != "" {
			quality = fmt.Sprintf("%s (had %s)", o.Quality, o.Previous)
		}
		tw.AppendRow(table.Row{o.Item.Feed, o.Series, o.Identifier, quality, decisionText(o)})
	}
	return tw.Render()
}

// searchTable lists what a poll would do with each result, title first.
func searchTable(outcomes []watch.Outcome) string {
	tw := newTable(
		table.Row{"Feed", "Title", "ID", "Quality", "Would"},
		table.ColumnConfig{Name: "Title", WidthMax: titleWidth},
	)
	counts := make(map[watch.Decision]int)
	for _, o := range outcomes {
		counts[o.Decision]++
		tw.AppendRow(table.Row{o.Item.Feed, o.Item.Title, o.Identifier, o.Quality, decisionText(o)})
	}
	tw.AppendFooter(table.Row{"", strconv.Itoa(len(outcomes)) + " results", "", "",
		fmt.Sprintf("%d new", counts[watch.Accepted]+counts[watch.Upgrade])})
	return tw.Render()
}

func decisionText(o watch.Outcome) string {
	if o.Err != nil {
		return fmt.Sprintf("%s: %v", o.Decision, o.Err)
	}
	return o.Decision.String()
}
