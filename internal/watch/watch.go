// Package watch polls release feeds and records the episodes each tracked
// series has been seen with.
package watch

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/vmunix/seriesmatch/internal/watch Source,Store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vmunix/seriesmatch/internal/catalog"
	"github.com/vmunix/seriesmatch/pkg/feed"
	"github.com/vmunix/seriesmatch/pkg/release"
	"golang.org/x/sync/errgroup"
)

// ErrNoSources is returned by Poll when no feeds are configured.
var ErrNoSources = errors.New("no feed sources configured")

// Source provides the newest items of one feed.
type Source interface {
	Name() string
	Latest(ctx context.Context) ([]feed.Item, error)
}

// Store is the part of the catalog the watcher reads and writes.
type Store interface {
	ListSeries() ([]*catalog.Series, error)
	GetSighting(seriesID int64, identifier string) (*catalog.Sighting, error)
	AddSighting(s *catalog.Sighting) error
	UpdateSighting(s *catalog.Sighting) error
}

// Watcher matches feed items against tracked series.
type Watcher struct {
	matcher *release.Matcher
	store   Store
	sources []Source
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a watcher. A nil matcher uses the default pattern tables.
func New(matcher *release.Matcher, store Store, sources []Source, logger *slog.Logger) *Watcher {
	if matcher == nil {
		matcher = release.NewMatcher()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		matcher: matcher,
		store:   store,
		sources: sources,
		logger:  logger,
		now:     time.Now,
	}
}

// Poll fetches every source concurrently, then classifies each item in
// source order and records accepted and upgraded sightings. A failing source
// is reported but only fails the poll when every source failed.
func (w *Watcher) Poll(ctx context.Context) (*Report, error) {
	if len(w.sources) == 0 {
		return nil, ErrNoSources
	}

	series, err := w.store.ListSeries()
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	items := make([][]feed.Item, len(w.sources))
	errs := make([]error, len(w.sources))

	var g errgroup.Group
	for i, src := range w.sources {
		g.Go(func() error {
			got, err := src.Latest(ctx)
			if err != nil {
				w.logger.Warn("feed fetch failed", "feed", src.Name(), "error", err)
				errs[i] = err
				return nil
			}
			w.logger.Debug("feed fetched", "feed", src.Name(), "items", len(got))
			items[i] = got
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Sources: len(w.sources), Failed: make(map[string]error)}
	for i, src := range w.sources {
		if errs[i] != nil {
			report.Failed[src.Name()] = errs[i]
		}
	}
	if len(report.Failed) == len(w.sources) {
		return report, fmt.Errorf("all %d sources failed: %w", len(w.sources), errors.Join(errs...))
	}

	for i, src := range w.sources {
		for _, item := range items[i] {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if item.Feed == "" {
				item.Feed = src.Name()
			}
			out := w.decide(series, item, true)
			report.Outcomes = append(report.Outcomes, out)
		}
	}

	w.logger.Info("poll complete",
		"sources", report.Sources,
		"failed", len(report.Failed),
		"items", len(report.Outcomes),
		"accepted", report.Count(Accepted),
		"upgraded", report.Count(Upgrade))
	return report, nil
}

// Run polls every interval until ctx is canceled. Poll errors are logged and
// do not stop the loop, except ErrNoSources.
func (w *Watcher) Run(ctx context.Context, interval time.Duration, onReport func(*Report)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := w.Poll(ctx)
		switch {
		case errors.Is(err, ErrNoSources):
			return err
		case err != nil && ctx.Err() == nil:
			w.logger.Error("poll failed", "error", err)
		}
		if report != nil && onReport != nil {
			onReport(report)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Classify decides what Poll would do with title for a single series without
// recording anything. The outcome is Unmatched when title does not belong to
// the series.
func (w *Watcher) Classify(series *catalog.Series, title string) Outcome {
	return w.decide([]*catalog.Series{series}, feed.Item{Title: title}, false)
}

// decide finds the first series that claims item and compares the match with
// what was seen before.
func (w *Watcher) decide(series []*catalog.Series, item feed.Item, record bool) Outcome {
	out := Outcome{Item: item, Decision: Unmatched}

	// A bad title is the item's fault, not any series'.
	if err := checkTitle(item.Title); err != nil {
		w.logger.Warn("unusable item title", "feed", item.Feed, "guid", item.GUID, "error", err)
		out.Decision, out.Err = Errored, err
		return out
	}

	for _, s := range series {
		res, err := w.matcher.Match(release.Request{
			Name:         s.Name,
			NamePatterns: s.Patterns,
			Text:         item.Title,
		})
		if err != nil {
			w.logger.Warn("match failed", "series", s.Name, "title", item.Title, "error", err)
			out.Series, out.SeriesID = s.Name, s.ID
			out.Decision, out.Err = Errored, err
			return out
		}
		if !res.Valid() {
			continue
		}

		id, err := res.Identifier()
		if err != nil {
			out.Decision, out.Err = Errored, err
			return out
		}
		out.Series, out.SeriesID = s.Name, s.ID
		out.Identifier = id
		out.Quality = res.Quality()
		w.compare(&out, res, record)
		return out
	}

	return out
}

func checkTitle(title string) error {
	var reason string
	switch {
	case strings.TrimSpace(title) == "":
		reason = "empty title"
	case !utf8.ValidString(title):
		reason = "title is not valid UTF-8"
	default:
		return nil
	}
	return &release.Error{Kind: release.KindMalformedInput, Field: "title", Input: title, Err: errors.New(reason)}
}

// optional converts an accessor pair into a nullable column value.
func optional(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}

func (w *Watcher) compare(out *Outcome, res release.Result, record bool) {
	prev, err := w.store.GetSighting(out.SeriesID, out.Identifier)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		out.Decision = Accepted
		if record {
			sg := &catalog.Sighting{
				SeriesID:   out.SeriesID,
				Identifier: out.Identifier,
				Season:     optional(res.Season()),
				Episode:    optional(res.Episode()),
				Quality:    res.Quality(),
				Title:      out.Item.Title,
				GUID:       out.Item.GUID,
				Feed:       out.Item.Feed,
				SeenAt:     w.now(),
			}
			if err := w.store.AddSighting(sg); err != nil {
				out.Decision, out.Err = Errored, fmt.Errorf("record sighting: %w", err)
				return
			}
		}
		w.logger.Debug("accepted", "series", out.Series, "id", out.Identifier, "quality", out.Quality)

	case err != nil:
		out.Decision, out.Err = Errored, fmt.Errorf("lookup sighting: %w", err)

	case w.matcher.Patterns().Qualities.Better(res.Quality(), prev.Quality):
		out.Decision = Upgrade
		out.Previous = prev.Quality
		if record {
			prev.Quality = res.Quality()
			prev.Title = out.Item.Title
			prev.GUID = out.Item.GUID
			prev.Feed = out.Item.Feed
			prev.SeenAt = w.now()
			if err := w.store.UpdateSighting(prev); err != nil {
				out.Decision, out.Err = Errored, fmt.Errorf("upgrade sighting: %w", err)
				return
			}
		}
		w.logger.Debug("upgrade", "series", out.Series, "id", out.Identifier, "from", out.Previous, "to", out.Quality)

	default:
		out.Decision = Duplicate
		out.Previous = prev.Quality
	}
}
