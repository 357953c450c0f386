// Package release decides whether a release title belongs to a tracked series
// and extracts its episode identifier and quality.
package release

import (
	"fmt"
	"strconv"
)

// Request is a single match attempt. Name and Text are required.
type Request struct {
	Name         string   // series name, e.g. "Lost"
	NamePatterns []string // optional; replaces the pattern derived from Name
	Text         string   // release title to classify
}

// Result is the outcome of a match. Only a Matcher builds valid results;
// the zero value is an invalid result of unknown quality.
type Result struct {
	valid      bool
	hasEpisode bool // season and episode are set only when an episode pattern matched
	season     int
	episode    int
	quality    string
	id         string
}

// Valid reports whether the title belongs to the series and carries an
// identifier.
func (r Result) Valid() bool {
	return r.valid
}

// Quality returns the best ranked quality label, or QualityUnknown.
func (r Result) Quality() string {
	if r.quality == "" {
		return QualityUnknown
	}
	return r.quality
}

// Season returns the season number and whether one was extracted.
func (r Result) Season() (int, bool) {
	return r.season, r.hasEpisode
}

// Episode returns the episode number and whether one was extracted.
func (r Result) Episode() (int, bool) {
	return r.episode, r.hasEpisode
}

// HasEpisode reports whether season and episode numbers were extracted.
func (r Result) HasEpisode() bool {
	return r.hasEpisode
}

// Identifier returns the episode identifier ("S2E5") or the fallback id
// ("2024-03-15"). It fails with a KindState error on an invalid result.
func (r Result) Identifier() (string, error) {
	if !r.valid || r.id == "" {
		return "", &Error{Kind: KindState, Field: "identifier"}
	}
	return r.id, nil
}

func (r Result) String() string {
	status := "INVALID"
	if r.valid {
		status = "OK"
	}
	season, episode := "none", "none"
	if r.hasEpisode {
		season, episode = strconv.Itoa(r.season), strconv.Itoa(r.episode)
	}
	return fmt.Sprintf("id: %s season: %s episode: %s quality: %s status: %s",
		orNone(r.id), season, episode, r.Quality(), status)
}

func episodeResult(season, episode int, quality string) Result {
	return Result{
		valid:      true,
		hasEpisode: true,
		season:     season,
		episode:    episode,
		quality:    quality,
		id:         "S" + strconv.Itoa(season) + "E" + strconv.Itoa(episode),
	}
}

func idResult(id, quality string) Result {
	return Result{valid: true, quality: quality, id: id}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
