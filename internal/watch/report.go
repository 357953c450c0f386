package watch

import (
	"github.com/vmunix/seriesmatch/pkg/feed"
)

// Decision is what a poll did with one feed item.
type Decision int

const (
	// Unmatched items belong to no tracked series.
	Unmatched Decision = iota
	// Accepted items are the first sighting of an episode.
	Accepted
	// Upgrade items replace an earlier sighting of worse quality.
	Upgrade
	// Duplicate items are no better than what was already seen.
	Duplicate
	// Errored items could not be matched or recorded.
	Errored
)

func (d Decision) String() string {
	switch d {
	case Unmatched:
		return "unmatched"
	case Accepted:
		return "accepted"
	case Upgrade:
		return "upgrade"
	case Duplicate:
		return "duplicate"
	case Errored:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the decision for one feed item.
type Outcome struct {
	Item       feed.Item
	Decision   Decision
	SeriesID   int64
	Series     string
	Identifier string
	Quality    string
	Previous   string // quality already recorded, for Upgrade and Duplicate
	Err        error
}

// Report summarizes a poll.
type Report struct {
	Sources  int
	Failed   map[string]error // by feed name
	Outcomes []Outcome
}

// Count returns the number of outcomes with decision d.
func (r *Report) Count(d Decision) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Decision == d {
			n++
		}
	}
	return n
}

// Claimed returns the outcomes that belong to a tracked series.
func (r *Report) Claimed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Decision != Unmatched {
			out = append(out, o)
		}
	}
	return out
}
