// Package catalog persists tracked series and the episodes already seen for them.
package catalog

import (
	"time"
)

// Series is a tracked series.
type Series struct {
	ID       int64
	Name     string
	Key      string   // case-folded name, unique
	Patterns []string // optional name patterns
	AddedAt  time.Time
}

// Sighting records the best release seen so far for one episode (or fallback
// id) of a series.
type Sighting struct {
	ID         int64
	SeriesID   int64
	Identifier string // "S2E5" or "2024-03-15"
	Season     *int
	Episode    *int
	Quality    string
	Title      string
	GUID       string
	Feed       string
	SeenAt     time.Time
}

// SightingFilter specifies criteria for listing sightings.
type SightingFilter struct {
	SeriesID *int64
	Feed     *string
	Limit    int // 0 = no limit
	Offset   int
}
