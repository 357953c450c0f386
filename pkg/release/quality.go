package release

import "strings"

// QualityUnknown is the catch-all quality label. It is always the last entry
// of a QualityTable.
const QualityUnknown = "unknown"

// DefaultQualities lists the built-in quality labels, best first.
var DefaultQualities = []string{
	"1080p", "1080", "720p", "720", "hr", "dvd", "dvdrip", "hdtv", "pdtv", "dsr", "dsrip",
	QualityUnknown,
}

// QualityTable is an ordered list of quality labels, best first.
type QualityTable struct {
	labels []string
	ranks  map[string]int
}

// NewQualityTable builds a table from labels. Labels are lower-cased,
// duplicates keep their first position, and the catch-all is moved (or
// appended) to the end.
func NewQualityTable(labels ...string) QualityTable {
	t := QualityTable{ranks: make(map[string]int, len(labels)+1)}
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || l == QualityUnknown {
			continue
		}
		if _, ok := t.ranks[l]; ok {
			continue
		}
		t.ranks[l] = len(t.labels)
		t.labels = append(t.labels, l)
	}
	t.ranks[QualityUnknown] = len(t.labels)
	t.labels = append(t.labels, QualityUnknown)
	return t
}

// Rank returns the position of label in the table. Labels not in the table
// rank as the catch-all.
func (t QualityTable) Rank(label string) int {
	if r, ok := t.ranks[label]; ok {
		return r
	}
	return len(t.labels) - 1
}

// Contains reports whether label is a known quality token.
func (t QualityTable) Contains(label string) bool {
	_, ok := t.ranks[label]
	return ok
}

// Better reports whether quality a outranks quality b.
func (t QualityTable) Better(a, b string) bool {
	return t.Rank(a) < t.Rank(b)
}

// Labels returns a copy of the table, best first.
func (t QualityTable) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// best returns the highest ranked table entry among tokens, or the catch-all.
func (t QualityTable) best(tokens []string) string {
	best := QualityUnknown
	bestRank := t.Rank(QualityUnknown)
	for _, tok := range tokens {
		r, ok := t.ranks[tok]
		if !ok {
			continue
		}
		if r < bestRank {
			best, bestRank = tok, r
		}
	}
	return best
}
