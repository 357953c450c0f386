package release

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patrickmn/go-cache"
)

// DefaultEpisodePatterns extract (season, episode), tried in order.
var DefaultEpisodePatterns = []string{
	`s(\d+)e(\d+)`,
	`s(\d+)ep(\d+)`,
	`(\d+)x(\d+)`,
}

// DefaultIDPatterns extract a fallback identifier, most specific first.
// Dates go before bare numbers so "2024.03.15" is not read as "202".
var DefaultIDPatterns = []string{
	`(\d\d\d\d).(\d+).(\d+)`,
	`(\d+).(\d+).(\d\d\d\d)`,
	`(\d\d\d\d)x(\d+)\.(\d+)`,
	`(\d\d\d)`,
	`(\d\d)`,
	`(\d)`,
}

// Patterns holds the compiled pattern tables used by a Matcher.
// A Patterns value is read-only once built.
type Patterns struct {
	Episode   []*regexp.Regexp
	ID        []*regexp.Regexp
	Qualities QualityTable
}

var defaultPatterns = mustCompilePatterns(DefaultEpisodePatterns, DefaultIDPatterns, DefaultQualities)

// DefaultPatterns returns the built-in pattern tables.
func DefaultPatterns() Patterns {
	return defaultPatterns
}

// CompilePatterns builds pattern tables. Empty slices fall back to the
// defaults. Episode patterns need at least two capture groups and id
// patterns between one and three.
func CompilePatterns(episode, id, qualities []string) (Patterns, error) {
	if len(episode) == 0 {
		episode = DefaultEpisodePatterns
	}
	if len(id) == 0 {
		id = DefaultIDPatterns
	}
	if len(qualities) == 0 {
		qualities = DefaultQualities
	}

	var p Patterns
	for _, expr := range episode {
		re, err := compileFold(expr)
		if err != nil {
			return Patterns{}, configError("episode_patterns", expr, err)
		}
		if re.NumSubexp() < 2 {
			return Patterns{}, configError("episode_patterns", expr,
				fmt.Errorf("need 2 capture groups, got %d", re.NumSubexp()))
		}
		p.Episode = append(p.Episode, re)
	}
	for _, expr := range id {
		re, err := compileFold(expr)
		if err != nil {
			return Patterns{}, configError("id_patterns", expr, err)
		}
		if n := re.NumSubexp(); n < 1 || n > 3 {
			return Patterns{}, configError("id_patterns", expr,
				fmt.Errorf("need 1 to 3 capture groups, got %d", n))
		}
		p.ID = append(p.ID, re)
	}
	p.Qualities = NewQualityTable(qualities...)
	return p, nil
}

func mustCompilePatterns(episode, id, qualities []string) Patterns {
	p, err := CompilePatterns(episode, id, qualities)
	if err != nil {
		panic(err)
	}
	return p
}

// compileFold compiles expr case-insensitively, with \d and \D widened to
// decimal digits of any script.
func compileFold(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)` + unicodeDigits(expr))
}

func unicodeDigits(expr string) string {
	if !strings.Contains(expr, `\d`) && !strings.Contains(expr, `\D`) {
		return expr
	}
	var b strings.Builder
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c != '\\' || i+1 == len(expr) {
			b.WriteByte(c)
			continue
		}
		i++
		switch expr[i] {
		case 'd':
			b.WriteString(`\p{Nd}`)
		case 'D':
			b.WriteString(`\P{Nd}`)
		default:
			b.WriteByte('\\')
			b.WriteByte(expr[i])
		}
	}
	return b.String()
}

// nameCache holds compiled name patterns keyed by source text. Entries never
// expire, so no janitor goroutine is started.
var nameCache = newNameCache()

func newNameCache() *cache.Cache {
	return cache.New(cache.NoExpiration, 0)
}

// compileName returns the cached compiled form of a name pattern.
func compileName(expr string) (*regexp.Regexp, error) {
	if v, ok := nameCache.Get(expr); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := compileFold(expr)
	if err != nil {
		return nil, err
	}
	nameCache.Set(expr, re, cache.NoExpiration)
	return re, nil
}

// ValidateNamePatterns reports the first name pattern that does not compile.
func ValidateNamePatterns(patterns []string) error {
	for _, expr := range patterns {
		if _, err := compileName(expr); err != nil {
			return configError("name_patterns", expr, err)
		}
	}
	return nil
}
