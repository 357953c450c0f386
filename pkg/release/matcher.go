package release

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher classifies release titles against series names. A Matcher holds
// only read-only pattern tables and is safe for concurrent use.
type Matcher struct {
	patterns Patterns
	log      *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithPatterns replaces the default pattern tables.
func WithPatterns(p Patterns) Option {
	return func(m *Matcher) { m.patterns = p }
}

// WithLogger sets the logger used for debug traces of match attempts.
func WithLogger(log *slog.Logger) Option {
	return func(m *Matcher) {
		if log != nil {
			m.log = log
		}
	}
}

// NewMatcher creates a Matcher using the default pattern tables unless
// overridden.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		patterns: DefaultPatterns(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Patterns returns the tables the matcher uses.
func (m *Matcher) Patterns() Patterns {
	return m.patterns
}

// Match runs the pipeline normalize, match name, rank quality, extract
// episode or id. A title that does not belong to the series, or that carries
// no usable identifier, yields an invalid Result and a nil error.
func (m *Matcher) Match(req Request) (Result, error) {
	res := Result{quality: QualityUnknown}

	if err := checkText("name", req.Name); err != nil {
		return res, err
	}
	if err := checkText("text", req.Text); err != nil {
		return res, err
	}

	ok, err := m.matchName(req)
	if err != nil {
		return res, err
	}
	if !ok {
		m.log.Debug("name does not match", "name", req.Name, "text", req.Text)
		return res, nil
	}

	// The matched name is not cut from the text, so digits or quality words
	// inside the name itself are still seen below.
	quality := m.patterns.Qualities.best(Tokens(Normalize(req.Text)))

	for _, re := range m.patterns.Episode {
		groups := re.FindStringSubmatch(req.Text)
		if groups == nil {
			continue
		}
		season, err := parseGroup(re.String(), groups[1])
		if err != nil {
			return res, err
		}
		episode, err := parseGroup(re.String(), groups[2])
		if err != nil {
			return res, err
		}
		m.log.Debug("found episode", "name", req.Name, "pattern", re.String(), "season", season, "episode", episode)
		return episodeResult(season, episode, quality), nil
	}

	// Id patterns are broad, so they only run when no episode matched.
	for _, re := range m.patterns.ID {
		groups := re.FindStringSubmatch(req.Text)
		if groups == nil {
			continue
		}
		parts := make([]string, len(groups)-1)
		for i, g := range groups[1:] {
			parts[i] = asciiDigits(g)
		}
		m.log.Debug("found id", "name", req.Name, "pattern", re.String())
		return idResult(strings.Join(parts, "-"), quality), nil
	}

	m.log.Debug("unable to find any id", "name", req.Name, "text", req.Text)
	res.quality = quality
	return res, nil
}

func (m *Matcher) matchName(req Request) (bool, error) {
	if len(req.NamePatterns) > 0 {
		for _, expr := range req.NamePatterns {
			re, err := compileName(expr)
			if err != nil {
				return false, configError("name_patterns", expr, err)
			}
			if re.MatchString(req.Text) {
				return true, nil
			}
		}
		return false, nil
	}

	if NameKey(req.Name) == "" {
		return false, configError("name", req.Name, errors.New("no letters or digits"))
	}
	re, err := compileName(namePattern(req.Name))
	if err != nil {
		return false, configError("name", req.Name, err)
	}
	return re.MatchString(req.Text), nil
}

func checkText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return configError(field, s, errors.New("required"))
	}
	if !utf8.ValidString(s) {
		return configError(field, s, errors.New("not valid UTF-8 text"))
	}
	return nil
}

func parseGroup(pattern, s string) (int, error) {
	n, err := strconv.Atoi(asciiDigits(s))
	if err != nil {
		return 0, &Error{Kind: KindMalformedInput, Field: pattern, Input: s, Err: err}
	}
	return n, nil
}

// asciiDigits rewrites decimal digits from any script ("０７", "٠٧") as
// ASCII. Other runes are kept.
func asciiDigits(s string) string {
	ascii := true
	for _, r := range s {
		if r >= utf8.RuneSelf && unicode.IsDigit(r) {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf || !unicode.IsDigit(r) {
			return r
		}
		return '0' + digitValue(r)
	}, s)
}

// digitValue returns the value of a decimal digit rune. Unicode lays out
// every Nd script as a run of ten starting at zero, and some runs are
// adjacent, so the value is the run position modulo ten.
func digitValue(r rune) rune {
	var n rune
	for unicode.IsDigit(r - n - 1) {
		n++
	}
	return n % 10
}
