// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/vmunix/seriesmatch/pkg/release"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if _, err := c.MatcherPatterns(); err != nil {
		errs = append(errs, "patterns: "+patternError(err))
	}

	for _, name := range c.FeedNames() {
		f := c.Feeds[name]
		if f.URL == "" {
			errs = append(errs, fmt.Sprintf("feeds.%s.url: required", name))
		} else if u, err := url.Parse(f.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("feeds.%s.url: invalid URL %q", name, f.URL))
		}
		if f.APIKey == "" {
			errs = append(errs, fmt.Sprintf("feeds.%s.api_key: required", name))
		}
		if f.Limit < 0 {
			errs = append(errs, fmt.Sprintf("feeds.%s.limit: must not be negative, got %d", name, f.Limit))
		}
	}

	seen := make(map[string]int)
	for i, s := range c.Series {
		key := release.NameKey(s.Name)
		if key == "" {
			errs = append(errs, fmt.Sprintf("series[%d].name: required", i))
			continue
		}
		if j, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("series[%d].name: %q duplicates series[%d]", i, s.Name, j))
		} else {
			seen[key] = i
		}
		if err := release.ValidateNamePatterns(s.Patterns); err != nil {
			errs = append(errs, fmt.Sprintf("series[%d].patterns: %s", i, patternError(err)))
		}
	}

	return errs
}

// MatcherPatterns compiles the pattern tables, falling back to the built-in
// defaults for empty lists.
func (c *Config) MatcherPatterns() (release.Patterns, error) {
	return release.CompilePatterns(c.Patterns.Episode, c.Patterns.ID, c.Patterns.Qualities)
}

func patternError(err error) string {
	var merr *release.Error
	if errors.As(err, &merr) && merr.Err != nil {
		return fmt.Sprintf("%s %q: %v", merr.Field, merr.Input, merr.Err)
	}
	return err.Error()
}
