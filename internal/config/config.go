// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig             `toml:"log"`
	Database DatabaseConfig        `toml:"database"`
	Patterns PatternsConfig        `toml:"patterns"`
	Feeds    map[string]FeedConfig `toml:"feeds"`
	Series   []SeriesConfig        `toml:"series"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PatternsConfig overrides the matcher's built-in tables. Empty lists keep
// the defaults.
type PatternsConfig struct {
	Episode   []string `toml:"episode"`
	ID        []string `toml:"id"`
	Qualities []string `toml:"qualities"`
}

type FeedConfig struct {
	URL        string `toml:"url"`
	APIKey     string `toml:"api_key"`
	Categories []int  `toml:"categories"`
	Limit      int    `toml:"limit"`
}

// SeriesConfig is a tracked series. Patterns, when set, replace the name
// pattern derived from Name.
type SeriesConfig struct {
	Name     string   `toml:"name"`
	Patterns []string `toml:"patterns"`
}

// Default TV categories requested from feeds that do not set their own.
var defaultCategories = []int{5000, 5030, 5040}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and unresolved variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/seriesmatch.db"
	}
	for name, f := range c.Feeds {
		if len(f.Categories) == 0 {
			f.Categories = defaultCategories
		}
		if f.Limit == 0 {
			f.Limit = 100
		}
		c.Feeds[name] = f
	}
}

// FeedNames returns the configured feed names in sorted order.
func (c *Config) FeedNames() []string {
	names := make([]string, 0, len(c.Feeds))
	for name := range c.Feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} with environment variable values.
// ${VAR:-default} uses default when VAR is unset or empty. Unresolved
// variables are left unchanged and returned in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name := groups[1]
		hasDefault := len(match) > len(name)+3

		if value, ok := os.LookupEnv(name); ok && (value != "" || !hasDefault) {
			return value
		}
		if hasDefault {
			return groups[2]
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
