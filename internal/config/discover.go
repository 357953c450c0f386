package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that overrides discovery. It may
// point at a file or at a directory holding config.toml.
const EnvConfig = "SERIESMATCH_CONFIG"

const fileName = "config.toml"

// ErrNotFound is returned by Discover when no candidate exists.
var ErrNotFound = errors.New("config not found")

// Candidate is one place Discover looks for a config file.
type Candidate struct {
	Path   string
	Source string // "env", "cwd", "user" or "system"
}

// DefaultPath returns the per-user config path under $XDG_CONFIG_HOME, or
// ~/.config when it is unset.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fileName
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "seriesmatch", fileName)
}

// Candidates lists the discovery order without touching the filesystem.
// When EnvConfig is set it is the only candidate.
func Candidates() []Candidate {
	if env := os.Getenv(EnvConfig); env != "" {
		return []Candidate{{Path: env, Source: "env"}}
	}
	return []Candidate{
		{Path: fileName, Source: "cwd"},
		{Path: "seriesmatch.toml", Source: "cwd"},
		{Path: DefaultPath(), Source: "user"},
		{Path: filepath.Join("/etc/seriesmatch", fileName), Source: "system"},
	}
}

// Discover returns the first existing candidate. Each lookup is traced at
// debug level so a surprising pick can be explained.
func Discover(logger *slog.Logger) (string, error) {
	candidates := Candidates()
	checked := make([]string, 0, len(candidates))

	for _, c := range candidates {
		path, err := resolve(c.Path)
		if err == nil {
			logger.Debug("using config", "path", path, "source", c.Source)
			return path, nil
		}
		logger.Debug("config candidate skipped", "path", c.Path, "source", c.Source, "error", err)
		if c.Source == "env" {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, c.Path, err)
		}
		checked = append(checked, c.Path)
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(checked, ", "))
}

// resolve accepts a config file, or a directory containing one.
func resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	inner := filepath.Join(path, fileName)
	if _, err := os.Stat(inner); err != nil {
		return "", err
	}
	return inner, nil
}
