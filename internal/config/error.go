// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// Error aggregates everything wrong with a config file so that one run of
// "seriesmatch config test" reports all of it.
type Error struct {
	Path    string   // config file path, may be empty
	Missing []string // unresolved ${VAR} references
	Errors  []string // validation messages, "field: problem"
}

func (e *Error) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		if len(e.Missing) > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("validation failed:")
		for _, msg := range e.Errors {
			b.WriteString("\n  - " + msg)
		}
	}
	return b.String()
}

// HasErrors reports whether any variable is missing or any check failed.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
