package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs the root command with args and returns its output.
// Flag values left over from earlier runs are reset first.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, io.Discard, args...)
}

// executeCommandStderr is executeCommand that also returns stderr.
func executeCommandStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stderr bytes.Buffer
	out, err := execute(t, &stderr, args...)
	return out, stderr.String(), err
}

func execute(t *testing.T, stderr io.Writer, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	configPath = ""
	jsonOutput = false
	logLevel = ""
	t.Cleanup(func() {
		configPath = ""
		jsonOutput = false
		logLevel = ""
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// isolateConfig points config discovery at an empty directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SERIESMATCH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

// writeTestConfig writes a config tracking series, with its database in a
// temp dir and an optional feed.
func writeTestConfig(t *testing.T, feedURL string, series ...string) string {
	t.Helper()
	dir := t.TempDir()

	content := fmt.Sprintf("[log]\nlevel = \"error\"\n\n[database]\npath = %q\n", filepath.Join(dir, "data", "test.db"))
	if feedURL != "" {
		content += fmt.Sprintf("\n[feeds.test]\nurl = %q\napi_key = \"test-key\"\n", feedURL)
	}
	for _, s := range series {
		content += fmt.Sprintf("\n[[series]]\nname = %q\n", s)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
