package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/seriesmatch/internal/config"
	"github.com/vmunix/seriesmatch/pkg/release"
)

// MatchResult is the outcome of matching one title.
type MatchResult struct {
	Title  string
	Series string // empty when no series claimed the title
	Result release.Result
	Err    error
}

// MatchResultJSON is the JSON-friendly representation of MatchResult.
type MatchResultJSON struct {
	Title      string `json:"title"`
	Series     string `json:"series,omitempty"`
	Valid      bool   `json:"valid"`
	Identifier string `json:"id,omitempty"`
	Season     *int   `json:"season,omitempty"`
	Episode    *int   `json:"episode,omitempty"`
	Quality    string `json:"quality"`
	Error      string `json:"error,omitempty"`
}

func (r MatchResult) toJSON() MatchResultJSON {
	out := MatchResultJSON{
		Title:   r.Title,
		Series:  r.Series,
		Valid:   r.Result.Valid(),
		Season:  optionalInt(r.Result.Season()),
		Episode: optionalInt(r.Result.Episode()),
		Quality: r.Result.Quality(),
	}
	if id, err := r.Result.Identifier(); err == nil {
		out.Identifier = id
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

func optionalInt(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}

var matchCmd = &cobra.Command{
	Use:   "match [flags] <title>",
	Short: "Match release titles (local, no database needed)",
	Long: `Match a release title against a series name, or against every series
in the config when --name is not given.

Examples:
  seriesmatch match --name "Show Name" "Show.Name.S02E05.720p"
  seriesmatch match --name Lost --pattern '^lost\b' "LOST.S01E02.HDTV"
  seriesmatch match --file titles.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatchCmd,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringP("name", "n", "", "Series name to match against")
	matchCmd.Flags().StringArrayP("pattern", "p", nil, "Name pattern (repeatable); replaces the pattern derived from --name")
	matchCmd.Flags().StringP("file", "f", "", "Read titles from file (one per line)")
}

func runMatchCmd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	inputFile, _ := cmd.Flags().GetString("file")

	var titles []string
	switch {
	case inputFile != "":
		t, err := readTitleFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		titles = t
	case len(args) > 0:
		titles = []string{args[0]}
	default:
		return errors.New("usage: seriesmatch match <title> or seriesmatch match --file <filename>")
	}

	// The config is optional with --name; it only supplies pattern tables.
	var cfg *config.Config
	if path, err := resolveConfigPath(); err == nil {
		cfg, err = config.LoadWithoutValidation(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else if name == "" {
		return fmt.Errorf("no --name given and no config with series: %w", err)
	}

	opts := []release.Option{}
	level := "warn"
	if cfg != nil {
		p, err := cfg.MatcherPatterns()
		if err != nil {
			return err
		}
		opts = append(opts, release.WithPatterns(p))
		level = cfg.Log.Level
	}
	if logLevel != "" {
		level = logLevel
	}
	opts = append(opts, release.WithLogger(newLogger(cmd.ErrOrStderr(), level).With("component", "matcher")))
	m := release.NewMatcher(opts...)

	var series []config.SeriesConfig
	if name != "" {
		series = []config.SeriesConfig{{Name: name, Patterns: patterns}}
	} else {
		series = cfg.Series
		if len(series) == 0 {
			return errors.New("no series configured")
		}
	}

	results := matchTitles(m, series, titles)

	out := cmd.OutOrStdout()
	if jsonOutput {
		list := make([]MatchResultJSON, len(results))
		for i, r := range results {
			list[i] = r.toJSON()
		}
		if err := writeJSON(out, list); err != nil {
			return err
		}
	} else {
		for i, r := range results {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			printMatch(out, r)
		}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d titles failed", failed, len(results))
	}
	return nil
}

// matchTitles matches each title against series in order. The first series
// with a valid match claims the title.
func matchTitles(m *release.Matcher, series []config.SeriesConfig, titles []string) []MatchResult {
	results := make([]MatchResult, 0, len(titles))
	for _, title := range titles {
		r := MatchResult{Title: title}
		for _, s := range series {
			res, err := m.Match(release.Request{Name: s.Name, NamePatterns: s.Patterns, Text: title})
			if err != nil {
				r.Series, r.Err = s.Name, err
				break
			}
			if res.Valid() {
				r.Series, r.Result = s.Name, res
				break
			}
			r.Result = res
		}
		results = append(results, r)
	}
	return results
}

func printMatch(w io.Writer, r MatchResult) {
	_, _ = fmt.Fprintln(w, r.Title)
	if r.Err != nil {
		_, _ = fmt.Fprintf(w, "  error:  %v\n", r.Err)
		return
	}
	if r.Series != "" {
		_, _ = fmt.Fprintf(w, "  series: %s\n", r.Series)
	}
	_, _ = fmt.Fprintf(w, "  %s\n", r.Result)
}

// readTitleFile reads titles from a file, one per line. Blank lines and
// lines starting with # are skipped.
func readTitleFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var titles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			titles = append(titles, line)
		}
	}
	return titles, scanner.Err()
}
