package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/seriesmatch/internal/config"
	"github.com/vmunix/seriesmatch/pkg/release"
)

func TestReadTitleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	content := `Lost.S01E02.720p
# comment

  Daily.Show.2024.03.15.HDTV
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	titles, err := readTitleFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lost.S01E02.720p", "Daily.Show.2024.03.15.HDTV"}, titles)

	_, err = readTitleFile("/nonexistent/titles.txt")
	assert.Error(t, err)
}

func TestMatchTitles(t *testing.T) {
	series := []config.SeriesConfig{
		{Name: "Lost"},
		{Name: "Daily Show"},
	}
	results := matchTitles(release.NewMatcher(), series, []string{
		"Daily.Show.2024.03.15.HDTV",
		"Lost.S01E02.720p",
		"Fringe.S01E01",
		"Lost.S99999999999999999999E01",
	})
	require.Len(t, results, 4)

	assert.Equal(t, "Daily Show", results[0].Series)
	id, err := results[0].Result.Identifier()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", id)

	assert.Equal(t, "Lost", results[1].Series)
	assert.Equal(t, "720p", results[1].Result.Quality())

	assert.Empty(t, results[2].Series)
	assert.False(t, results[2].Result.Valid())
	assert.Equal(t, release.QualityUnknown, results[2].Result.Quality())

	assert.ErrorIs(t, results[3].Err, release.ErrMalformedInput)
}

func TestMatchResult_ToJSON(t *testing.T) {
	results := matchTitles(release.NewMatcher(), []config.SeriesConfig{{Name: "Lost"}},
		[]string{"Lost.S01E02.720p", "Other.S01E01"})

	got := results[0].toJSON()
	assert.Equal(t, "S1E2", got.Identifier)
	require.NotNil(t, got.Season)
	assert.Equal(t, 1, *got.Season)
	assert.True(t, got.Valid)

	got = results[1].toJSON()
	assert.False(t, got.Valid)
	assert.Empty(t, got.Identifier)
	assert.Nil(t, got.Season)
}

func TestMatchCmd_Name(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(t, "match", "--name", "Show Name", "Show.Name.S02E05.720p")
	require.NoError(t, err)
	assert.Contains(t, out, "series: Show Name")
	assert.Contains(t, out, "id: S2E5 season: 2 episode: 5 quality: 720p status: OK")
}

func TestMatchCmd_Pattern(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(t, "match", "--name", "Show", "--pattern", "showname", "--json", "The.ShowName.S01E03")
	require.NoError(t, err)

	var got []MatchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.True(t, got[0].Valid)
	assert.Equal(t, "S1E3", got[0].Identifier)
}

func TestMatchCmd_ConfigSeries(t *testing.T) {
	path := writeTestConfig(t, "", "Lost", "Fringe")

	titles := filepath.Join(t.TempDir(), "titles.txt")
	require.NoError(t, os.WriteFile(titles, []byte("Fringe.S02E01.1080p\nLost.2x03.dvdrip\n"), 0644))

	out, err := executeCommand(t, "match", "--config", path, "--file", titles, "--json")
	require.NoError(t, err)

	var got []MatchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Fringe", got[0].Series)
	assert.Equal(t, "1080p", got[0].Quality)
	assert.Equal(t, "Lost", got[1].Series)
	assert.Equal(t, "S2E3", got[1].Identifier)
}

func TestMatchCmd_Errors(t *testing.T) {
	isolateConfig(t)

	_, err := executeCommand(t, "match", "--name", "Lost")
	assert.ErrorContains(t, err, "usage")

	_, err = executeCommand(t, "match", "Lost.S01E01")
	assert.ErrorContains(t, err, "no --name given")

	_, err = executeCommand(t, "match", "--name", "Lost", "Lost.S99999999999999999999E01")
	assert.ErrorContains(t, err, "1 of 1 titles failed")
}
