package release

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatch(t *testing.T, m *Matcher, req Request) Result {
	t.Helper()
	res, err := m.Match(req)
	require.NoError(t, err)
	return res
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name   string
		req    Request
		want   Result
		wantID string
	}{
		{
			name:   "episode with quality",
			req:    Request{Name: "Show Name", Text: "Show.Name.S02E05.720p"},
			want:   episodeResult(2, 5, "720p"),
			wantID: "S2E5",
		},
		{
			name:   "lower case sxxepxx",
			req:    Request{Name: "Show", Text: "show s3ep12 hdtv"},
			want:   episodeResult(3, 12, "hdtv"),
			wantID: "S3E12",
		},
		{
			name:   "season x episode",
			req:    Request{Name: "Show", Text: "Show - 4x07 - Title [dvdrip]"},
			want:   episodeResult(4, 7, "dvdrip"),
			wantID: "S4E7",
		},
		{
			name:   "date id",
			req:    Request{Name: "Daily Show", Text: "Daily.Show.2024.03.15.HDTV"},
			want:   idResult("2024-03-15", "hdtv"),
			wantID: "2024-03-15",
		},
		{
			name:   "trailing year id",
			req:    Request{Name: "Daily Show", Text: "Daily_Show_15_03_2024"},
			want:   idResult("15-03-2024", QualityUnknown),
			wantID: "15-03-2024",
		},
		{
			name:   "three digit id",
			req:    Request{Name: "Anime", Text: "Anime - 123 [pdtv]"},
			want:   idResult("123", "pdtv"),
			wantID: "123",
		},
		{
			name:   "single digit id",
			req:    Request{Name: "Anime", Text: "Anime part 7"},
			want:   idResult("7", QualityUnknown),
			wantID: "7",
		},
		{
			name:   "full-width episode digits",
			req:    Request{Name: "Show", Text: "Show.S０１E０２.720p"},
			want:   episodeResult(1, 2, "720p"),
			wantID: "S1E2",
		},
		{
			name:   "arabic-indic date id",
			req:    Request{Name: "Daily Show", Text: "Daily.Show.٢٠٢٤.٠٣.١٥"},
			want:   idResult("2024-03-15", QualityUnknown),
			wantID: "2024-03-15",
		},
		{
			name: "no id",
			req:  Request{Name: "Show", Text: "Show.Special.HDTV"},
			want: Result{quality: "hdtv"},
		},
		{
			name: "name rejected keeps defaults",
			req:  Request{Name: "Other", Text: "Show.S01E01.1080p"},
			want: Result{quality: QualityUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustMatch(t, m, tt.req)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(Result{})); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.req.Text, diff)
			}
			if tt.want.Valid() {
				id, err := got.Identifier()
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestMatcher_NamePrefixGuard(t *testing.T) {
	m := NewMatcher()

	res := mustMatch(t, m, Request{Name: "lost", Text: "lostprophets s01e01"})
	assert.False(t, res.Valid(), "name must not match a longer word")

	res = mustMatch(t, m, Request{Name: "lost", Text: "Lost.S01E02.720p"})
	assert.True(t, res.Valid())
	id, err := res.Identifier()
	require.NoError(t, err)
	assert.Equal(t, "S1E2", id)
	assert.Equal(t, "720p", res.Quality())
}

func TestMatcher_NameSeparators(t *testing.T) {
	m := NewMatcher()

	for _, text := range []string{
		"Show.Name.S01E01",
		"Show_Name_S01E01",
		"-- Show Name - S01E01",
		"Show-Name.S01E01",
		"ShowName.S01E01",
		"SHOW.NAME.S01E01",
	} {
		t.Run(text, func(t *testing.T) {
			res := mustMatch(t, m, Request{Name: "Show Name", Text: text})
			assert.True(t, res.Valid())
		})
	}

	res := mustMatch(t, m, Request{Name: "Show Name", Text: "The.Show.Name.S01E01"})
	assert.False(t, res.Valid(), "name must start the text")

	res = mustMatch(t, m, Request{Name: "Show Name", Text: "Show.Name"})
	assert.False(t, res.Valid(), "name must be followed by a separator")
}

func TestMatcher_EpisodeBeatsID(t *testing.T) {
	m := NewMatcher()

	res := mustMatch(t, m, Request{Name: "Show Name", Text: "Show.Name.S02E05.720p"})
	require.True(t, res.Valid())
	require.True(t, res.HasEpisode())
	season, ok := res.Season()
	require.True(t, ok)
	assert.Equal(t, 2, season)
	episode, ok := res.Episode()
	require.True(t, ok)
	assert.Equal(t, 5, episode)
	id, _ := res.Identifier()
	assert.Equal(t, "S2E5", id)
	assert.Equal(t, "720p", res.Quality())
}

func TestMatcher_QualityRanking(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		text string
		want string
	}{
		{"Show.hdtv.1080p", "1080p"},
		{"Show.1080p.hdtv", "1080p"},
		{"Show.720.1080.dvd", "1080"},
		{"Show.dsrip.dsr.dsrip", "dsr"},
		{"Show.HR.HDTV", "hr"},
		{"Show.S01E01.WEB", QualityUnknown},
		{"Show.S01E01.x720p", QualityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := mustMatch(t, m, Request{Name: "Show", Text: tt.text})
			assert.Equal(t, tt.want, res.Quality())
		})
	}
}

func TestMatcher_IDFallback(t *testing.T) {
	m := NewMatcher()

	res := mustMatch(t, m, Request{Name: "Daily Show", Text: "Daily.Show.2024.03.15.HDTV"})
	require.True(t, res.Valid())
	_, ok := res.Season()
	assert.False(t, ok)
	_, ok = res.Episode()
	assert.False(t, ok)
	assert.False(t, res.HasEpisode())
	id, err := res.Identifier()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", id)
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher()

	res := mustMatch(t, m, Request{Name: "Unrelated Show", Text: "Some.Other.Movie.2019.1080p"})
	assert.False(t, res.Valid())
	assert.Equal(t, QualityUnknown, res.Quality())

	_, err := res.Identifier()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrState))

	var merr *Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, KindState, merr.Kind)
}

func TestMatcher_CustomNamePatterns(t *testing.T) {
	m := NewMatcher()

	// The derived pattern is anchored at the start and would reject this.
	res := mustMatch(t, m, Request{
		Name:         "Show Name",
		NamePatterns: []string{"showname"},
		Text:         "The.ShowName.S01E03",
	})
	require.True(t, res.Valid())
	id, _ := res.Identifier()
	assert.Equal(t, "S1E3", id)

	// The derived pattern would accept this, but it is never tried.
	res = mustMatch(t, m, Request{
		Name:         "Show",
		NamePatterns: []string{"other", `^nothing\b`},
		Text:         "Show.S01E01",
	})
	assert.False(t, res.Valid())

	// Any pattern in the list is enough.
	res = mustMatch(t, m, Request{
		Name:         "Show",
		NamePatterns: []string{"nope", `sh.w\.s01`},
		Text:         "SHOW.S01E01",
	})
	assert.True(t, res.Valid())
}

func TestMatcher_NameSpanNotExcluded(t *testing.T) {
	m := NewMatcher()

	// Digits inside the name are still picked up by the id patterns.
	res := mustMatch(t, m, Request{Name: "Numb3rs", Text: "Numb3rs.Pilot"})
	require.True(t, res.Valid())
	id, _ := res.Identifier()
	assert.Equal(t, "3", id)

	// Quality words inside the name are ranked as well.
	res = mustMatch(t, m, Request{Name: "DVD Club", Text: "DVD.Club.S01E01"})
	assert.Equal(t, "dvd", res.Quality())
}

func TestMatcher_Preconditions(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"empty name", Request{Text: "Show.S01E01"}, "name"},
		{"blank name", Request{Name: "  ", Text: "Show.S01E01"}, "name"},
		{"empty text", Request{Name: "Show"}, "text"},
		{"invalid utf8 text", Request{Name: "Show", Text: "Show.\xff\xfe"}, "text"},
		{"punctuation name", Request{Name: "!!!", Text: "Show.S01E01"}, "name"},
		{"bad name pattern", Request{Name: "Show", NamePatterns: []string{"(unclosed"}, Text: "Show"}, "name_patterns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Match(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.NotErrorIs(t, err, ErrState)

			var merr *Error
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.field, merr.Field)
			assert.False(t, res.Valid())
		})
	}
}

func TestMatcher_MalformedEpisodeNumbers(t *testing.T) {
	p, err := CompilePatterns([]string{`s(\d+)e(\w+)`}, nil, nil)
	require.NoError(t, err)
	m := NewMatcher(WithPatterns(p))

	res, err := m.Match(Request{Name: "Show", Text: "Show.S01Exx.2024"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.False(t, res.Valid(), "must not fall through to id patterns")

	var merr *Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "xx", merr.Input)

	_, err = NewMatcher().Match(Request{Name: "Show", Text: "Show.S99999999999999999999E01"})
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher()
	req := Request{Name: "Show Name", Text: "Show.Name.S02E05.720p.HDTV"}

	first := mustMatch(t, m, req)
	for range 10 {
		got := mustMatch(t, m, req)
		if diff := cmp.Diff(first, got, cmp.AllowUnexported(Result{})); diff != "" {
			t.Fatalf("repeated Match differs (-first +got):\n%s", diff)
		}
	}
}

func TestMatcher_Concurrent(t *testing.T) {
	m := NewMatcher()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 64 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("Show.S01E%02d.720p", i)
			res, err := m.Match(Request{Name: "Show", NamePatterns: []string{"^show"}, Text: text})
			if err != nil {
				errs <- err
				return
			}
			if id, _ := res.Identifier(); id != fmt.Sprintf("S1E%d", i) {
				errs <- fmt.Errorf("%s: got id %q", text, id)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestAsciiDigits(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0123", "0123"},
		{"０７", "07"},
		{"٠٩", "09"},
		{"१२३", "123"},
		{"𝟘𝟙", "01"}, // double-struck, preceded by the bold run
		{"x٣y", "x3y"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, asciiDigits(tt.in), tt.in)
	}
}

func TestResult_ZeroValue(t *testing.T) {
	var res Result
	assert.False(t, res.Valid())
	assert.False(t, res.HasEpisode())
	assert.Equal(t, QualityUnknown, res.Quality())

	_, ok := res.Season()
	assert.False(t, ok)

	_, err := res.Identifier()
	assert.ErrorIs(t, err, ErrState)

	_, err = Result{valid: true}.Identifier()
	assert.ErrorIs(t, err, ErrState, "a valid result always carries an id")
}

func TestResult_String(t *testing.T) {
	m := NewMatcher()

	res := mustMatch(t, m, Request{Name: "Show", Text: "Show.S01E02.720p"})
	assert.Equal(t, "id: S1E2 season: 1 episode: 2 quality: 720p status: OK", res.String())

	assert.Equal(t, "id: none season: none episode: none quality: unknown status: INVALID", Result{}.String())
}
