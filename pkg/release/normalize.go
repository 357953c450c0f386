package release

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// separatorRegex matches runs of whitespace, underscores, periods and brackets.
var separatorRegex = regexp.MustCompile(`[\s_.\[\]]+`)

// nonWordRegex matches runs of characters that are neither letters nor digits.
var nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Normalize folds separators to single spaces, trims and lower-cases s.
// "Show_Name.[720p]" becomes "show name 720p".
func Normalize(s string) string {
	s = separatorRegex.ReplaceAllString(s, " ")
	// cases.Caser is stateful, so one per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Tokens splits normalized text into whitespace separated words.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// NameKey returns a case-folded key for a series name so that
// "The.Office" and "the office" compare equal.
func NameKey(name string) string {
	words := nonWordRegex.ReplaceAllString(Normalize(name), " ")
	return cases.Fold().String(strings.Join(strings.Fields(words), " "))
}

// namePattern builds the fallback name regex from a series name:
// "Show Name" becomes ^[^\p{L}\p{N}]*show[^\p{L}\p{N}]*name[^\p{L}\p{N}]+
// so the name must start the text and be followed by a separator.
func namePattern(name string) string {
	const blank = `[^\p{L}\p{N}]`
	words := strings.Fields(nonWordRegex.ReplaceAllString(Normalize(name), " "))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return `^` + blank + `*` + strings.Join(words, blank+`*`) + blank + `+`
}
