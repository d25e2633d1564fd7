package metadata

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
)

// Low-information words that only add noise to token comparison.
var stopwords = map[string]bool{
	"a":         true,
	"an":        true,
	"the":       true,
	"feat":      true,
	"ft":        true,
	"featuring": true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize canonicizes text for token comparison: transliterate to ASCII,
// collapse whitespace runs, lower-case, drop stopwords, strip punctuation,
// split into tokens. Pure; an empty string yields no tokens.
func Normalize(text string) []string {
	text = unidecode.Unidecode(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.ToLower(text)

	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if stopwords[w] {
			continue
		}
		w = stripPunct(w)
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// CleanField preprocesses a provider-supplied track, artist or album name
// before normalization: parenthesized extras like "(feat. X)" carry no
// search signal, and "&" is unified with the spelled-out form. The query
// itself is never cleaned this way.
func CleanField(s string) string {
	s = parenthesized.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "&", "and")
}

// Decorations YouTube uploaders append to video titles.
var titleCleanupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*[\(\[]official\s+(music\s+|lyric\s+)?(video|audio|visualizer)[\)\]]`),
	regexp.MustCompile(`(?i)\s*[\(\[]lyrics?[\)\]]`),
	regexp.MustCompile(`(?i)\s*[\(\[]visual(?:izer)?[\)\]]`),
	regexp.MustCompile(`(?i)\s*[\(\[]audio[\)\]]`),
	regexp.MustCompile(`(?i)\s*[\(\[](hd|hq|4k)[\)\]]`),
	regexp.MustCompile(`(?i)\s*[\(\[](explicit|clean)[\)\]]`),
}

var featuringPattern = regexp.MustCompile(`(?i)\s*[\(\[]\s*(?:feat\.?|ft\.?|featuring)\s+[^\)\]]+[\)\]]`)

// CleanVideoTitle strips YouTube-specific decorations ("(Official Video)",
// "[Lyrics]", featuring credits, ...) from a raw video title so it can be
// used as the primary search query.
func CleanVideoTitle(title string) string {
	title = strings.TrimSpace(title)
	for _, p := range titleCleanupPatterns {
		title = p.ReplaceAllString(title, "")
	}
	title = featuringPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
