package metadata

import "strings"

// Expand generates the search phrases to try against providers. The primary
// query is always included. Longer queries additionally get leading-prefix
// and word-window variants, and the same variants are derived from the
// display-title hint when it differs from the primary query. Provider
// full-text search is brittle on noisy YouTube titles; the shorter variants
// trade extra provider calls (deduplicated downstream) for recall.
func Expand(primary, hint string) []string {
	seen := make(map[string]bool)
	var queries []string
	add := func(q string) {
		if !seen[q] {
			seen[q] = true
			queries = append(queries, q)
		}
	}

	add(primary)
	addVariants(primary, add)
	if hint != primary {
		addVariants(hint, add)
	}
	return queries
}

// addVariants derives the five shortened forms of a query with more than
// three words: the first-5 (only past five words), first-3, first-2 and
// first-1 prefixes, plus the 3rd-and-4th word window.
func addVariants(query string, add func(string)) {
	words := strings.Fields(query)
	if len(words) <= 3 {
		return
	}

	if len(words) > 5 {
		add(strings.Join(words[:5], " "))
	}
	add(strings.Join(words[:3], " "))
	add(strings.Join(words[:2], " "))
	add(words[0])
	add(strings.Join(words[2:4], " "))
}
