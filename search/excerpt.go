package search

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/askcampus/index"
)

// Excerpt selects the window of the document body that mentions the most
// query terms. Windows are evaluated at fixed stride offsets snapped to
// rune boundaries, so multi-byte text is never cut mid-character; among
// windows with equal term coverage the leftmost wins, so intros beat
// appendixes. Truncated edges are marked with "...".
func Excerpt(body, query string, window, stride int) string {
	if len(body) <= window {
		return strings.TrimSpace(body)
	}

	terms := dedupe(index.Tokenize(query))

	bestStart := 0
	bestCount := -1
	for start := 0; start < len(body); start += stride {
		from := snapRuneStart(body, start)
		to := snapRuneStart(body, from+window)
		count := countTerms(strings.ToLower(body[from:to]), terms)
		if count > bestCount {
			bestStart = from
			bestCount = count
		}
		if to == len(body) {
			break
		}
	}

	end := snapRuneStart(body, bestStart+window)

	excerpt := strings.TrimSpace(body[bestStart:end])
	if bestStart > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(body) {
		excerpt = excerpt + "..."
	}
	return excerpt
}

// snapRuneStart clamps i to [0, len(s)] and walks it back to the nearest
// rune boundary so slicing never splits a code point.
func snapRuneStart(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func dedupe(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	unique := terms[:0]
	for _, term := range terms {
		if !seen[term] {
			seen[term] = true
			unique = append(unique, term)
		}
	}
	return unique
}

// countTerms counts how many distinct query terms occur in the window.
func countTerms(window string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(window, term) {
			count++
		}
	}
	return count
}
