// Package search builds the prefix token index skills are searched by.
// Every non-empty prefix of every word is stored, so a query resolves to
// a single array-membership lookup with no server-side text engine.
package search

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokens lowercases the text, splits it into maximal word-character
// runs and returns every prefix of every word, deduplicated and sorted.
// Empty input yields an empty slice.
func Tokens(text string) []string {
	if text == "" {
		return nil
	}

	set := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		runes := []rune(word)
		for i := 1; i <= len(runes); i++ {
			set[string(runes[:i])] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Match reports whether the query, lowercased and taken as a single
// contiguous token, is a member of the stored token set.
func Match(tokens []string, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, t := range tokens {
		if t == q {
			return true
		}
	}
	return false
}
