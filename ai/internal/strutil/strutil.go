// Package strutil provides string utility functions for the ai package.
package strutil

import (
	"strings"
	"unicode"
)

// Truncate truncates a string to a maximum length.
// Uses rune-level truncation to ensure Unicode safety (correct handling of multi-byte characters).
// Returns empty string if maxLen <= 0 to prevent slice bounds panic.
func Truncate(s string, maxLen int) string {
	if s == "" || maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// Words splits text into lowercase words, stripping punctuation.
// Only words longer than minLen runes are kept.
func Words(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len([]rune(w)) > minLen {
			words = append(words, w)
		}
	}
	return words
}

// WordSet returns the unique qualifying words of text as a membership set.
func WordSet(text string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Words(text, minLen) {
		set[w] = struct{}{}
	}
	return set
}

// SharedWordCount counts the distinct words longer than minLen runes that
// appear in both texts.
func SharedWordCount(a, b string, minLen int) int {
	setA := WordSet(a, minLen)
	if len(setA) == 0 {
		return 0
	}
	count := 0
	for w := range WordSet(b, minLen) {
		if _, ok := setA[w]; ok {
			count++
		}
	}
	return count
}

// NormalizeSpace collapses all whitespace runs to single spaces and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
