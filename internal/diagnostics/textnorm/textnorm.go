// Package textnorm holds the text primitives every analysis step shares:
// lowercasing, word tokenization and boundary-anchored term lookup.
package textnorm

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize lowercases text and folds CRLF/CR line endings to LF.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ToLower(text)
}

// Words returns the lowercase runs of letters in text, in order, duplicates kept.
func Words(text string) []string {
	return runs(Normalize(text), unicode.IsLetter, 1)
}

// WordSet returns the distinct alphabetic words of text.
func WordSet(text string) map[string]struct{} {
	words := Words(text)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Keywords returns alphanumeric runs of at least three characters.
func Keywords(text string) []string {
	return runs(Normalize(text), isWordRune, 3)
}

// WordCount counts whitespace-delimited tokens of the raw text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ContainsTerm reports whether term occurs in normalized with no letter or
// digit directly before or after it. normalized must already be lowercase.
func ContainsTerm(normalized, term string) bool {
	return IndexTerm(normalized, term) >= 0
}

// IndexTerm returns the byte offset of the first boundary-anchored occurrence
// of term in normalized, or -1.
func IndexTerm(normalized, term string) int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || normalized == "" {
		return -1
	}
	offset := 0
	for offset <= len(normalized)-len(term) {
		idx := strings.Index(normalized[offset:], term)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(normalized, start) && boundaryAfter(normalized, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(normalized[start:])
		offset = start + size
	}
	return -1
}

// SortedKeys returns the members of set in ascending order.
func SortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runs(s string, keep func(rune) bool, minLen int) []string {
	var out []string
	start := -1
	for i, r := range s {
		if keep(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if utf8.RuneCountInString(s[start:i]) >= minLen {
				out = append(out, s[start:i])
			}
			start = -1
		}
	}
	if start >= 0 && utf8.RuneCountInString(s[start:]) >= minLen {
		out = append(out, s[start:])
	}
	return out
}
