// Package skills extracts explicit and inferred skills from résumé text.
package skills

import (
	"strings"

	"resume-diagnostics/internal/diagnostics/textnorm"
)

// Vocabulary is the set of skill names the extractor recognises.
type Vocabulary struct {
	Explicit []string `yaml:"explicit" json:"explicit" validate:"dive,required"`
	Inferred []string `yaml:"inferred" json:"inferred" validate:"dive,required"`
}

// DefaultVocabulary returns the built-in explicit and inferred skill lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Explicit: []string{
			"python", "django", "flask", "sql", "mysql", "postgresql", "html", "css",
			"javascript", "typescript", "react", "node.js", "git", "java", "c++",
			"docker", "kubernetes", "aws", "linux", "pandas", "numpy", "tensorflow",
		},
		Inferred: []string{"machine learning", "data science", "artificial intelligence"},
	}
}

// Extractor finds vocabulary skills, preferring the text of a detected skills section.
type Extractor struct {
	vocab       Vocabulary
	headers     []string
	stopHeaders []string
}

// NewExtractor builds an Extractor. skillHeaders locate the skills section and
// stopHeaders mark where it ends.
func NewExtractor(vocab Vocabulary, skillHeaders, stopHeaders []string) *Extractor {
	return &Extractor{
		vocab:       Vocabulary{Explicit: canonical(vocab.Explicit), Inferred: canonical(vocab.Inferred)},
		headers:     canonical(skillHeaders),
		stopHeaders: canonical(stopHeaders),
	}
}

// Section returns the text of the skills section. The span starts after the
// first header synonym found (in configured order) and its trailing colons or
// whitespace, and ends at a blank line or the next section header.
func (e *Extractor) Section(text string) (string, bool) {
	normalized := textnorm.Normalize(text)
	for _, header := range e.headers {
		idx := textnorm.IndexTerm(normalized, header)
		if idx < 0 {
			continue
		}
		rest := strings.TrimLeft(normalized[idx+len(header):], " \t\n:")
		end := len(rest)
		if blank := blankLine(rest); blank >= 0 && blank < end {
			end = blank
		}
		for _, stop := range e.stopHeaders {
			if i := textnorm.IndexTerm(rest, stop); i >= 0 && i < end {
				end = i
			}
		}
		return rest[:end], true
	}
	return "", false
}

// Explicit returns the sorted explicit skills. Matching is scoped to the
// skills section when one with content exists, otherwise to the whole text.
func (e *Extractor) Explicit(text string) []string {
	scope := textnorm.Normalize(text)
	if span, ok := e.Section(text); ok && strings.TrimSpace(span) != "" {
		scope = span
	}
	return match(scope, e.vocab.Explicit)
}

// Inferred scans the whole text with the inferred vocabulary. It returns an
// empty set whenever explicit skills were found.
func (e *Extractor) Inferred(text string, explicit []string) []string {
	if len(explicit) > 0 {
		return []string{}
	}
	return match(textnorm.Normalize(text), e.vocab.Inferred)
}

// Scan matches vocabulary against the whole text, ignoring sections.
func (e *Extractor) Scan(text string, vocabulary []string) []string {
	return match(textnorm.Normalize(text), canonical(vocabulary))
}

func match(normalized string, vocabulary []string) []string {
	found := make(map[string]struct{})
	if normalized == "" {
		return []string{}
	}
	for _, skill := range vocabulary {
		if textnorm.ContainsTerm(normalized, skill) {
			found[skill] = struct{}{}
		}
	}
	return textnorm.SortedKeys(found)
}

// blankLine returns the offset of the first line consisting only of spaces or tabs.
func blankLine(s string) int {
	offset := 0
	for {
		nl := strings.IndexByte(s[offset:], '\n')
		if nl < 0 {
			return -1
		}
		start := offset + nl
		j := start + 1
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j < len(s) && s[j] == '\n' {
			return start
		}
		offset = start + 1
	}
}

func canonical(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
