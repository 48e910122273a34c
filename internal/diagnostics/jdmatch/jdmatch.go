// Package jdmatch measures how much of a job description a résumé covers.
package jdmatch

import (
	"math"

	"resume-diagnostics/internal/diagnostics/textnorm"
)

// DefaultMaxMissing caps the missing list. Truncation is alphabetical.
const DefaultMaxMissing = 15

// Config tunes the matcher.
type Config struct {
	MaxMissing int `yaml:"max_missing" json:"max_missing" validate:"gte=0"`
}

// DefaultConfig returns the built-in matcher settings.
func DefaultConfig() Config {
	return Config{MaxMissing: DefaultMaxMissing}
}

// Result is the overlap between a résumé and a job description.
type Result struct {
	MatchPercent  int      `json:"match_percent"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// Matcher compares résumé text with a job description.
type Matcher struct {
	maxMissing int
}

// NewMatcher builds a Matcher. A zero MaxMissing uses the default.
func NewMatcher(cfg Config) *Matcher {
	if cfg.MaxMissing <= 0 {
		cfg.MaxMissing = DefaultMaxMissing
	}
	return &Matcher{maxMissing: cfg.MaxMissing}
}

// Match compares the alphabetic word sets of both texts.
func (m *Matcher) Match(resumeText, jdText string) Result {
	return m.compare(textnorm.WordSet(resumeText), textnorm.WordSet(jdText))
}

// MatchSkills compares two already-extracted skill sets.
func (m *Matcher) MatchSkills(resumeSkills, jdSkills []string) Result {
	return m.compare(toSet(resumeSkills), toSet(jdSkills))
}

// Ratio returns MatchPercent as a fraction in [0, 1].
func (r Result) Ratio() float64 {
	return float64(r.MatchPercent) / 100
}

func (m *Matcher) compare(have, want map[string]struct{}) Result {
	res := Result{MatchedSkills: []string{}, MissingSkills: []string{}}
	if len(want) == 0 {
		return res
	}
	matched := make(map[string]struct{})
	missing := make(map[string]struct{})
	for w := range want {
		if _, ok := have[w]; ok {
			matched[w] = struct{}{}
		} else {
			missing[w] = struct{}{}
		}
	}
	res.MatchPercent = int(math.Round(100 * float64(len(matched)) / float64(len(want))))
	res.MatchedSkills = textnorm.SortedKeys(matched)
	res.MissingSkills = textnorm.SortedKeys(missing)
	if len(res.MissingSkills) > m.maxMissing {
		res.MissingSkills = res.MissingSkills[:m.maxMissing]
	}
	return res
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = textnorm.Normalize(item); item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}
