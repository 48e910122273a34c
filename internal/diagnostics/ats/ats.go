// Package ats computes the weighted 0-100 ATS compatibility score.
package ats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-diagnostics/internal/diagnostics/jdmatch"
	"resume-diagnostics/internal/diagnostics/sections"
	"resume-diagnostics/internal/diagnostics/textnorm"
)

// Breakdown category keys.
const (
	CategorySkills     = "skills"
	CategoryStructure  = "structure"
	CategoryJDMatch    = "jd_match"
	CategoryExperience = "experience"
	CategoryFormat     = "format"
	CategorySeniority  = "seniority"
)

// Categories lists the breakdown keys in reporting order.
var Categories = []string{
	CategorySkills, CategoryStructure, CategoryJDMatch,
	CategoryExperience, CategoryFormat, CategorySeniority,
}

const maxYears = 40

var durationPattern = regexp.MustCompile(`(?:^|[^\d.])(\d{1,2}(?:\.\d+)?)\+?\s*(years?|yrs?|months?)\b`)

// Weights holds every numeric knob of the score.
type Weights struct {
	PerSkill  float64 `yaml:"per_skill" json:"per_skill" validate:"gte=0"`
	SkillsCap float64 `yaml:"skills_cap" json:"skills_cap" validate:"gte=0"`

	PerSection   float64 `yaml:"per_section" json:"per_section" validate:"gte=0"`
	Readable     float64 `yaml:"readable" json:"readable" validate:"gte=0"`
	StructureCap float64 `yaml:"structure_cap" json:"structure_cap" validate:"gte=0"`

	JDMatchCap float64 `yaml:"jd_match_cap" json:"jd_match_cap" validate:"gte=0"`
	JDNeutral  float64 `yaml:"jd_neutral" json:"jd_neutral" validate:"gte=0"`

	PerYear       float64 `yaml:"per_year" json:"per_year" validate:"gte=0"`
	YearsCap      float64 `yaml:"years_cap" json:"years_cap" validate:"gte=0"`
	PerVerb       float64 `yaml:"per_verb" json:"per_verb" validate:"gte=0"`
	VerbsCap      float64 `yaml:"verbs_cap" json:"verbs_cap" validate:"gte=0"`
	ExperienceCap float64 `yaml:"experience_cap" json:"experience_cap" validate:"gte=0"`

	FormatMax       float64 `yaml:"format_max" json:"format_max" validate:"gte=0"`
	MinChars        int     `yaml:"min_chars" json:"min_chars" validate:"gte=0"`
	ShortPenalty    float64 `yaml:"short_penalty" json:"short_penalty" validate:"gte=0"`
	LongLineLength  int     `yaml:"long_line_length" json:"long_line_length" validate:"gte=1"`
	MaxLongLines    int     `yaml:"max_long_lines" json:"max_long_lines" validate:"gte=0"`
	LongLinePenalty float64 `yaml:"long_line_penalty" json:"long_line_penalty" validate:"gte=0"`

	PerSeniority       float64 `yaml:"per_seniority" json:"per_seniority" validate:"gte=0"`
	SeniorityCap       float64 `yaml:"seniority_cap" json:"seniority_cap" validate:"gte=0"`
	SeniorityWordScale int     `yaml:"seniority_word_scale" json:"seniority_word_scale" validate:"gte=1"`

	ExperienceVerbs   []string `yaml:"experience_verbs" json:"experience_verbs" validate:"dive,required"`
	SeniorityKeywords []string `yaml:"seniority_keywords" json:"seniority_keywords" validate:"dive,required"`
}

// DefaultWeights returns the canonical weighting. Category maxima are
// skills 30, structure 15, jd_match 25, experience 15, format 10, seniority 5.
func DefaultWeights() Weights {
	return Weights{
		PerSkill:           4,
		SkillsCap:          30,
		PerSection:         3,
		Readable:           3,
		StructureCap:       15,
		JDMatchCap:         25,
		JDNeutral:          10,
		PerYear:            2,
		YearsCap:           8,
		PerVerb:            1.5,
		VerbsCap:           7,
		ExperienceCap:      15,
		FormatMax:          10,
		MinChars:           400,
		ShortPenalty:       5,
		LongLineLength:     200,
		MaxLongLines:       5,
		LongLinePenalty:    5,
		PerSeniority:       2,
		SeniorityCap:       5,
		SeniorityWordScale: 300,
		ExperienceVerbs: []string{
			"developed", "built", "implemented", "internship", "project",
			"designed", "led", "managed", "deployed", "optimized",
		},
		SeniorityKeywords: []string{"lead", "senior", "architect", "manager", "principal"},
	}
}

// Input carries everything the scorer reads.
type Input struct {
	ResumeText     string
	JobDescription string
	Structure      sections.Report
	SkillCount     int
	// JDMatch is reused when set; otherwise the scorer runs its own matcher.
	JDMatch *jdmatch.Result
}

// Result is the total score with its per-category parts.
type Result struct {
	Total           int            `json:"total"`
	Breakdown       map[string]int `json:"breakdown"`
	ExperienceYears float64        `json:"experience_years"`
}

// Scorer computes ATS scores.
type Scorer struct {
	w       Weights
	matcher *jdmatch.Matcher
}

// NewScorer builds a Scorer.
func NewScorer(w Weights, matcher *jdmatch.Matcher) *Scorer {
	if matcher == nil {
		matcher = jdmatch.NewMatcher(jdmatch.DefaultConfig())
	}
	if w.LongLineLength <= 0 {
		w.LongLineLength = DefaultWeights().LongLineLength
	}
	if w.SeniorityWordScale <= 0 {
		w.SeniorityWordScale = DefaultWeights().SeniorityWordScale
	}
	return &Scorer{w: w, matcher: matcher}
}

// Score returns the clamped total and the breakdown it was summed from.
// Text without any words scores zero in every category.
func (s *Scorer) Score(in Input) Result {
	res := Result{Breakdown: emptyBreakdown()}
	words := textnorm.WordCount(in.ResumeText)
	if words == 0 {
		return res
	}
	normalized := textnorm.Normalize(in.ResumeText)
	years := ExperienceYears(normalized)
	res.ExperienceYears = years

	res.Breakdown[CategorySkills] = round(math.Min(float64(in.SkillCount)*s.w.PerSkill, s.w.SkillsCap))
	res.Breakdown[CategoryStructure] = round(s.structure(in.Structure))
	res.Breakdown[CategoryJDMatch] = round(s.jdMatch(in))
	res.Breakdown[CategoryExperience] = round(s.experience(normalized, years))
	res.Breakdown[CategoryFormat] = round(s.format(in.ResumeText))
	res.Breakdown[CategorySeniority] = round(s.seniority(normalized, words))

	total := 0
	for _, v := range res.Breakdown {
		total += v
	}
	res.Total = clamp(total, 0, 100)
	return res
}

func (s *Scorer) structure(r sections.Report) float64 {
	points := float64(r.Count()) * s.w.PerSection
	if r.IsReadable {
		points += s.w.Readable
	}
	return math.Min(points, s.w.StructureCap)
}

func (s *Scorer) jdMatch(in Input) float64 {
	if strings.TrimSpace(in.JobDescription) == "" {
		return s.w.JDNeutral
	}
	match := in.JDMatch
	if match == nil {
		m := s.matcher.Match(in.ResumeText, in.JobDescription)
		match = &m
	}
	return math.Min(match.Ratio()*s.w.JDMatchCap, s.w.JDMatchCap)
}

func (s *Scorer) experience(normalized string, years float64) float64 {
	yearPoints := math.Min(years*s.w.PerYear, s.w.YearsCap)
	verbPoints := math.Min(float64(countTerms(normalized, s.w.ExperienceVerbs))*s.w.PerVerb, s.w.VerbsCap)
	return math.Min(yearPoints+verbPoints, s.w.ExperienceCap)
}

func (s *Scorer) format(raw string) float64 {
	points := s.w.FormatMax
	if nonSpaceChars(raw) < s.w.MinChars {
		points -= s.w.ShortPenalty
	}
	long := 0
	for _, line := range strings.Split(raw, "\n") {
		if utf8.RuneCountInString(strings.TrimRight(line, "\r")) > s.w.LongLineLength {
			long++
		}
	}
	if long > s.w.MaxLongLines {
		points -= s.w.LongLinePenalty
	}
	return math.Max(points, 0)
}

func (s *Scorer) seniority(normalized string, words int) float64 {
	points := math.Min(float64(countTerms(normalized, s.w.SeniorityKeywords))*s.w.PerSeniority, s.w.SeniorityCap)
	scale := math.Min(1, float64(words)/float64(s.w.SeniorityWordScale))
	return points * scale
}

// ExperienceYears returns the largest "N years" or "N months" mention in
// text, in years rounded to one decimal and capped at 40.
func ExperienceYears(text string) float64 {
	best := 0.0
	for _, m := range durationPattern.FindAllStringSubmatch(textnorm.Normalize(text), -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if strings.HasPrefix(m[2], "month") {
			v /= 12
		}
		if v > best {
			best = v
		}
	}
	best = math.Min(best, maxYears)
	return math.Round(best*10) / 10
}

func countTerms(normalized string, terms []string) int {
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if _, ok := seen[term]; ok {
			continue
		}
		if textnorm.ContainsTerm(normalized, term) {
			seen[term] = struct{}{}
		}
	}
	return len(seen)
}

func nonSpaceChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func emptyBreakdown() map[string]int {
	out := make(map[string]int, len(Categories))
	for _, c := range Categories {
		out[c] = 0
	}
	return out
}

func round(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
