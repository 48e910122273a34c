// Package advice turns analysis results into ordered improvement suggestions.
package advice

import "resume-diagnostics/internal/diagnostics/sections"

// Suggestion and warning texts.
const (
	NoTextAdvice       = "No extractable text found. The document may be a scanned image; upload a text-based PDF or DOCX."
	LowScoreAdvice     = "Improve overall ATS score by adding clear section headings and more keywords."
	NoSkillsAdvice     = "Add a dedicated Skills section with clearly listed technologies."
	NoExperienceAdvice = "Add an Experience section (internships, training, freelance, or projects)."
	FewSkillsAdvice    = "List more explicit technical skills. ATS systems do not infer skills reliably."
	ShortResumeAdvice  = "Resume content seems short. Expand project descriptions with measurable impact."

	NoSkillsWarning     = "No explicit technical skills detected. Add a clear Skills section."
	NoExperienceWarning = "Experience section missing. Add internships, training, or projects."
)

// Rules holds the advisor thresholds.
type Rules struct {
	LowScoreThreshold int `yaml:"low_score_threshold" json:"low_score_threshold" validate:"gte=0,lte=100"`
	MinExplicitSkills int `yaml:"min_explicit_skills" json:"min_explicit_skills" validate:"gte=0"`
	MinWordCount      int `yaml:"min_word_count" json:"min_word_count" validate:"gte=0"`
}

// DefaultRules returns the built-in thresholds.
func DefaultRules() Rules {
	return Rules{LowScoreThreshold: 70, MinExplicitSkills: 8, MinWordCount: 300}
}

type facts struct {
	score     int
	structure sections.Report
	explicit  []string
}

type rule struct {
	applies  func(Rules, facts) bool
	message  string
	terminal bool
}

// Evaluated in order; a terminal rule ends evaluation when it applies.
var adviceRules = []rule{
	{
		applies:  func(_ Rules, f facts) bool { return f.structure.WordCount == 0 },
		message:  NoTextAdvice,
		terminal: true,
	},
	{
		applies: func(r Rules, f facts) bool { return f.score < r.LowScoreThreshold },
		message: LowScoreAdvice,
	},
	{
		applies: func(_ Rules, f facts) bool { return !f.structure.HasSkills },
		message: NoSkillsAdvice,
	},
	{
		applies: func(_ Rules, f facts) bool { return !f.structure.HasExperience },
		message: NoExperienceAdvice,
	},
	{
		applies: func(r Rules, f facts) bool { return len(f.explicit) < r.MinExplicitSkills },
		message: FewSkillsAdvice,
	},
	{
		applies: func(r Rules, f facts) bool { return f.structure.WordCount < r.MinWordCount },
		message: ShortResumeAdvice,
	},
}

// Advisor produces suggestions from a score, a structure report and skills.
type Advisor struct {
	rules Rules
}

// NewAdvisor builds an Advisor.
func NewAdvisor(rules Rules) *Advisor {
	return &Advisor{rules: rules}
}

// Advise returns suggestions in fixed rule order. Text with no words yields
// only the scanned-document advisory.
func (a *Advisor) Advise(score int, structure sections.Report, explicit []string) []string {
	f := facts{score: score, structure: structure, explicit: explicit}
	out := []string{}
	for _, r := range adviceRules {
		if !r.applies(a.rules, f) {
			continue
		}
		out = append(out, r.message)
		if r.terminal {
			break
		}
	}
	return out
}

// Warnings returns the short blocking problems shown next to an upload.
func (a *Advisor) Warnings(structure sections.Report, explicit []string) []string {
	out := []string{}
	if len(explicit) == 0 {
		out = append(out, NoSkillsWarning)
	}
	if !structure.HasExperience {
		out = append(out, NoExperienceWarning)
	}
	return out
}
