// Package diagnostics runs the full résumé analysis: structure, skills, job
// description overlap, ATS score, role ranking and advice.
//
// An Engine is immutable after New and safe for concurrent use.
package diagnostics

import (
	"strings"

	"resume-diagnostics/internal/diagnostics/advice"
	"resume-diagnostics/internal/diagnostics/ats"
	"resume-diagnostics/internal/diagnostics/jdmatch"
	"resume-diagnostics/internal/diagnostics/profile"
	"resume-diagnostics/internal/diagnostics/roles"
	"resume-diagnostics/internal/diagnostics/sections"
	"resume-diagnostics/internal/diagnostics/skills"
	"resume-diagnostics/internal/diagnostics/textnorm"
)

// Input is one analysis request.
type Input struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// Result is the complete analysis of one résumé.
type Result struct {
	Structure       sections.Report    `json:"structure"`
	ExplicitSkills  []string           `json:"explicit_skills"`
	InferredSkills  []string           `json:"inferred_skills"`
	ATSScore        int                `json:"ats_score"`
	ScoreBreakdown  map[string]int     `json:"score_breakdown"`
	ExperienceYears float64            `json:"experience_years"`
	SuggestedRole   string             `json:"suggested_role"`
	RoleSuggestions []roles.Suggestion `json:"role_suggestions"`
	JDMatch         *jdmatch.Result    `json:"jd_match,omitempty"`
	SkillGap        *jdmatch.Result    `json:"skill_gap,omitempty"`
	Improvements    []string           `json:"improvements"`
	Warnings        []string           `json:"warnings"`
	ProfileVersion  string             `json:"profile_version"`
}

// Engine wires the analysis components built from one profile.
type Engine struct {
	profile     profile.Profile
	detector    *sections.Detector
	extractor   *skills.Extractor
	matcher     *jdmatch.Matcher
	scorer      *ats.Scorer
	recommender *roles.Recommender
	advisor     *advice.Advisor
}

// New builds an Engine from p. The profile is validated first.
func New(p profile.Profile) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	matcher := jdmatch.NewMatcher(p.JDMatch)
	return &Engine{
		profile:     p,
		detector:    sections.NewDetector(p.Headers, p.MinWordCount),
		extractor:   skills.NewExtractor(p.Skills, p.Headers.Skills, p.StopHeaders()),
		matcher:     matcher,
		scorer:      ats.NewScorer(p.Scoring, matcher),
		recommender: roles.NewRecommender(p.Roles),
		advisor:     advice.NewAdvisor(p.Advice),
	}, nil
}

// NewDefault builds an Engine over the built-in profile.
func NewDefault() *Engine {
	e, err := New(profile.Default())
	if err != nil {
		panic("diagnostics: default profile invalid: " + err.Error())
	}
	return e
}

// Profile returns the profile the engine was built from.
func (e *Engine) Profile() profile.Profile {
	return e.profile
}

// Analyze runs every analysis step over in. It never fails; empty text
// yields a zero score and the scanned-document advisory.
func (e *Engine) Analyze(in Input) Result {
	structure := e.detector.Analyze(in.ResumeText)
	explicit := e.extractor.Explicit(in.ResumeText)
	inferred := e.extractor.Inferred(in.ResumeText, explicit)

	res := Result{
		Structure:      structure,
		ExplicitSkills: explicit,
		InferredSkills: inferred,
		ProfileVersion: e.profile.Version,
	}

	hasJD := strings.TrimSpace(in.JobDescription) != ""
	if hasJD {
		match := e.matcher.Match(in.ResumeText, in.JobDescription)
		gap := e.SkillGap(in.ResumeText, in.JobDescription)
		res.JDMatch = &match
		res.SkillGap = &gap
	}

	score := e.scorer.Score(ats.Input{
		ResumeText:     in.ResumeText,
		JobDescription: in.JobDescription,
		Structure:      structure,
		SkillCount:     len(explicit),
		JDMatch:        res.JDMatch,
	})
	res.ATSScore = score.Total
	res.ScoreBreakdown = score.Breakdown
	res.ExperienceYears = score.ExperienceYears

	roleSkills := explicit
	if len(roleSkills) == 0 {
		roleSkills = inferred
	}
	res.RoleSuggestions = e.recommender.Suggest(roleSkills, score.ExperienceYears)
	res.SuggestedRole = e.profile.Roles.DefaultRole
	if len(res.RoleSuggestions) > 0 {
		res.SuggestedRole = res.RoleSuggestions[0].Role
	}

	res.Improvements = e.advisor.Advise(score.Total, structure, explicit)
	res.Warnings = e.advisor.Warnings(structure, explicit)
	return res
}

// MatchJobDescription is the token-level job description matcher.
func (e *Engine) MatchJobDescription(resumeText, jobDescription string) jdmatch.Result {
	return e.matcher.Match(resumeText, jobDescription)
}

// SkillGap compares the explicit-vocabulary skills named anywhere in the
// résumé with those named in the job description.
func (e *Engine) SkillGap(resumeText, jobDescription string) jdmatch.Result {
	have := e.extractor.Scan(resumeText, e.profile.Skills.Explicit)
	want := e.extractor.Scan(jobDescription, e.profile.Skills.Explicit)
	return e.matcher.MatchSkills(have, want)
}

// RecommendRoles ranks roles for an explicit skill list.
func (e *Engine) RecommendRoles(skillList []string, experienceYears float64) []roles.Suggestion {
	return e.recommender.Suggest(skillList, experienceYears)
}

// SuggestRole returns the single best role title.
func (e *Engine) SuggestRole(skillList []string, experienceYears float64) string {
	return e.recommender.Best(skillList, experienceYears)
}

// ExtractSkills returns the explicit and inferred skills of text.
func (e *Engine) ExtractSkills(text string) (explicit, inferred []string) {
	explicit = e.extractor.Explicit(text)
	return explicit, e.extractor.Inferred(text, explicit)
}

// ExperienceYears returns the largest duration mentioned in text.
func (e *Engine) ExperienceYears(text string) float64 {
	return ats.ExperienceYears(text)
}

// CleanText rewrites text into an ATS-friendly plain form.
func (e *Engine) CleanText(text string) string {
	return textnorm.CleanForATS(text)
}
