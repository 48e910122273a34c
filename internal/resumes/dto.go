package resumes

import (
	"time"

	"resume-diagnostics/internal/diagnostics"
	"resume-diagnostics/internal/diagnostics/jdmatch"
	"resume-diagnostics/internal/diagnostics/roles"
	"resume-diagnostics/internal/diagnostics/sections"
)

// StructureResponse reports which sections were found.
type StructureResponse struct {
	HasSkills     bool `json:"hasSkills"`
	HasExperience bool `json:"hasExperience"`
	HasEducation  bool `json:"hasEducation"`
	HasProjects   bool `json:"hasProjects"`
	IsReadable    bool `json:"isReadable"`
	WordCount     int  `json:"wordCount"`
}

// MatchResponse is the outward-facing job description overlap.
type MatchResponse struct {
	MatchPercent  int      `json:"matchPercent"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// RoleSuggestionResponse is one ranked role.
type RoleSuggestionResponse struct {
	Role          string  `json:"role"`
	Category      string  `json:"category"`
	FitScore      float64 `json:"fitScore"`
	SkillsMatched int     `json:"skillsMatched"`
	TotalRequired int     `json:"totalRequired"`
}

// AnalysisResponse is the outward-facing analysis result.
type AnalysisResponse struct {
	Structure       StructureResponse        `json:"structure"`
	ExplicitSkills  []string                 `json:"explicitSkills"`
	InferredSkills  []string                 `json:"inferredSkills"`
	ATSScore        int                      `json:"atsScore"`
	ScoreBreakdown  map[string]int           `json:"scoreBreakdown"`
	ExperienceYears float64                  `json:"experienceYears"`
	SuggestedRole   string                   `json:"suggestedRole"`
	RoleSuggestions []RoleSuggestionResponse `json:"roleSuggestions"`
	JDMatch         *MatchResponse           `json:"jdMatch,omitempty"`
	SkillGap        *MatchResponse           `json:"skillGap,omitempty"`
	Improvements    []string                 `json:"improvements"`
	Warnings        []string                 `json:"warnings"`
	ProfileVersion  string                   `json:"profileVersion"`
}

// ResumeResponse is the outward-facing representation of a stored résumé.
type ResumeResponse struct {
	ResumeID       string            `json:"resumeId"`
	FileName       string            `json:"fileName"`
	MimeType       string            `json:"mimeType"`
	SizeBytes      int64             `json:"sizeBytes"`
	UploadedAt     time.Time         `json:"uploadedAt"`
	AnalyzedAt     *time.Time        `json:"analyzedAt,omitempty"`
	ATSScore       *int              `json:"atsScore,omitempty"`
	SuggestedRole  string            `json:"suggestedRole,omitempty"`
	DetectedSkills []string          `json:"detectedSkills"`
	JobDescription string            `json:"jobDescription,omitempty"`
	Analysis       *AnalysisResponse `json:"analysis,omitempty"`
}

// RolesResponse is the outward-facing role recommendation.
type RolesResponse struct {
	Skills          []string                 `json:"skills"`
	ExperienceYears float64                  `json:"experienceYears"`
	SuggestedRole   string                   `json:"suggestedRole"`
	Suggestions     []RoleSuggestionResponse `json:"suggestions"`
}

func toResumeResponse(res Resume, withAnalysis bool) ResumeResponse {
	out := ResumeResponse{
		ResumeID:       res.ID,
		FileName:       res.FileName,
		MimeType:       res.MimeType,
		SizeBytes:      res.SizeBytes,
		UploadedAt:     res.UploadedAt,
		AnalyzedAt:     res.AnalyzedAt,
		ATSScore:       res.ATSScore,
		SuggestedRole:  res.SuggestedRole,
		DetectedSkills: nonNil(res.DetectedSkills),
	}
	if withAnalysis {
		out.JobDescription = res.JobDescription
		if res.Result != nil {
			analysis := toAnalysisResponse(*res.Result)
			out.Analysis = &analysis
		}
	}
	return out
}

func toAnalysisResponse(r diagnostics.Result) AnalysisResponse {
	return AnalysisResponse{
		Structure:       toStructureResponse(r.Structure),
		ExplicitSkills:  nonNil(r.ExplicitSkills),
		InferredSkills:  nonNil(r.InferredSkills),
		ATSScore:        r.ATSScore,
		ScoreBreakdown:  r.ScoreBreakdown,
		ExperienceYears: r.ExperienceYears,
		SuggestedRole:   r.SuggestedRole,
		RoleSuggestions: toRoleSuggestions(r.RoleSuggestions),
		JDMatch:         toMatchPtr(r.JDMatch),
		SkillGap:        toMatchPtr(r.SkillGap),
		Improvements:    nonNil(r.Improvements),
		Warnings:        nonNil(r.Warnings),
		ProfileVersion:  r.ProfileVersion,
	}
}

func toStructureResponse(s sections.Report) StructureResponse {
	return StructureResponse{
		HasSkills:     s.HasSkills,
		HasExperience: s.HasExperience,
		HasEducation:  s.HasEducation,
		HasProjects:   s.HasProjects,
		IsReadable:    s.IsReadable,
		WordCount:     s.WordCount,
	}
}

func toMatchResponse(m jdmatch.Result) MatchResponse {
	return MatchResponse{
		MatchPercent:  m.MatchPercent,
		MatchedSkills: nonNil(m.MatchedSkills),
		MissingSkills: nonNil(m.MissingSkills),
	}
}

func toMatchPtr(m *jdmatch.Result) *MatchResponse {
	if m == nil {
		return nil
	}
	out := toMatchResponse(*m)
	return &out
}

func toRoleSuggestions(in []roles.Suggestion) []RoleSuggestionResponse {
	out := make([]RoleSuggestionResponse, 0, len(in))
	for _, s := range in {
		out = append(out, RoleSuggestionResponse{
			Role:          s.Role,
			Category:      s.Category,
			FitScore:      s.FitScore,
			SkillsMatched: s.SkillsMatched,
			TotalRequired: s.TotalRequired,
		})
	}
	return out
}

func toRolesResponse(r RoleRecommendation) RolesResponse {
	return RolesResponse{
		Skills:          nonNil(r.Skills),
		ExperienceYears: r.ExperienceYears,
		SuggestedRole:   r.SuggestedRole,
		Suggestions:     toRoleSuggestions(r.Suggestions),
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
