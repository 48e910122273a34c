package resumes

import (
	"time"

	"resume-diagnostics/internal/diagnostics"
	"resume-diagnostics/internal/diagnostics/roles"
)

// Resume is an uploaded résumé together with its latest analysis.
type Resume struct {
	ID             string
	FileName       string
	MimeType       string
	SizeBytes      int64
	StorageKey     string
	ExtractedText  string
	JobDescription string
	ATSScore       *int
	SuggestedRole  string
	DetectedSkills []string
	Result         *diagnostics.Result
	UploadedAt     time.Time
	AnalyzedAt     *time.Time
}

// RoleRecommendation is the outcome of ranking roles for a skill set.
type RoleRecommendation struct {
	Skills          []string
	ExperienceYears float64
	SuggestedRole   string
	Suggestions     []roles.Suggestion
}
