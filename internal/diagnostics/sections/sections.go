// Package sections reports which conventional résumé sections are present.
package sections

import "resume-diagnostics/internal/diagnostics/textnorm"

// DefaultMinWordCount is the readability threshold.
const DefaultMinWordCount = 120

// Headers lists the header synonyms recognised for each section category.
type Headers struct {
	Skills     []string `yaml:"skills" json:"skills" validate:"min=1,dive,required"`
	Experience []string `yaml:"experience" json:"experience" validate:"min=1,dive,required"`
	Education  []string `yaml:"education" json:"education" validate:"min=1,dive,required"`
	Projects   []string `yaml:"projects" json:"projects" validate:"min=1,dive,required"`
}

// DefaultHeaders returns the built-in synonym lists.
func DefaultHeaders() Headers {
	return Headers{
		Skills:     []string{"skills", "technical skills", "skill set", "key skills", "competencies", "tech stack"},
		Experience: []string{"experience", "work experience", "professional experience", "internship", "employment"},
		Education:  []string{"education", "academics", "educational background", "qualifications"},
		Projects:   []string{"projects", "project work", "academic projects", "personal projects"},
	}
}

// Report is the structural-completeness result for one résumé.
type Report struct {
	HasSkills     bool `json:"has_skills"`
	HasExperience bool `json:"has_experience"`
	HasEducation  bool `json:"has_education"`
	HasProjects   bool `json:"has_projects"`
	IsReadable    bool `json:"is_readable"`
	WordCount     int  `json:"word_count"`
}

// Count returns how many of the four section categories were found.
func (r Report) Count() int {
	n := 0
	for _, ok := range []bool{r.HasSkills, r.HasExperience, r.HasEducation, r.HasProjects} {
		if ok {
			n++
		}
	}
	return n
}

// Detector finds section headers in résumé text.
type Detector struct {
	headers      Headers
	minWordCount int
}

// NewDetector builds a Detector. A non-positive minWordCount uses the default.
func NewDetector(headers Headers, minWordCount int) *Detector {
	if minWordCount <= 0 {
		minWordCount = DefaultMinWordCount
	}
	return &Detector{headers: headers, minWordCount: minWordCount}
}

// Analyze reports section presence, word count and readability.
func (d *Detector) Analyze(text string) Report {
	words := textnorm.WordCount(text)
	if words == 0 {
		return Report{}
	}
	normalized := textnorm.Normalize(text)
	return Report{
		HasSkills:     containsAny(normalized, d.headers.Skills),
		HasExperience: containsAny(normalized, d.headers.Experience),
		HasEducation:  containsAny(normalized, d.headers.Education),
		HasProjects:   containsAny(normalized, d.headers.Projects),
		IsReadable:    words >= d.minWordCount,
		WordCount:     words,
	}
}

func containsAny(normalized string, terms []string) bool {
	for _, term := range terms {
		if textnorm.ContainsTerm(normalized, term) {
			return true
		}
	}
	return false
}
