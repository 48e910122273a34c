// Package roles ranks candidate job titles by how well a skill set fits them.
package roles

import (
	"math"
	"sort"
	"strings"
)

// Category groups role titles that share a required-skill list.
type Category struct {
	Name           string   `yaml:"name" json:"name" validate:"required"`
	RequiredSkills []string `yaml:"required_skills" json:"required_skills" validate:"min=1,dive,required"`
	MinExperience  float64  `yaml:"min_experience" json:"min_experience" validate:"gte=0"`
	Roles          []string `yaml:"roles" json:"roles" validate:"min=1,dive,required"`
}

// Config tunes the fit-score formula.
type Config struct {
	SkillWeight          float64 `yaml:"skill_weight" json:"skill_weight" validate:"gte=0,lte=1"`
	ExperienceWeight     float64 `yaml:"experience_weight" json:"experience_weight" validate:"gte=0,lte=1"`
	ReducedExperienceFit float64 `yaml:"reduced_experience_fit" json:"reduced_experience_fit" validate:"gte=0,lte=1"`
	Threshold            float64 `yaml:"threshold" json:"threshold" validate:"gte=0,lte=1"`
	MaxSuggestions       int     `yaml:"max_suggestions" json:"max_suggestions" validate:"gte=1"`
	DefaultRole          string  `yaml:"default_role" json:"default_role" validate:"required"`

	Categories []Category `yaml:"categories" json:"categories" validate:"min=1,dive"`
}

// DefaultConfig returns the built-in role database and fit constants.
func DefaultConfig() Config {
	return Config{
		SkillWeight:          0.7,
		ExperienceWeight:     0.3,
		ReducedExperienceFit: 0.6,
		Threshold:            0.35,
		MaxSuggestions:       5,
		DefaultRole:          "Software Developer",
		Categories: []Category{
			{Name: "Backend", RequiredSkills: []string{"python", "django", "sql"}, Roles: []string{"Backend Developer", "Python Developer"}},
			{Name: "Frontend", RequiredSkills: []string{"html", "css", "javascript"}, Roles: []string{"Frontend Developer", "UI Developer"}},
			{Name: "Software Engineering", RequiredSkills: []string{"python", "java", "git"}, Roles: []string{"Software Engineer"}},
			{Name: "Full Stack", RequiredSkills: []string{"javascript", "react", "node.js", "sql"}, Roles: []string{"Full Stack Developer"}},
			{Name: "Java", RequiredSkills: []string{"java", "sql", "git"}, Roles: []string{"Java Developer"}},
			{Name: "Data Science", RequiredSkills: []string{"python", "pandas", "numpy", "sql"}, MinExperience: 1, Roles: []string{"Data Analyst", "Data Scientist"}},
			{Name: "DevOps", RequiredSkills: []string{"docker", "kubernetes", "aws", "linux"}, MinExperience: 2, Roles: []string{"DevOps Engineer", "Cloud Engineer"}},
			{Name: "Senior Backend", RequiredSkills: []string{"python", "django", "sql", "docker", "aws"}, MinExperience: 5, Roles: []string{"Senior Backend Engineer"}},
		},
	}
}

// Suggestion is one ranked role.
type Suggestion struct {
	Role          string  `json:"role"`
	Category      string  `json:"category"`
	FitScore      float64 `json:"fit_score"`
	SkillsMatched int     `json:"skills_matched"`
	TotalRequired int     `json:"total_required"`
}

// Recommender scores role categories against a skill set.
type Recommender struct {
	cfg Config
}

// NewRecommender builds a Recommender over cfg. The category list is copied
// with lowercased skill names.
func NewRecommender(cfg Config) *Recommender {
	cats := make([]Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		req := make([]string, 0, len(c.RequiredSkills))
		for _, s := range c.RequiredSkills {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				req = append(req, s)
			}
		}
		cats = append(cats, Category{
			Name:           c.Name,
			RequiredSkills: req,
			MinExperience:  c.MinExperience,
			Roles:          append([]string(nil), c.Roles...),
		})
	}
	cfg.Categories = cats
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 5
	}
	return &Recommender{cfg: cfg}
}

// Suggest returns up to MaxSuggestions roles, best fit first. Categories at
// or below the threshold are skipped and ties keep database order.
func (r *Recommender) Suggest(skills []string, experienceYears float64) []Suggestion {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	out := []Suggestion{}
	for _, c := range r.cfg.Categories {
		if len(c.RequiredSkills) == 0 {
			continue
		}
		matched := 0
		for _, req := range c.RequiredSkills {
			if _, ok := have[req]; ok {
				matched++
			}
		}
		fit := r.fit(matched, len(c.RequiredSkills), experienceYears, c.MinExperience)
		if fit <= r.cfg.Threshold {
			continue
		}
		for _, role := range c.Roles {
			out = append(out, Suggestion{
				Role:          role,
				Category:      c.Name,
				FitScore:      math.Round(fit*1000) / 10,
				SkillsMatched: matched,
				TotalRequired: len(c.RequiredSkills),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FitScore > out[j].FitScore
	})
	if len(out) > r.cfg.MaxSuggestions {
		out = out[:r.cfg.MaxSuggestions]
	}
	return out
}

// Best returns the single top-ranked role, or the default title when no
// category clears the threshold.
func (r *Recommender) Best(skills []string, experienceYears float64) string {
	if ranked := r.Suggest(skills, experienceYears); len(ranked) > 0 {
		return ranked[0].Role
	}
	return r.cfg.DefaultRole
}

func (r *Recommender) fit(matched, total int, years, minYears float64) float64 {
	skillScore := float64(matched) / float64(total)
	expFit := 1.0
	if years < minYears {
		expFit = r.cfg.ReducedExperienceFit
	}
	return skillScore*r.cfg.SkillWeight + expFit*r.cfg.ExperienceWeight
}
