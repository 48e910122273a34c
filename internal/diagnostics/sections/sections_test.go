package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeDetectsSections(t *testing.T) {
	d := NewDetector(DefaultHeaders(), 0)
	text := "Jane Doe\nTechnical Skills: Python, SQL\nWork Experience\nAcme Corp\nEducation\nB.Tech"

	got := d.Analyze(text)

	assert.True(t, got.HasSkills)
	assert.True(t, got.HasExperience)
	assert.True(t, got.HasEducation)
	assert.False(t, got.HasProjects)
	assert.False(t, got.IsReadable)
	assert.Equal(t, 12, got.WordCount)
	assert.Equal(t, 3, got.Count())
}

func TestAnalyzeReadabilityThreshold(t *testing.T) {
	d := NewDetector(DefaultHeaders(), 120)

	below := d.Analyze(strings.Repeat("word ", 119))
	at := d.Analyze(strings.Repeat("word ", 120))

	assert.False(t, below.IsReadable)
	assert.True(t, at.IsReadable)
	assert.Equal(t, 120, at.WordCount)
}

func TestAnalyzeHeadersNeedWordBoundaries(t *testing.T) {
	d := NewDetector(DefaultHeaders(), 0)

	got := d.Analyze("Inexperienced reskilling enthusiast")

	assert.False(t, got.HasExperience)
	assert.False(t, got.HasSkills)
}

func TestAnalyzeEmptyText(t *testing.T) {
	d := NewDetector(DefaultHeaders(), 0)

	assert.Equal(t, Report{}, d.Analyze(""))
	assert.Equal(t, Report{}, d.Analyze("   \n\t"))
}

func TestSingleHeaderFlipsOnlyItsCategory(t *testing.T) {
	d := NewDetector(DefaultHeaders(), 0)
	base := "Jane Doe\nAcme Corp 2021 to 2023\nBuilt billing services for customers"
	assert.Zero(t, d.Analyze(base).Count())

	h := DefaultHeaders()
	categories := []struct {
		name     string
		synonyms []string
		flag     func(Report) bool
	}{
		{"skills", h.Skills, func(r Report) bool { return r.HasSkills }},
		{"experience", h.Experience, func(r Report) bool { return r.HasExperience }},
		{"education", h.Education, func(r Report) bool { return r.HasEducation }},
		{"projects", h.Projects, func(r Report) bool { return r.HasProjects }},
	}
	for _, c := range categories {
		for _, synonym := range c.synonyms {
			t.Run(c.name+"/"+synonym, func(t *testing.T) {
				got := d.Analyze(base + "\n" + strings.ToUpper(synonym) + "\nDetails")

				assert.True(t, c.flag(got))
				assert.Equal(t, 1, got.Count())
			})
		}
	}
}
