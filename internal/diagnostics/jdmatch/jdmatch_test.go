package jdmatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTokenOverlap(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	got := m.Match("python django sql", "python aws kubernetes")

	assert.Equal(t, 33, got.MatchPercent)
	assert.Equal(t, []string{"python"}, got.MatchedSkills)
	assert.Equal(t, []string{"aws", "kubernetes"}, got.MissingSkills)
}

func TestMatchEmptyJobDescription(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	for _, jd := range []string{"", "   ", "123 456 !!"} {
		got := m.Match("python", jd)
		assert.Equal(t, 0, got.MatchPercent, "jd=%q", jd)
		assert.NotNil(t, got.MissingSkills)
		assert.Empty(t, got.MissingSkills)
	}
}

func TestMatchKeepsShortTokens(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	got := m.Match("I know Go", "go or c")

	assert.Equal(t, 33, got.MatchPercent)
	assert.Equal(t, []string{"go"}, got.MatchedSkills)
	assert.Equal(t, []string{"c", "or"}, got.MissingSkills)
}

func TestMatchTruncatesMissingAlphabetically(t *testing.T) {
	m := NewMatcher(Config{MaxMissing: 3})
	jd := strings.Join([]string{"zeta", "alpha", "delta", "beta", "gamma"}, " ")

	got := m.Match("", jd)

	assert.Equal(t, []string{"alpha", "beta", "delta"}, got.MissingSkills)
	assert.Equal(t, 0, got.MatchPercent)
}

func TestMatchPercentRounds(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	got := m.Match("a b", "a b c")

	assert.Equal(t, 67, got.MatchPercent)
	assert.InDelta(t, 0.67, got.Ratio(), 1e-9)
}

func TestMatchSkills(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	got := m.MatchSkills([]string{"python", "SQL"}, []string{"sql", "aws", "python", "docker"})

	assert.Equal(t, 50, got.MatchPercent)
	assert.Equal(t, []string{"python", "sql"}, got.MatchedSkills)
	assert.Equal(t, []string{"aws", "docker"}, got.MissingSkills)
}
