// Package profile loads the tunable analysis profile: vocabularies, header
// synonyms, role database and scoring weights.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"resume-diagnostics/internal/diagnostics/advice"
	"resume-diagnostics/internal/diagnostics/ats"
	"resume-diagnostics/internal/diagnostics/jdmatch"
	"resume-diagnostics/internal/diagnostics/roles"
	"resume-diagnostics/internal/diagnostics/sections"
	"resume-diagnostics/internal/diagnostics/skills"
)

// DefaultVersion identifies the built-in profile.
const DefaultVersion = "default:v1"

// ErrInvalidProfile is returned when a profile fails to decode or validate.
var ErrInvalidProfile = errors.New("invalid analysis profile")

// Profile is the full set of knobs the engine reads.
type Profile struct {
	Version      string            `yaml:"version" json:"version" validate:"required"`
	MinWordCount int               `yaml:"min_word_count" json:"min_word_count" validate:"gte=1"`
	Headers      sections.Headers  `yaml:"headers" json:"headers"`
	Skills       skills.Vocabulary `yaml:"skills" json:"skills"`
	JDMatch      jdmatch.Config    `yaml:"jd_match" json:"jd_match"`
	Scoring      ats.Weights       `yaml:"scoring" json:"scoring"`
	Roles        roles.Config      `yaml:"roles" json:"roles"`
	Advice       advice.Rules      `yaml:"advice" json:"advice"`
}

var validate = validator.New()

// Default returns the built-in profile.
func Default() Profile {
	return Profile{
		Version:      DefaultVersion,
		MinWordCount: sections.DefaultMinWordCount,
		Headers:      sections.DefaultHeaders(),
		Skills:       skills.DefaultVocabulary(),
		JDMatch:      jdmatch.DefaultConfig(),
		Scoring:      ats.DefaultWeights(),
		Roles:        roles.DefaultConfig(),
		Advice:       advice.DefaultRules(),
	}
}

// Load reads a YAML profile from path. An empty path returns the default.
func Load(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes YAML over the default profile, so a file only needs the keys
// it changes. Unknown keys are rejected.
func Parse(data []byte) (Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks field constraints.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// Marshal renders the profile as YAML.
func (p Profile) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StopHeaders returns the headers that end a skills section.
func (p Profile) StopHeaders() []string {
	out := make([]string, 0, len(p.Headers.Experience)+len(p.Headers.Education)+len(p.Headers.Projects))
	out = append(out, p.Headers.Experience...)
	out = append(out, p.Headers.Education...)
	out = append(out, p.Headers.Projects...)
	return out
}
