package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-diagnostics/internal/diagnostics"
	"resume-diagnostics/internal/diagnostics/jdmatch"
	"resume-diagnostics/internal/extract"
	"resume-diagnostics/internal/shared/cache"
	"resume-diagnostics/internal/shared/metrics"
	"resume-diagnostics/internal/shared/storage/object"
	"resume-diagnostics/internal/shared/telemetry"
	"resume-diagnostics/internal/shared/util"
)

const (
	DefaultMaxUploadBytes = 10 << 20

	MatchModeTokens = "tokens"
	MatchModeSkills = "skills"

	// ExtractionFailedWarning is added when a supported document yields no parsable text.
	ExtractionFailedWarning = "Text could not be extracted from the uploaded document."
)

// TextCache caches extracted document text. *cache.Redis satisfies it.
type TextCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service contains business logic for résumé uploads and analysis.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	Engine         *diagnostics.Engine
	Cache          TextCache
	MaxUploadBytes int64
	Now            func() time.Time
}

// TextStore is implemented by object stores that can write at an explicit key.
// Extracted text is kept next to the upload when the store supports it.
type TextStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// ExtractedTextKey is the sidecar key holding the extracted text of an upload.
func ExtractedTextKey(storageKey string) string {
	return storageKey + ".extracted.txt"
}

type cachedText struct {
	Text     string `json:"text"`
	MimeType string `json:"mime_type"`
}

// Upload stores the file, extracts its text, analyzes it and records the result.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader, jobDescription string) (Resume, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || r == nil {
		return Resume{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	limit := s.maxUploadBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return Resume{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Resume{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	mimeType := extract.DetectMimeType(data, "", fileName)
	switch mimeType {
	case extract.MimePDF, extract.MimeDOCX, extract.MimeText:
	default:
		return Resume{}, fmt.Errorf("%w: %s", extract.ErrUnsupportedType, mimeType)
	}

	now := s.now()
	storageKey, size, _, err := s.Store.Save(ctx, now.Format("2006-01-02"), fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}
	metrics.IncResumeUploaded()

	text, extractErr := s.extractText(ctx, data, mimeType, fileName)
	if extractErr != nil && !errors.Is(extractErr, extract.ErrExtraction) {
		s.discardUpload(ctx, storageKey, extractErr)
		return Resume{}, extractErr
	}

	res := Resume{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		UploadedAt: now,
	}
	s.applyAnalysis(&res, text, jobDescription, extractErr != nil)

	if err := s.Repo.Create(ctx, res); err != nil {
		s.discardUpload(ctx, storageKey, err)
		return Resume{}, fmt.Errorf("persist resume: %w", err)
	}
	s.saveExtractedText(ctx, storageKey, text)

	telemetry.Info("resume.analyzed", map[string]any{
		"resume_id":      res.ID,
		"mime_type":      mimeType,
		"size_bytes":     size,
		"ats_score":      *res.ATSScore,
		"suggested_role": res.SuggestedRole,
		"skills":         len(res.DetectedSkills),
	})
	return res, nil
}

// Reanalyze reads the stored document again and replaces the recorded
// analysis. A nil jobDescription keeps the one given at upload.
func (s *Service) Reanalyze(ctx context.Context, id string, jobDescription *string) (Resume, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}

	text, extractErr := extract.ExtractText(ctx, s.Store, res.StorageKey, res.MimeType, res.FileName)
	if extractErr != nil {
		if !errors.Is(extractErr, extract.ErrExtraction) {
			return Resume{}, fmt.Errorf("reanalyze %s: %w", res.ID, extractErr)
		}
		metrics.IncExtractionFailed()
		text = ""
	}

	jd := res.JobDescription
	if jobDescription != nil {
		jd = *jobDescription
	}
	s.applyAnalysis(&res, text, jd, extractErr != nil)

	if err := s.Repo.UpdateAnalysis(ctx, res); err != nil {
		return Resume{}, fmt.Errorf("update resume: %w", err)
	}
	s.saveExtractedText(ctx, res.StorageKey, text)

	telemetry.Info("resume.reanalyzed", map[string]any{
		"resume_id": res.ID,
		"ats_score": *res.ATSScore,
	})
	return res, nil
}

// applyAnalysis runs the engine over text and copies the outcome onto res.
func (s *Service) applyAnalysis(res *Resume, text, jobDescription string, extractionFailed bool) {
	result := s.analyze(text, jobDescription)
	if extractionFailed {
		result.Warnings = append(result.Warnings, ExtractionFailedWarning)
	}

	score := result.ATSScore
	analyzedAt := s.now()
	res.ExtractedText = text
	res.JobDescription = jobDescription
	res.ATSScore = &score
	res.SuggestedRole = result.SuggestedRole
	res.DetectedSkills = result.ExplicitSkills
	res.Result = &result
	res.AnalyzedAt = &analyzedAt
}

// discardUpload removes a stored upload whose record was never written.
func (s *Service) discardUpload(ctx context.Context, storageKey string, cause error) {
	fields := map[string]any{
		"storage_key": storageKey,
		"cause":       cause,
	}
	if err := s.Store.Delete(context.WithoutCancel(ctx), storageKey); err != nil {
		fields["err"] = err
		telemetry.Error("resume.upload_orphaned", fields)
		return
	}
	telemetry.Warn("resume.upload_discarded", fields)
}

func (s *Service) saveExtractedText(ctx context.Context, storageKey, text string) {
	ts, ok := s.Store.(TextStore)
	if !ok || strings.TrimSpace(text) == "" {
		return
	}
	if _, err := ts.SaveWithKey(ctx, ExtractedTextKey(storageKey), "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Warn("resume.extracted_text_save_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err,
		})
	}
}

// AnalyzeText analyzes inline text without persisting anything.
func (s *Service) AnalyzeText(ctx context.Context, resumeText, jobDescription string) (diagnostics.Result, error) {
	if err := ctx.Err(); err != nil {
		return diagnostics.Result{}, err
	}
	return s.analyze(resumeText, jobDescription), nil
}

// Match compares a résumé with a job description by tokens or by vocabulary skills.
func (s *Service) Match(ctx context.Context, resumeText, jobDescription, mode string) (jdmatch.Result, error) {
	if err := ctx.Err(); err != nil {
		return jdmatch.Result{}, err
	}
	if strings.TrimSpace(jobDescription) == "" {
		return jdmatch.Result{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", MatchModeTokens:
		return s.Engine.MatchJobDescription(resumeText, jobDescription), nil
	case MatchModeSkills:
		return s.Engine.SkillGap(resumeText, jobDescription), nil
	default:
		return jdmatch.Result{}, fmt.Errorf("%w: unknown match mode %q", ErrInvalidInput, mode)
	}
}

// Roles ranks roles for explicit skills, or for the skills found in resumeText
// when none are given. A nil experienceYears is read from resumeText.
func (s *Service) Roles(ctx context.Context, skillList []string, resumeText string, experienceYears *float64) (RoleRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return RoleRecommendation{}, err
	}

	normalized := make([]string, 0, len(skillList))
	for _, sk := range skillList {
		if trimmed := strings.ToLower(strings.TrimSpace(sk)); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	if len(normalized) == 0 {
		if strings.TrimSpace(resumeText) == "" {
			return RoleRecommendation{}, fmt.Errorf("%w: skills or resume text required", ErrInvalidInput)
		}
		explicit, inferred := s.Engine.ExtractSkills(resumeText)
		normalized = explicit
		if len(normalized) == 0 {
			normalized = inferred
		}
	}

	years := 0.0
	if experienceYears != nil {
		if *experienceYears < 0 {
			return RoleRecommendation{}, fmt.Errorf("%w: experience years must not be negative", ErrInvalidInput)
		}
		years = *experienceYears
	} else if resumeText != "" {
		years = s.Engine.ExperienceYears(resumeText)
	}

	suggestions := s.Engine.RecommendRoles(normalized, years)
	best := s.Engine.Profile().Roles.DefaultRole
	if len(suggestions) > 0 {
		best = suggestions[0].Role
	}
	return RoleRecommendation{
		Skills:          normalized,
		ExperienceYears: years,
		SuggestedRole:   best,
		Suggestions:     suggestions,
	}, nil
}

// Get returns a stored résumé.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns stored résumés newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) analyze(resumeText, jobDescription string) diagnostics.Result {
	start := time.Now()
	result := s.Engine.Analyze(diagnostics.Input{ResumeText: resumeText, JobDescription: jobDescription})
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
	metrics.ObserveATSScore(result.ATSScore)
	metrics.IncAnalysis()
	return result
}

func (s *Service) extractText(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	key := cache.ExtractedTextKey(util.HashBytes(data))
	if s.Cache != nil {
		var hit cachedText
		found, err := s.Cache.GetJSON(ctx, key, &hit)
		if err != nil {
			telemetry.Error("resume.cache_read_failed", map[string]any{"err": err})
		}
		if found {
			metrics.IncExtractCacheHit()
			return hit.Text, nil
		}
	}

	text, err := extract.ExtractTextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrExtraction) {
			metrics.IncExtractionFailed()
			telemetry.Error("resume.extract_failed", map[string]any{
				"file_name": fileName,
				"mime_type": mimeType,
				"err":       err,
			})
			return "", err
		}
		return "", fmt.Errorf("extract text: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, cachedText{Text: text, MimeType: mimeType}, 0); err != nil {
			telemetry.Error("resume.cache_write_failed", map[string]any{"err": err})
		}
	}
	return text, nil
}

func (s *Service) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
