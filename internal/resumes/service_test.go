package resumes

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-diagnostics/internal/diagnostics"
	"resume-diagnostics/internal/diagnostics/advice"
	"resume-diagnostics/internal/extract"
	"resume-diagnostics/internal/shared/cache"
	localstore "resume-diagnostics/internal/shared/storage/object/local"
	"resume-diagnostics/internal/shared/util"
)

const sampleResume = `Jane Doe
Skills: Python, SQL, Docker

Experience
Backend developer for 3 years. Built and deployed APIs.

Education
B.Sc Computer Science`

type memoryCache struct {
	data   map[string][]byte
	writes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.writes++
	return nil
}

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	fixed := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	return &Service{
		Store:  localstore.New(t.TempDir()),
		Repo:   repo,
		Engine: diagnostics.NewDefault(),
		Now:    func() time.Time { return fixed },
	}, repo
}

func TestUploadAnalyzesAndPersists(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	res, err := svc.Upload(ctx, "jane.txt", strings.NewReader(sampleResume), "Looking for Python and AWS")
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, extract.MimeText, res.MimeType)
	assert.Equal(t, int64(len(sampleResume)), res.SizeBytes)
	assert.Equal(t, []string{"docker", "python", "sql"}, res.DetectedSkills)
	require.NotNil(t, res.ATSScore)
	require.NotNil(t, res.Result)
	assert.Equal(t, res.Result.ATSScore, *res.ATSScore)
	assert.Equal(t, res.Result.SuggestedRole, res.SuggestedRole)
	require.NotNil(t, res.Result.JDMatch)
	assert.Equal(t, 3.0, res.Result.ExperienceYears)
	assert.Equal(t, sampleResume, res.ExtractedText)

	stored, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.StorageKey, stored.StorageKey)

	body, err := svc.Store.Open(ctx, res.StorageKey)
	require.NoError(t, err)
	defer body.Close()

	sidecar, err := svc.Store.Open(ctx, ExtractedTextKey(res.StorageKey))
	require.NoError(t, err)
	defer sidecar.Close()
	saved, err := io.ReadAll(sidecar)
	require.NoError(t, err)
	assert.Equal(t, sampleResume, string(saved))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService(t)
	svc.MaxUploadBytes = 10

	_, err := svc.Upload(context.Background(), "big.txt", strings.NewReader(strings.Repeat("a", 11)), "")

	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUploadRejectsEmptyAndNameless(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "empty.txt", strings.NewReader(""), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(context.Background(), "  ", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc, repo := newTestService(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = svc.Upload(context.Background(), "notes.zip", &buf, "")

	assert.ErrorIs(t, err, extract.ErrUnsupportedType)
	items, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUploadUnreadablePDFStillRecorded(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Upload(context.Background(), "scan.pdf", strings.NewReader("%PDF-1.4\nnot really a pdf"), "")
	require.NoError(t, err)

	assert.Equal(t, extract.MimePDF, res.MimeType)
	assert.Empty(t, res.ExtractedText)
	assert.Equal(t, 0, *res.ATSScore)
	assert.Equal(t, []string{advice.NoTextAdvice}, res.Result.Improvements)
	assert.Contains(t, res.Result.Warnings, ExtractionFailedWarning)
}

func TestUploadUsesTextCache(t *testing.T) {
	svc, _ := newTestService(t)
	c := newMemoryCache()
	svc.Cache = c

	payload := []byte("placeholder text")
	key := cache.ExtractedTextKey(util.HashBytes(payload))
	require.NoError(t, c.SetJSON(context.Background(), key, cachedText{Text: "Skills: Java, Git", MimeType: extract.MimeText}, 0))

	res, err := svc.Upload(context.Background(), "cv.txt", bytes.NewReader(payload), "")
	require.NoError(t, err)
	assert.Equal(t, "Skills: Java, Git", res.ExtractedText)
	assert.Equal(t, []string{"git", "java"}, res.DetectedSkills)
	assert.Equal(t, 1, c.writes)

	res2, err := svc.Upload(context.Background(), "other.txt", strings.NewReader(sampleResume), "")
	require.NoError(t, err)
	assert.Equal(t, sampleResume, res2.ExtractedText)
	assert.Equal(t, 2, c.writes)
}

func TestAnalyzeTextDoesNotPersist(t *testing.T) {
	svc, repo := newTestService(t)

	result, err := svc.AnalyzeText(context.Background(), sampleResume, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "python", "sql"}, result.ExplicitSkills)
	assert.Nil(t, result.JDMatch)

	items, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMatchModes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tokens, err := svc.Match(ctx, "python django sql", "python aws kubernetes", "")
	require.NoError(t, err)
	assert.Equal(t, 33, tokens.MatchPercent)

	skillsOnly, err := svc.Match(ctx, "I write python with django", "We need Python, AWS and strong communication", MatchModeSkills)
	require.NoError(t, err)
	assert.Equal(t, 50, skillsOnly.MatchPercent)
	assert.Equal(t, []string{"python"}, skillsOnly.MatchedSkills)
	assert.Equal(t, []string{"aws"}, skillsOnly.MissingSkills)

	_, err = svc.Match(ctx, "python", "python", "fuzzy")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Match(ctx, "python", "   ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRolesFromSkillsOrText(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Roles(ctx, []string{" HTML ", "css", "JavaScript", ""}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "css", "javascript"}, rec.Skills)
	assert.Equal(t, "Frontend Developer", rec.SuggestedRole)

	rec, err = svc.Roles(ctx, nil, sampleResume, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "python", "sql"}, rec.Skills)
	assert.Equal(t, 3.0, rec.ExperienceYears)
	require.NotEmpty(t, rec.Suggestions)
	assert.Equal(t, rec.Suggestions[0].Role, rec.SuggestedRole)

	negative := -1.0
	_, err = svc.Roles(ctx, []string{"python"}, "", &negative)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Roles(ctx, nil, " ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, ErrNotFound))

	first, err := svc.Upload(ctx, "a.txt", strings.NewReader("Skills: Python"), "")
	require.NoError(t, err)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	items, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

type failingCreateRepo struct {
	*MemoryRepo
}

func (failingCreateRepo) Create(context.Context, Resume) error {
	return errors.New("db down")
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestUploadDiscardsStoredFileWhenPersistFails(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{
		Store:  localstore.New(dir),
		Repo:   failingCreateRepo{NewMemoryRepo()},
		Engine: diagnostics.NewDefault(),
	}

	_, err := svc.Upload(context.Background(), "jane.txt", strings.NewReader(sampleResume), "")

	require.Error(t, err)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadDiscardsStoredFileWhenCancelled(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{
		Store:  localstore.New(dir),
		Repo:   NewMemoryRepo(),
		Engine: diagnostics.NewDefault(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Cache = cancellingCache{cancel: cancel}

	_, err := svc.Upload(ctx, "jane.txt", strings.NewReader(sampleResume), "")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, storedFiles(t, dir))
}

// cancellingCache cancels the request while the upload is being extracted.
type cancellingCache struct {
	cancel context.CancelFunc
}

func (c cancellingCache) GetJSON(context.Context, string, any) (bool, error) {
	c.cancel()
	return false, nil
}

func (cancellingCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }

func TestReanalyzeReadsStoredDocument(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	res, err := svc.Upload(ctx, "jane.txt", strings.NewReader("Skills: Java"), "Java developer")
	require.NoError(t, err)
	assert.Equal(t, []string{"java"}, res.DetectedSkills)

	store := svc.Store.(*localstore.Store)
	_, err = store.SaveWithKey(ctx, res.StorageKey, extract.MimeText, strings.NewReader(sampleResume))
	require.NoError(t, err)

	kept, err := svc.Reanalyze(ctx, res.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, sampleResume, kept.ExtractedText)
	assert.Equal(t, []string{"docker", "python", "sql"}, kept.DetectedSkills)
	assert.Equal(t, "Java developer", kept.JobDescription)
	assert.Equal(t, res.UploadedAt, kept.UploadedAt)

	jd := ""
	cleared, err := svc.Reanalyze(ctx, res.ID, &jd)
	require.NoError(t, err)
	assert.Empty(t, cleared.JobDescription)
	assert.Nil(t, cleared.Result.JDMatch)

	stored, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleResume, stored.ExtractedText)
	assert.Empty(t, stored.JobDescription)
}

func TestReanalyzeMissingResumeOrFile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Reanalyze(ctx, "not-a-uuid", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Reanalyze(ctx, "8d7e3c2a-0000-4000-8000-000000000009", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := svc.Upload(ctx, "jane.txt", strings.NewReader(sampleResume), "")
	require.NoError(t, err)
	require.NoError(t, svc.Store.Delete(ctx, res.StorageKey))

	_, err = svc.Reanalyze(ctx, res.ID, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
