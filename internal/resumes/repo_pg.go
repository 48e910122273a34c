package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-diagnostics/internal/diagnostics"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, file_name, mime_type, size_bytes, storage_key, extracted_text, job_description, ats_score, suggested_role, detected_skills, result, uploaded_at, analyzed_at`

// Create inserts a new résumé row.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	cols, err := toAnalysisColumns(res)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.FileName,
		res.MimeType,
		res.SizeBytes,
		res.StorageKey,
		res.ExtractedText,
		res.JobDescription,
		cols.atsScore,
		cols.suggestedRole,
		cols.detected,
		cols.result,
		res.UploadedAt,
		cols.analyzedAt,
	)
	return err
}

// UpdateAnalysis rewrites the analysis columns of an existing row.
func (r *PGRepo) UpdateAnalysis(ctx context.Context, res Resume) error {
	const query = `
UPDATE resumes
SET extracted_text = $2,
    job_description = $3,
    ats_score = $4,
    suggested_role = $5,
    detected_skills = $6,
    result = $7,
    analyzed_at = $8
WHERE id = $1`

	cols, err := toAnalysisColumns(res)
	if err != nil {
		return err
	}

	out, err := r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.ExtractedText,
		res.JobDescription,
		cols.atsScore,
		cols.suggestedRole,
		cols.detected,
		cols.result,
		cols.analyzedAt,
	)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type analysisColumns struct {
	atsScore      sql.NullInt64
	suggestedRole sql.NullString
	detected      sql.NullString
	result        []byte
	analyzedAt    sql.NullTime
}

func toAnalysisColumns(res Resume) (analysisColumns, error) {
	var cols analysisColumns
	if res.ATSScore != nil {
		cols.atsScore = sql.NullInt64{Int64: int64(*res.ATSScore), Valid: true}
	}
	if res.SuggestedRole != "" {
		cols.suggestedRole = sql.NullString{String: res.SuggestedRole, Valid: true}
	}
	if len(res.DetectedSkills) > 0 {
		cols.detected = sql.NullString{String: strings.Join(res.DetectedSkills, ","), Valid: true}
	}
	if res.Result != nil {
		raw, err := json.Marshal(res.Result)
		if err != nil {
			return analysisColumns{}, fmt.Errorf("marshal result: %w", err)
		}
		cols.result = raw
	}
	if res.AnalyzedAt != nil {
		cols.analyzedAt = sql.NullTime{Time: *res.AnalyzedAt, Valid: true}
	}
	return cols, nil
}

// GetByID fetches a résumé by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// List lists résumés ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
ORDER BY uploaded_at DESC, id DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var atsScore sql.NullInt64
	var suggestedRole sql.NullString
	var detected sql.NullString
	var result []byte
	var analyzedAt sql.NullTime
	if err := row.Scan(
		&res.ID,
		&res.FileName,
		&res.MimeType,
		&res.SizeBytes,
		&res.StorageKey,
		&res.ExtractedText,
		&res.JobDescription,
		&atsScore,
		&suggestedRole,
		&detected,
		&result,
		&res.UploadedAt,
		&analyzedAt,
	); err != nil {
		return Resume{}, err
	}
	if atsScore.Valid {
		score := int(atsScore.Int64)
		res.ATSScore = &score
	}
	if suggestedRole.Valid {
		res.SuggestedRole = suggestedRole.String
	}
	if detected.Valid && detected.String != "" {
		res.DetectedSkills = strings.Split(detected.String, ",")
	}
	if len(result) > 0 {
		var parsed diagnostics.Result
		if err := json.Unmarshal(result, &parsed); err != nil {
			return Resume{}, fmt.Errorf("decode result for %s: %w", res.ID, err)
		}
		res.Result = &parsed
	}
	if analyzedAt.Valid {
		res.AnalyzedAt = &analyzedAt.Time
	}
	return res, nil
}

var _ Repo = (*PGRepo)(nil)
