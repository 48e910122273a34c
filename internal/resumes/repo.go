package resumes

import "context"

// Repo defines persistence operations for résumés.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	// UpdateAnalysis replaces the extracted text and analysis of an existing résumé.
	UpdateAnalysis(ctx context.Context, r Resume) error
	List(ctx context.Context, limit, offset int) ([]Resume, error)
}
