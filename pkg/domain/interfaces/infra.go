package interfaces

import (
	"context"

	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

// AnalysisRepository stores completed analyses keyed by their ID
type AnalysisRepository interface {
	// Put stores an analysis, overwriting any record with the same ID
	Put(ctx context.Context, analysis *model.Analysis) error

	// Get returns the analysis with the given ID, or types.ErrAnalysisNotFound
	Get(ctx context.Context, id types.AnalysisID) (*model.Analysis, error)

	// List returns up to limit analyses, newest first
	List(ctx context.Context, limit int) ([]*model.Analysis, error)
}

// UploadArchiver archives raw uploads for later inspection
type UploadArchiver interface {
	Archive(ctx context.Context, id types.AnalysisID, upload *model.Upload) error
}

// Notifier delivers out-of-band notifications about analysis failures
type Notifier interface {
	NotifyFailure(ctx context.Context, analysisType types.AnalysisType, failure error) error
}
