package interfaces

import (
	"context"

	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

// AnalyzerUseCase defines the analysis operations exposed over HTTP and the CLI
type AnalyzerUseCase interface {
	// AnalyzeImage analyzes a technical diagram or screenshot
	AnalyzeImage(ctx context.Context, image *model.Upload) (*model.Analysis, error)

	// AnalyzeCode analyzes an uploaded code file
	AnalyzeCode(ctx context.Context, code *model.Upload) (*model.Analysis, error)

	// AnalyzeCombined analyzes an image and a code file together, with
	// optional free-text context from the user
	AnalyzeCombined(ctx context.Context, image, code *model.Upload, userContext string) (*model.Analysis, error)

	// GetAnalysis returns a stored analysis, or types.ErrAnalysisNotFound
	GetAnalysis(ctx context.Context, id types.AnalysisID) (*model.Analysis, error)

	// ListAnalyses returns up to limit stored analyses, newest first
	ListAnalyses(ctx context.Context, limit int) ([]*model.Analysis, error)
}
