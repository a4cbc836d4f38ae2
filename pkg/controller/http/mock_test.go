package http_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

// mockAnalyzer is a function-field double for the analyzer use case
type mockAnalyzer struct {
	analyzeImage    func(ctx context.Context, image *model.Upload) (*model.Analysis, error)
	analyzeCode     func(ctx context.Context, code *model.Upload) (*model.Analysis, error)
	analyzeCombined func(ctx context.Context, image, code *model.Upload, userContext string) (*model.Analysis, error)
	getAnalysis     func(ctx context.Context, id types.AnalysisID) (*model.Analysis, error)
	listAnalyses    func(ctx context.Context, limit int) ([]*model.Analysis, error)
}

func (m *mockAnalyzer) AnalyzeImage(ctx context.Context, image *model.Upload) (*model.Analysis, error) {
	return m.analyzeImage(ctx, image)
}

func (m *mockAnalyzer) AnalyzeCode(ctx context.Context, code *model.Upload) (*model.Analysis, error) {
	return m.analyzeCode(ctx, code)
}

func (m *mockAnalyzer) AnalyzeCombined(ctx context.Context, image, code *model.Upload, userContext string) (*model.Analysis, error) {
	return m.analyzeCombined(ctx, image, code, userContext)
}

func (m *mockAnalyzer) GetAnalysis(ctx context.Context, id types.AnalysisID) (*model.Analysis, error) {
	return m.getAnalysis(ctx, id)
}

func (m *mockAnalyzer) ListAnalyses(ctx context.Context, limit int) ([]*model.Analysis, error) {
	return m.listAnalyses(ctx, limit)
}

func sampleAnalysis(analysisType types.AnalysisType) *model.Analysis {
	return &model.Analysis{
		ID:              types.AnalysisID("test-analysis-1"),
		Type:            analysisType,
		Result: &model.ImageResult{Description: "a dashboard"},
		Recommendations: []string{
			"Address the issue: request timeout",
			"Address the issue: stale cache indicator",
		},
		CreatedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

// multipartBody builds a multipart form with file fields and plain values
func multipartBody(files map[string][]byte, values map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+".bin")
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", err
		}
	}
	for field, value := range values {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

func newMultipartRequest(path string, files map[string][]byte, values map[string]string) (*http.Request, error) {
	body, contentType, err := multipartBody(files, values)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return req, nil
}
