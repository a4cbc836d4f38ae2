package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AnalyzeHandler handles the multipart analyze endpoints and stored-analysis
// lookups
type AnalyzeHandler struct {
	analyzerUC    interfaces.AnalyzerUseCase
	maxUploadSize int64
}

// NewAnalyzeHandler creates a new AnalyzeHandler
func NewAnalyzeHandler(analyzerUC interfaces.AnalyzerUseCase, maxUploadSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzerUC:    analyzerUC,
		maxUploadSize: maxUploadSize,
	}
}

// AnalyzeImage handles POST /api/analyze/image (multipart field "file")
func (h *AnalyzeHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if !h.limitBody(w, r) {
		return
	}

	image, err := readUpload(r, "file")
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	analysis, err := h.analyzerUC.AnalyzeImage(r.Context(), image)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// AnalyzeCode handles POST /api/analyze/code (multipart field "code_file")
func (h *AnalyzeHandler) AnalyzeCode(w http.ResponseWriter, r *http.Request) {
	if !h.limitBody(w, r) {
		return
	}

	code, err := readUpload(r, "code_file")
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	analysis, err := h.analyzerUC.AnalyzeCode(r.Context(), code)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// AnalyzeCombined handles POST /api/analyze/combined (fields "image_file",
// "code_file" and optional "context" text)
func (h *AnalyzeHandler) AnalyzeCombined(w http.ResponseWriter, r *http.Request) {
	if !h.limitBody(w, r) {
		return
	}

	image, err := readUpload(r, "image_file")
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}
	code, err := readUpload(r, "code_file")
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}
	userContext := r.FormValue("context")

	analysis, err := h.analyzerUC.AnalyzeCombined(r.Context(), image, code, userContext)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// GetAnalysis handles GET /api/analysis/{id}
func (h *AnalyzeHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := types.AnalysisID(chi.URLParam(r, "id"))

	analysis, err := h.analyzerUC.GetAnalysis(r.Context(), id)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// ListAnalyses handles GET /api/analyses?limit=N
func (h *AnalyzeHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, goerr.New("limit must be a positive integer"), http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	analyses, err := h.analyzerUC.ListAnalyses(r.Context(), limit)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

// limitBody rejects requests whose declared length exceeds the upload limit
// and bounds the body for chunked requests that declare none. Reports whether
// the request may proceed.
func (h *AnalyzeHandler) limitBody(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > h.maxUploadSize {
		writeError(w, goerr.New("upload too large", goerr.V("limit", h.maxUploadSize)), http.StatusRequestEntityTooLarge)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	return true
}

// writeAnalyzeError maps domain errors to HTTP statuses
func (h *AnalyzeHandler) writeAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := ctxlog.From(r.Context())

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, types.ErrInvalidUpload):
		writeError(w, err, http.StatusBadRequest)
	case errors.Is(err, types.ErrAnalysisNotFound):
		writeError(w, err, http.StatusNotFound)
	case errors.As(err, &maxBytesErr):
		writeError(w, goerr.New("upload too large", goerr.V("limit", h.maxUploadSize)), http.StatusRequestEntityTooLarge)
	default:
		logger.Error("analysis request failed", "error", err, "path", r.URL.Path)
		writeError(w, err, http.StatusInternalServerError)
	}
}

// readUpload extracts one file from a multipart form field
func readUpload(r *http.Request, field string) (*model.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, goerr.Wrap(types.ErrInvalidUpload, "missing form field", goerr.V("field", field), goerr.V("cause", err.Error()))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read upload", goerr.V("field", field))
	}

	return &model.Upload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
