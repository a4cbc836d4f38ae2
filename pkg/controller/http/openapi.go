package http

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed openapi.yaml
var openapiDocument []byte

// validateDocument loads and validates the embedded OpenAPI document. Run at
// server construction so a broken document fails fast rather than being
// served.
func validateDocument(ctx context.Context) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return goerr.Wrap(err, "failed to load OpenAPI document")
	}
	if err := doc.Validate(ctx); err != nil {
		return goerr.Wrap(err, "OpenAPI document validation failed")
	}
	return nil
}

// handleOpenAPI serves the embedded API document
func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapiDocument)
}
