package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestOpenAPIDocument(t *testing.T) {
	server := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Header().Get("Content-Type")).Contains("yaml")

	body := w.Body.String()
	gt.String(t, body).Contains("openapi:")
	for _, path := range []string{
		"/api/analyze/image",
		"/api/analyze/code",
		"/api/analyze/combined",
		"/api/analysis/{id}",
		"/api/analyses",
	} {
		if !strings.Contains(body, path) {
			t.Errorf("OpenAPI document is missing path %s", path)
		}
	}
}

func TestIndexPage(t *testing.T) {
	server := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Header().Get("Content-Type")).Contains("text/html")
	gt.String(t, w.Body.String()).Contains("Multimodal Technical Analysis")
}

func TestStaticAssets(t *testing.T) {
	server := newTestServer(t, &mockAnalyzer{})

	for _, asset := range []string{"/static/app.js", "/static/styles.css"} {
		req := httptest.NewRequest(http.MethodGet, asset, nil)
		w := httptest.NewRecorder()

		server.Handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want %d", asset, w.Code, http.StatusOK)
		}
	}
}
