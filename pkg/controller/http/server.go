package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/frontend"
)

// DefaultMaxUploadSize bounds a single multipart request body
const DefaultMaxUploadSize = 10 << 20 // 10 MiB

// config holds internal HTTP server configuration
type config struct {
	addr          string
	authSecret    string
	maxUploadSize int64
	sentry        bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithAuthSecret enables bearer-token authentication on /api routes
func WithAuthSecret(secret string) Option {
	return func(c *config) {
		c.authSecret = secret
	}
}

// WithMaxUploadSize overrides the multipart body limit
func WithMaxUploadSize(size int64) Option {
	return func(c *config) {
		if size > 0 {
			c.maxUploadSize = size
		}
	}
}

// WithSentry wraps the router with the Sentry HTTP integration. The caller is
// responsible for sentry.Init.
func WithSentry() Option {
	return func(c *config) {
		c.sentry = true
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server serving the UI, the analyze API and the
// OpenAPI document. The embedded API document is validated before the server
// is returned.
func NewServer(
	ctx context.Context,
	analyzerUC interfaces.AnalyzerUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:          "localhost:8080",
		maxUploadSize: DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateDocument(ctx); err != nil {
		return nil, goerr.Wrap(err, "embedded OpenAPI document is invalid")
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check and API document
	router.Get("/health", handleHealth)
	router.Get("/openapi.yaml", handleOpenAPI)

	// Browser UI
	router.Get("/", handleIndex)
	router.Handle("/static/*", http.StripPrefix("/static/", frontend.StaticHandler()))

	// Analyze API
	analyzeHandler := NewAnalyzeHandler(analyzerUC, cfg.maxUploadSize)
	router.Route("/api", func(r chi.Router) {
		if cfg.authSecret != "" {
			r.Use(BearerAuthMiddleware(cfg.authSecret))
		}
		r.Post("/analyze/image", analyzeHandler.AnalyzeImage)
		r.Post("/analyze/code", analyzeHandler.AnalyzeCode)
		r.Post("/analyze/combined", analyzeHandler.AnalyzeCombined)
		r.Get("/analysis/{id}", analyzeHandler.GetAnalysis)
		r.Get("/analyses", analyzeHandler.ListAnalyses)
	})

	var handler http.Handler = router
	if cfg.sentry {
		handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           handler,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}

// handleIndex serves the embedded single-page UI
func handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := frontend.Index()
	if err != nil {
		ctxlog.From(r.Context()).Error("failed to load index page", "error", err)
		writeError(w, goerr.Wrap(err, "failed to load page"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
