// Package server implements the phrasenet HTTP API.
//
// Routes:
//
//	POST /analyze          multipart form; runs one analysis
//	GET  /analysis/text    the most recently analyzed text
//	GET  /api/health       liveness probe
//	GET  /api/annotators   registered annotator choices
//
// Failures are returned as {"code": ..., "detail": ...} with the status
// chosen by errors.HTTPStatus.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator"

	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/pipeline"
)

const (
	DefaultAddr           = ":8000"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultMaxUpload      = 32 << 20
	shutdownTimeout       = 10 * time.Second
)

// Extractor turns an uploaded file into text.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// Options configures a [Server]. Zero fields take the defaults above.
type Options struct {
	Addr             string
	CORSOrigins      []string
	RequestTimeout   time.Duration
	MaxUploadBytes   int64
	DefaultAnnotator string
	DefaultMaxNodes  int
	Stopwords        []string // Always hidden, in addition to per-request hidden_words
}

// Server serves analyses over HTTP. It is safe for concurrent use.
type Server struct {
	runner    *pipeline.Runner
	registry  *annotate.Registry
	extractor Extractor
	opts      Options
	logger    *log.Logger
	validate  *validator.Validate

	mu       sync.RWMutex
	lastText *string
}

// New creates a server. The runner's registry is listed by
// GET /api/annotators.
func New(runner *pipeline.Runner, extractor Extractor, opts Options, logger *log.Logger) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUpload
	}
	if opts.DefaultAnnotator == "" {
		opts.DefaultAnnotator = pipeline.DefaultAnnotator
	}
	if opts.DefaultMaxNodes <= 0 {
		opts.DefaultMaxNodes = pipeline.DefaultMaxNodes
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{
		runner:    runner,
		registry:  runner.Registry,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Post("/analyze", s.handleAnalyze)
	r.Get("/analysis/text", s.handleLastText)
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/annotators", s.handleAnnotators)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Detail: "no route for " + r.URL.Path})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like [Server.Run] on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// LastText returns the most recently analyzed text.
func (s *Server) LastText() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastText == nil {
		return "", false
	}
	return *s.lastText, true
}

func (s *Server) setLastText(text string) {
	s.mu.Lock()
	s.lastText = &text
	s.mu.Unlock()
}
