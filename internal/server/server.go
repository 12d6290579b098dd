// Package server exposes the arrangement pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	POST   /v1/arrangements            build a scene, store the result
//	GET    /v1/arrangements            list stored arrangements
//	GET    /v1/arrangements/{id}       fetch one (?format=json|dot|svg|graphviz)
//	GET    /v1/arrangements/{id}/dot   DOT source, same as ?format=dot
//	DELETE /v1/arrangements/{id}
//	POST   /v1/intersections           run the segment sweep on a scene
//
// Request bodies are JSON scenes (see package scene). Errors are JSON bodies
// whose status follows the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/planar/pkg/observability"
	"github.com/matzehuels/planar/pkg/pipeline"
	"github.com/matzehuels/planar/pkg/store"
)

// Defaults for [Config].
const (
	DefaultAddr      = ":8080"
	DefaultTimeout   = 60 * time.Second
	DefaultListLimit = 50
	MaxListLimit     = 500

	shutdownTimeout = 10 * time.Second
)

// Config configures a [Server]. Zero fields take defaults.
type Config struct {
	Addr      string
	Runner    *pipeline.Runner
	Store     store.Store
	Logger    *log.Logger
	Counters  *observability.Counters
	BodyLimit int64
	Timeout   time.Duration
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a server. A nil store means an in-memory store and a nil
// runner means an uncached runner.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/arrangements", func(r chi.Router) {
			r.Post("/", s.handle(s.createArrangement))
			r.Get("/", s.handle(s.listArrangements))
			r.Get("/{id}", s.handle(s.getArrangement))
			r.Get("/{id}/dot", s.handle(s.getArrangementDOT))
			r.Delete("/{id}", s.handle(s.deleteArrangement))
		})
		r.Post("/intersections", s.handle(s.findIntersections))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases the store and the runner's cache.
func (s *Server) Close(ctx context.Context) error {
	return stderrors.Join(s.cfg.Store.Close(ctx), s.cfg.Runner.Close())
}
