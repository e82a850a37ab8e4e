// Package api serves radial layouts over HTTP.
//
// Routes:
//
//	GET    /healthz          liveness and build info
//	POST   /layouts          compute and store a layout
//	GET    /layouts          list stored layouts, newest first
//	GET    /layouts/{id}     fetch a stored layout (?format=json|yaml|dot)
//	DELETE /layouts/{id}     delete a stored layout
//	POST   /grid             preview the empty grid for a set of options
//	GET    /stats            in-process counters, when Config.Stats is set
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/radialtree/pkg/observability"
	"github.com/matzehuels/radialtree/pkg/pipeline"
	"github.com/matzehuels/radialtree/pkg/store"
)

// Default server limits.
const (
	DefaultMaxBodyBytes = 8 << 20
	DefaultListLimit    = 50
	DefaultTimeout      = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner       *pipeline.Runner
	Store        store.Store
	Logger       *log.Logger
	Stats        *observability.Counters // Served at GET /stats when non-nil
	MaxBodyBytes int64         // Request body limit; defaults to DefaultMaxBodyBytes
	Timeout      time.Duration // Per-request timeout; defaults to DefaultTimeout
}

// Server is the HTTP front end of the layout pipeline.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	stats   *observability.Counters
	maxBody int64
	timeout time.Duration
	router  chi.Router
}

// New creates a server. A nil Runner gets an uncached runner and a nil Store
// an in-memory store.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		stats:   cfg.Stats,
		maxBody: cfg.MaxBodyBytes,
		timeout: cfg.Timeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/grid", s.handleGrid)
	if s.stats != nil {
		r.Get("/stats", s.handleStats)
	}
	r.Route("/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Get("/{id}", s.handleGetLayout)
		r.Delete("/{id}", s.handleDeleteLayout)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		observability.HTTP().OnRequest(r.Context(), r.Method, route)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
