// Package api serves the validation engine over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/taxocheck/pkg/config"
	"github.com/matzehuels/taxocheck/pkg/observability"
	"github.com/matzehuels/taxocheck/pkg/pipeline"
)

// Server is the HTTP API server.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Server
	logger *log.Logger
	hooks  observability.Hooks
	router *chi.Mux
	server *http.Server
}

// NewServer creates a server validating through runner. The runner's hooks
// also receive HTTP events.
func NewServer(runner *pipeline.Runner, cfg config.Server, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: logger,
		hooks:  runner.Hooks.WithDefaults(),
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.WriteTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.WriteTimeout))
	}
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/validate", s.handleValidate)
		r.Post("/tree", s.handleTree)
		r.Post("/leaves", s.handleLeaves)
	})
}

// Start listens on the configured address until [Server.Shutdown] is called,
// then returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server. Calling it before or during Start is
// safe; a later Start returns http.ErrServerClosed at once.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// requestLogger logs one line per request and feeds the HTTP hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		s.hooks.HTTP.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		d := time.Since(start)
		s.hooks.HTTP.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), d)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", d)
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
