// Package httpapi exposes the job submission and status API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"reelsmith/internal/jobs"
	"reelsmith/internal/metrics"
)

// HealthChecker probes one upstream collaborator.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Server struct {
	queue   *jobs.Queue
	checks  map[string]HealthChecker
	metrics *metrics.Metrics

	router chi.Router
	server *http.Server
}

type Option func(*Server)

// WithHealthCheck registers a named upstream probe for GET /health.
func WithHealthCheck(name string, check HealthChecker) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// WithMetrics enables the /metrics endpoint and request counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func NewServer(queue *jobs.Queue, opts ...Option) *Server {
	s := &Server{
		queue:  queue,
		checks: make(map[string]HealthChecker),
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(s.countRequests)

	s.router.Route("/api/jobs", func(r chi.Router) {
		r.Post("/", s.handleCreateJob)
		r.Get("/", s.handleListJobs)
		r.Get("/{id}", s.handleJobStatus)
	})
	s.router.Get("/health", s.handleHealth)

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler(func() {
			s.metrics.SetQueueDepth(len(s.queue.List()))
		}))
	}
}

// countRequests feeds the request and error counters when metrics are wired.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		s.metrics.IncRequests()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if ww.Status() >= 400 {
			s.metrics.IncErrors()
		}
	})
}
