// ABOUTME: chi HTTP API over the generator and the saved template store.
// ABOUTME: Routes, dependencies and the http.Handler entry point.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfulp2020/forgefitness/internal/generator"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/observability"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	gen      *generator.Generator
	repo     storage.Repository
	defaults models.GenerationRequest
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured. repo may be nil, in
// which case the template endpoints answer 503.
func New(gen *generator.Generator, repo storage.Repository, defaults models.GenerationRequest, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		gen:      gen,
		repo:     repo,
		defaults: defaults,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Metrics)
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", observability.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/splits", s.handleListSplits)
		r.Get("/splits/{id}/days/{days}", s.handleResolveDays)
		r.Post("/programs", s.handleGenerate)
		r.Get("/workouts/{name}/exercises", s.handleLibraryExercises)
		r.Get("/library/verify", s.handleVerify)
		r.Get("/prescriptions/parse", s.handleParse)
		r.Get("/exercises/normalize", s.handleNormalize)

		r.Route("/templates", func(r chi.Router) {
			r.Use(s.requireRepo)
			r.Get("/", s.handleListTemplates)
			r.Get("/{id}", s.handleGetTemplate)
			r.Delete("/{id}", s.handleDeleteTemplate)
		})
	})
}
