// Package simulator is the in-process mock backend: a REST route table over
// an in-memory seeded model, with randomized latency and fault injection.
//
// Its whole design goal is fidelity to a real network boundary — status
// codes, pagination envelopes and error shapes match the real server in
// internal/api, so the client cannot tell them apart.
package simulator

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// Config tunes the simulated network behavior.
type Config struct {
	LatencyMin   time.Duration
	LatencyMax   time.Duration
	ErrorRate    float64 // 0.0–1.0 probability of an injected 5xx
	RateLimitRPS float64 // 0 disables throttling

	// Fallback serves requests no API route matches, so non-API asset
	// requests pass through unaffected. Nil means plain 404.
	Fallback http.Handler

	Logger *logger.Logger
}

// Server is the simulated backend. It is an http.Handler; Transport() adapts
// it to an http.RoundTripper for socketless in-process use.
type Server struct {
	router *chi.Mux
	store  *memStore
	log    *logger.Logger
}

// New builds a simulator seeded with the given fixtures. The API surface is
// mounted under /api/v1.
func New(cfg Config, jobs []models.Job, candidates []models.Candidate, assessments []models.Assessment) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		router: chi.NewRouter(),
		store:  newMemStore(jobs, candidates, assessments),
		log:    log,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(throttle(cfg.RateLimitRPS))
		r.Use(latency(cfg.LatencyMin, cfg.LatencyMax))
		r.Use(faults(cfg.ErrorRate))

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", s.listJobs)
			r.Post("/", s.createJob)
			r.Post("/reorder", s.reorderJobs)
			r.Get("/slug/{slug}", s.getJobBySlug)
			r.Get("/{id}", s.getJob)
			r.Put("/{id}", s.updateJob)
			r.Patch("/{id}/archive", s.archiveJob)
			r.Patch("/{id}/unarchive", s.unarchiveJob)
			r.Delete("/{id}", s.deleteJob)
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", s.listCandidates)
			r.Post("/", s.createCandidate)
			r.Get("/{id}", s.getCandidate)
			r.Put("/{id}", s.updateCandidate)
			r.Patch("/{id}/stage", s.setCandidateStage)
			r.Delete("/{id}", s.deleteCandidate)
			r.Get("/{id}/timeline", s.getTimeline)
			r.Get("/{id}/notes", s.listNotes)
			r.Post("/{id}/notes", s.createNote)
		})

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", s.listAssessments)
			r.Post("/", s.createAssessment)
			r.Get("/{id}", s.getAssessment)
			r.Put("/{id}", s.updateAssessment)
			r.Delete("/{id}", s.deleteAssessment)
			r.Post("/{id}/submit", s.submitAssessment)
		})

		r.Get("/analytics/dashboard", s.analyticsDashboard)
		r.Get("/search", s.search)
		r.Post("/files/upload", s.uploadFile)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "endpoint not found")
		})
	})

	// anything outside /api/v1 passes through
	if cfg.Fallback != nil {
		s.router.NotFound(cfg.Fallback.ServeHTTP)
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
