package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-fuego/fuego"
	"github.com/go-fuego/fuego/option"

	"github.com/talentflow/talentflow/internal/logger"
)

// Server is the Fuego API server: the real backend the simulator imitates.
// Both serve the same routes and envelopes, so the client works against
// either without changes.
type Server struct {
	fuego *fuego.Server
	deps  *Dependencies
	log   *logger.Logger
}

// Dependencies contains all service dependencies.
type Dependencies struct {
	Jobs        JobsStore
	Candidates  CandidatesStore
	Assessments AssessmentsStore
	Notes       NotesStore
	Responses   ResponsesStore
	Settings    SettingsStore
	Hub         HubBroadcaster
	Available   func() bool
}

// Config holds API server configuration.
type Config struct {
	Port        int
	Title       string
	Description string
	Version     string
}

// NewServer creates a new Fuego API server.
func NewServer(cfg *Config, deps *Dependencies, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}

	s := fuego.NewServer(
		fuego.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		fuego.WithEngineOptions(
			fuego.WithOpenAPIConfig(fuego.OpenAPIConfig{
				PrettyFormatJSON: true,
				JSONFilePath:     "openapi.json",
				SwaggerURL:       "/docs",
				SpecURL:          "/openapi.json",
				UIHandler: func(specURL string) http.Handler {
					return ScalarHandler(specURL, cfg.Title, cfg.Description)
				},
			}),
		),
	)

	s.OpenAPI.Description().Info.Title = cfg.Title
	s.OpenAPI.Description().Info.Description = cfg.Description
	s.OpenAPI.Description().Info.Version = cfg.Version

	// Chi middleware works directly: Fuego is net/http compatible.
	fuego.Use(s, middleware.RequestID)
	fuego.Use(s, middleware.RealIP)
	fuego.Use(s, middleware.Logger)
	fuego.Use(s, middleware.Recoverer)

	srv := &Server{
		fuego: s,
		deps:  deps,
		log:   log,
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) registerRoutes() {
	fuego.Get(s.fuego, "/health", s.healthCheck,
		option.Summary("Health Check"),
		option.Description("Returns the health status of the API and its storage engine"),
		option.Tags("System"),
	)

	jobsGroup := fuego.Group(s.fuego, "/api/v1/jobs",
		option.Tags("Jobs"),
	)

	fuego.Get(jobsGroup, "/", s.listJobs,
		option.Summary("List Jobs"),
		option.Description("Returns a paginated list of jobs with optional filtering"),
		option.Query("status", "Filter by job status (active, draft, archived, closed)"),
		option.Query("department", "Filter by department"),
		option.Query("search", "Case-insensitive substring match over title and description"),
		option.Query("page", "Page number (1-indexed, default: 1)"),
		option.Query("limit", "Items per page (default: 20, max: 100)"),
	)

	fuego.Post(jobsGroup, "/", s.createJob,
		option.Summary("Create Job"),
		option.Description("Creates a job; a unique slug is derived from the title"),
	)

	fuego.Post(jobsGroup, "/reorder", s.reorderJobs,
		option.Summary("Reorder Jobs"),
		option.Description("Persists a new manual ordering of the job board"),
	)

	fuego.Get(jobsGroup, "/slug/{slug}", s.getJobBySlug,
		option.Summary("Get Job By Slug"),
		option.Description("Returns a single job by its URL slug and counts the view"),
	)

	fuego.Get(jobsGroup, "/{id}", s.getJob,
		option.Summary("Get Job"),
		option.Description("Returns a single job by ID"),
	)

	fuego.Put(jobsGroup, "/{id}", s.updateJob,
		option.Summary("Update Job"),
		option.Description("Updates a job; a changed title re-derives the slug"),
	)

	fuego.Patch(jobsGroup, "/{id}/archive", s.archiveJob,
		option.Summary("Archive Job"),
	)

	fuego.Patch(jobsGroup, "/{id}/unarchive", s.unarchiveJob,
		option.Summary("Unarchive Job"),
	)

	fuego.Delete(jobsGroup, "/{id}", s.deleteJob,
		option.Summary("Delete Job"),
		option.Description("Deletes a job and cascades to its candidates and assessments"),
	)

	candidatesGroup := fuego.Group(s.fuego, "/api/v1/candidates",
		option.Tags("Candidates"),
	)

	fuego.Get(candidatesGroup, "/", s.listCandidates,
		option.Summary("List Candidates"),
		option.Query("jobId", "Filter by job"),
		option.Query("stage", "Filter by pipeline stage"),
		option.Query("search", "Case-insensitive substring match over name and email"),
		option.Query("page", "Page number (1-indexed, default: 1)"),
		option.Query("limit", "Items per page (default: 20, max: 100)"),
	)

	fuego.Post(candidatesGroup, "/", s.createCandidate,
		option.Summary("Create Candidate"),
		option.Description("Creates a candidate in the applied stage with an initial timeline entry"),
	)

	fuego.Get(candidatesGroup, "/{id}", s.getCandidate,
		option.Summary("Get Candidate"),
		option.Description("Returns a candidate with timeline and notes"),
	)

	fuego.Put(candidatesGroup, "/{id}", s.updateCandidate,
		option.Summary("Update Candidate"),
		option.Description("Updates candidate profile fields; stage moves go through the stage endpoint"),
	)

	fuego.Patch(candidatesGroup, "/{id}/stage", s.setCandidateStage,
		option.Summary("Change Stage"),
		option.Description("Moves a candidate through the pipeline and appends a timeline entry"),
	)

	fuego.Delete(candidatesGroup, "/{id}", s.deleteCandidate,
		option.Summary("Delete Candidate"),
		option.Description("Deletes a candidate and cascades to notes, timeline and responses"),
	)

	fuego.Get(candidatesGroup, "/{id}/timeline", s.getTimeline,
		option.Summary("Get Timeline"),
		option.Description("Returns the candidate's stage history, oldest first"),
	)

	fuego.Get(candidatesGroup, "/{id}/notes", s.listNotes,
		option.Summary("List Notes"),
	)

	fuego.Post(candidatesGroup, "/{id}/notes", s.createNote,
		option.Summary("Add Note"),
		option.Description("Adds a note; @mentions are extracted from the content"),
	)

	fuego.Get(candidatesGroup, "/{id}/responses", s.listCandidateResponses,
		option.Summary("List Candidate Responses"),
	)

	assessmentsGroup := fuego.Group(s.fuego, "/api/v1/assessments",
		option.Tags("Assessments"),
	)

	fuego.Get(assessmentsGroup, "/", s.listAssessments,
		option.Summary("List Assessments"),
		option.Query("jobId", "Filter by job"),
		option.Query("status", "Filter by status (draft, published, archived)"),
		option.Query("page", "Page number (1-indexed, default: 1)"),
		option.Query("limit", "Items per page (default: 20, max: 100)"),
	)

	fuego.Post(assessmentsGroup, "/", s.createAssessment,
		option.Summary("Create Assessment"),
		option.Description("Creates an assessment with its sections and questions"),
	)

	fuego.Get(assessmentsGroup, "/{id}", s.getAssessment,
		option.Summary("Get Assessment"),
		option.Description("Returns an assessment with ordered sections and questions"),
	)

	fuego.Put(assessmentsGroup, "/{id}", s.updateAssessment,
		option.Summary("Update Assessment"),
		option.Description("Updates an assessment; a non-empty sections list replaces the tree"),
	)

	fuego.Delete(assessmentsGroup, "/{id}", s.deleteAssessment,
		option.Summary("Delete Assessment"),
		option.Description("Deletes an assessment and its responses"),
	)

	fuego.Post(assessmentsGroup, "/{id}/submit", s.submitAssessment,
		option.Summary("Submit Assessment"),
		option.Description("Submits a completed answer set; auto-gradable questions are scored"),
	)

	fuego.Get(assessmentsGroup, "/{id}/responses", s.listAssessmentResponses,
		option.Summary("List Assessment Responses"),
	)

	responsesGroup := fuego.Group(s.fuego, "/api/v1/responses",
		option.Tags("Responses"),
	)

	fuego.Post(responsesGroup, "/start/{assessmentId}", s.startResponse,
		option.Summary("Start Response"),
		option.Description("Opens a draft response for a candidate"),
	)

	fuego.Put(responsesGroup, "/{id}/draft", s.saveResponseDraft,
		option.Summary("Save Draft"),
		option.Description("Saves in-progress answers; submitted responses are immutable"),
	)

	fuego.Post(responsesGroup, "/{id}/submit", s.submitResponse,
		option.Summary("Submit Response"),
		option.Description("Finalizes and scores a draft response"),
	)

	fuego.Get(responsesGroup, "/{id}", s.getResponse,
		option.Summary("Get Response"),
	)

	settingsGroup := fuego.Group(s.fuego, "/api/v1/settings",
		option.Tags("Settings"),
	)

	fuego.Get(settingsGroup, "/", s.listSettings,
		option.Summary("List Settings"),
	)

	fuego.Put(settingsGroup, "/{key}", s.setSetting,
		option.Summary("Set Setting"),
	)

	fuego.Get(s.fuego, "/api/v1/analytics/dashboard", s.getDashboard,
		option.Summary("Dashboard"),
		option.Description("Returns aggregate counters for the dashboard"),
		option.Tags("Analytics"),
	)

	fuego.Get(s.fuego, "/api/v1/search", s.search,
		option.Summary("Search"),
		option.Description("Case-insensitive search across jobs, candidates and assessments"),
		option.Query("q", "Search query"),
		option.Tags("Search"),
	)
}

// Start starts the API server.
func (s *Server) Start() error {
	return s.fuego.Run()
}

// Mux returns the underlying ServeMux for mounting additional routes,
// like the websocket endpoint.
func (s *Server) Mux() *http.ServeMux {
	return s.fuego.Mux
}
