package api

import (
	"github.com/talentflow/talentflow/internal/models"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Message string `json:"message" description:"Error message"`
	Status  int    `json:"status" description:"HTTP status code"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status" example:"ok" description:"Health status"`
	Storage string `json:"storage" example:"ok" description:"Storage engine status"`
	Version string `json:"version" example:"dev" description:"Application version"`
}

// Meta carries the pagination envelope metadata.
type Meta struct {
	Total      int `json:"total" description:"Total number of matching records"`
	Page       int `json:"page" description:"Current page number"`
	Limit      int `json:"limit" description:"Items per page"`
	TotalPages int `json:"totalPages" description:"Total number of pages"`
}

// ListResponse is the paginated list envelope shared by every collection.
type ListResponse[T any] struct {
	Data []T  `json:"data" description:"Page of records"`
	Meta Meta `json:"meta" description:"Pagination metadata"`
}

// StatusResponse acknowledges a mutation with no body to return.
type StatusResponse struct {
	Status string `json:"status" example:"deleted"`
}

// JobCreateRequest contains the request body for creating a job.
type JobCreateRequest struct {
	Title            string   `json:"title" validate:"required" description:"Job title"`
	Department       string   `json:"department" description:"Owning department"`
	Location         string   `json:"location" description:"Job location"`
	EmploymentType   string   `json:"employmentType" description:"full-time, part-time, contract or internship"`
	ExperienceLevel  string   `json:"experienceLevel" description:"junior, mid, senior or lead"`
	SalaryMin        *int     `json:"salaryMin,omitempty" description:"Salary range lower bound"`
	SalaryMax        *int     `json:"salaryMax,omitempty" description:"Salary range upper bound"`
	Status           string   `json:"status" description:"active, draft, archived or closed (default draft)"`
	Description      string   `json:"description" description:"Role description"`
	Requirements     string   `json:"requirements" description:"Role requirements"`
	Responsibilities string   `json:"responsibilities" description:"Role responsibilities"`
	Benefits         string   `json:"benefits" description:"Offered benefits"`
	Tags             []string `json:"tags,omitempty" description:"Free-form tags"`
}

// JobUpdateRequest contains the request body for updating a job. Empty
// fields are left untouched.
type JobUpdateRequest struct {
	Title            string   `json:"title,omitempty"`
	Department       string   `json:"department,omitempty"`
	Location         string   `json:"location,omitempty"`
	EmploymentType   string   `json:"employmentType,omitempty"`
	ExperienceLevel  string   `json:"experienceLevel,omitempty"`
	SalaryMin        *int     `json:"salaryMin,omitempty"`
	SalaryMax        *int     `json:"salaryMax,omitempty"`
	Status           string   `json:"status,omitempty"`
	Description      string   `json:"description,omitempty"`
	Requirements     string   `json:"requirements,omitempty"`
	Responsibilities string   `json:"responsibilities,omitempty"`
	Benefits         string   `json:"benefits,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// JobsReorderRequest contains the request body for reordering the board.
type JobsReorderRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1" description:"Job IDs in their new order"`
}

// CandidateCreateRequest contains the request body for creating a candidate.
type CandidateCreateRequest struct {
	Name       string   `json:"name" validate:"required" description:"Candidate full name"`
	Email      string   `json:"email" validate:"required,email" description:"Contact email"`
	Phone      string   `json:"phone,omitempty" description:"Contact phone"`
	Location   string   `json:"location,omitempty"`
	JobID      uint     `json:"jobId" description:"Job applied for"`
	Experience *int     `json:"experience,omitempty" description:"Years of experience"`
	Skills     []string `json:"skills,omitempty"`
}

// CandidateUpdateRequest contains the request body for updating a
// candidate. Stage is deliberately absent; stage moves go through the
// stage endpoint so history stays consistent.
type CandidateUpdateRequest struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	Experience *int     `json:"experience,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// StageChangeRequest contains the request body for moving a candidate
// through the pipeline.
type StageChangeRequest struct {
	Stage string `json:"stage" validate:"required" description:"Target stage"`
	Note  string `json:"note,omitempty" description:"Optional note recorded in the timeline"`
	User  string `json:"user,omitempty" description:"Who made the move"`
}

// NoteCreateRequest contains the request body for adding a note.
type NoteCreateRequest struct {
	Content string `json:"content" validate:"required" description:"Note body; @mentions are extracted automatically"`
	Author  string `json:"author,omitempty" description:"Note author"`
}

// AssessmentCreateRequest contains the request body for creating an
// assessment with its full section tree.
type AssessmentCreateRequest struct {
	Title        string                     `json:"title" validate:"required" description:"Assessment title"`
	Description  string                     `json:"description,omitempty"`
	JobID        uint                       `json:"jobId" description:"Job the assessment belongs to"`
	Status       string                     `json:"status,omitempty" description:"draft, published or archived (default draft)"`
	TimeLimit    *int                       `json:"timeLimit,omitempty" description:"Time limit in minutes"`
	PassingScore *int                       `json:"passingScore,omitempty" description:"Passing threshold in percent"`
	Sections     []models.AssessmentSection `json:"sections,omitempty"`
}

// AssessmentUpdateRequest contains the request body for updating an
// assessment. A non-empty Sections replaces the whole section tree.
type AssessmentUpdateRequest struct {
	Title        string                     `json:"title,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Status       string                     `json:"status,omitempty"`
	TimeLimit    *int                       `json:"timeLimit,omitempty"`
	PassingScore *int                       `json:"passingScore,omitempty"`
	Sections     []models.AssessmentSection `json:"sections,omitempty"`
}

// ResponseStartRequest opens a draft response for a candidate.
type ResponseStartRequest struct {
	CandidateID uint `json:"candidateId" validate:"required" description:"Candidate taking the assessment"`
}

// ResponseDraftRequest saves in-progress answers.
type ResponseDraftRequest struct {
	Answers models.JSONMap `json:"answers" description:"Answers keyed by question ID"`
}

// ResponseSubmitRequest finalizes a response for scoring.
type ResponseSubmitRequest struct {
	Answers   models.JSONMap `json:"answers" description:"Answers keyed by question ID"`
	TimeSpent int            `json:"timeSpent" description:"Seconds spent"`
}

// SubmitAssessmentRequest is the one-shot submit used by the public
// assessment form: start and submit in a single call.
type SubmitAssessmentRequest struct {
	CandidateID uint           `json:"candidateId" validate:"required"`
	Answers     models.JSONMap `json:"answers"`
	TimeSpent   int            `json:"timeSpent"`
}

// SettingRequest sets one preference key.
type SettingRequest struct {
	Value string `json:"value" description:"Setting value"`
}

// DashboardResponse is the aggregate counter set for the dashboard.
type DashboardResponse struct {
	TotalJobs         int            `json:"totalJobs"`
	TotalCandidates   int            `json:"totalCandidates"`
	TotalAssessments  int            `json:"totalAssessments"`
	JobsByStatus      map[string]int `json:"jobsByStatus"`
	CandidatesByStage map[string]int `json:"candidatesByStage"`
	HireRate          float64        `json:"hireRate"`

	ApplicationsOverTime []models.WeeklyCount `json:"applicationsOverTime" description:"Weekly application counts, oldest bucket first"`
}

// SearchResult is one hit from a cross-entity search.
type SearchResult struct {
	Type  string `json:"type" description:"job, candidate or assessment"`
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Extra string `json:"extra,omitempty"`
}

// SearchResponse wraps cross-entity search results.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
