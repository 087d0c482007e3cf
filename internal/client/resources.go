package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/talentflow/talentflow/internal/models"
)

// Meta is the pagination envelope metadata for list responses.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Jobs returns the jobs resource.
func (c *Client) Jobs() *JobsService { return &JobsService{c} }

// Candidates returns the candidates resource.
func (c *Client) Candidates() *CandidatesService { return &CandidatesService{c} }

// Assessments returns the assessments resource.
func (c *Client) Assessments() *AssessmentsService { return &AssessmentsService{c} }

// Analytics returns the analytics resource.
func (c *Client) Analytics() *AnalyticsService { return &AnalyticsService{c} }

// Files returns the file upload resource.
func (c *Client) Files() *FilesService { return &FilesService{c} }

// ---- jobs ----

type JobsService struct {
	c *Client
}

// JobListParams filter and page the job list.
type JobListParams struct {
	Status     string
	Department string
	Search     string
	Page       int
	Limit      int
}

// JobInput carries the writable job fields for create and update calls.
type JobInput struct {
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

func (s *JobsService) List(ctx context.Context, params JobListParams) (*Page[models.Job], error) {
	q := url.Values{}
	setIf(q, "status", params.Status)
	setIf(q, "department", params.Department)
	setIf(q, "search", params.Search)
	setPage(q, params.Page, params.Limit)
	resp, err := s.c.get(ctx, "/jobs", q)
	if err != nil {
		return nil, err
	}
	page, err := decodeInto[Page[models.Job]](resp)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *JobsService) Get(ctx context.Context, id uint) (*models.Job, error) {
	resp, err := s.c.get(ctx, fmt.Sprintf("/jobs/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Job](resp)
}

func (s *JobsService) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	resp, err := s.c.get(ctx, "/jobs/slug/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Job](resp)
}

func (s *JobsService) Create(ctx context.Context, input JobInput) (*models.Job, error) {
	resp, err := s.c.post(ctx, "/jobs", input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Job](resp)
}

func (s *JobsService) Update(ctx context.Context, id uint, input JobInput) (*models.Job, error) {
	resp, err := s.c.put(ctx, fmt.Sprintf("/jobs/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Job](resp)
}

func (s *JobsService) Archive(ctx context.Context, id uint) (*models.Job, error) {
	resp, err := s.c.patch(ctx, fmt.Sprintf("/jobs/%d/archive", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Job](resp)
}

func (s *JobsService) Unarchive(ctx context.Context, id uint) (*models.Job, error) {
	resp, err := s.c.patch(ctx, fmt.Sprintf("/jobs/%d/unarchive", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Job](resp)
}

func (s *JobsService) Delete(ctx context.Context, id uint) error {
	_, err := s.c.delete(ctx, fmt.Sprintf("/jobs/%d", id))
	return err
}

func (s *JobsService) Reorder(ctx context.Context, ids []uint) error {
	_, err := s.c.post(ctx, "/jobs/reorder", map[string][]uint{"ids": ids})
	return err
}

// ---- candidates ----

type CandidatesService struct {
	c *Client
}

// CandidateListParams filter and page the candidate list.
type CandidateListParams struct {
	JobID  uint
	Stage  string
	Search string
	Page   int
	Limit  int
}

// CandidateInput carries the writable candidate fields. Stage is absent:
// stage changes go through SetStage so the history stays consistent.
type CandidateInput struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	JobID      uint     `json:"jobId,omitempty"`
	Experience *int     `json:"experience,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

func (s *CandidatesService) List(ctx context.Context, params CandidateListParams) (*Page[models.Candidate], error) {
	q := url.Values{}
	if params.JobID != 0 {
		q.Set("jobId", strconv.FormatUint(uint64(params.JobID), 10))
	}
	setIf(q, "stage", params.Stage)
	setIf(q, "search", params.Search)
	setPage(q, params.Page, params.Limit)
	resp, err := s.c.get(ctx, "/candidates", q)
	if err != nil {
		return nil, err
	}
	page, err := decodeInto[Page[models.Candidate]](resp)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *CandidatesService) Get(ctx context.Context, id uint) (*models.Candidate, error) {
	resp, err := s.c.get(ctx, fmt.Sprintf("/candidates/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Candidate](resp)
}

func (s *CandidatesService) Create(ctx context.Context, input CandidateInput) (*models.Candidate, error) {
	resp, err := s.c.post(ctx, "/candidates", input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Candidate](resp)
}

func (s *CandidatesService) Update(ctx context.Context, id uint, input CandidateInput) (*models.Candidate, error) {
	resp, err := s.c.put(ctx, fmt.Sprintf("/candidates/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Candidate](resp)
}

// SetStage moves a candidate to a new stage, recording the move in the
// candidate's timeline.
func (s *CandidatesService) SetStage(ctx context.Context, id uint, stage, note string) (*models.Candidate, error) {
	body := map[string]string{"stage": stage}
	if note != "" {
		body["note"] = note
	}
	resp, err := s.c.patch(ctx, fmt.Sprintf("/candidates/%d/stage", id), body)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Candidate](resp)
}

func (s *CandidatesService) Delete(ctx context.Context, id uint) error {
	_, err := s.c.delete(ctx, fmt.Sprintf("/candidates/%d", id))
	return err
}

func (s *CandidatesService) Timeline(ctx context.Context, id uint) ([]models.StageEvent, error) {
	resp, err := s.c.get(ctx, fmt.Sprintf("/candidates/%d/timeline", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.StageEvent](resp)
}

func (s *CandidatesService) Notes(ctx context.Context, id uint) ([]models.Note, error) {
	resp, err := s.c.get(ctx, fmt.Sprintf("/candidates/%d/notes", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Note](resp)
}

func (s *CandidatesService) AddNote(ctx context.Context, id uint, content, author string) (*models.Note, error) {
	body := map[string]string{"content": content, "author": author}
	resp, err := s.c.post(ctx, fmt.Sprintf("/candidates/%d/notes", id), body)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Note](resp)
}

// ---- assessments ----

type AssessmentsService struct {
	c *Client
}

// AssessmentListParams filter and page the assessment list.
type AssessmentListParams struct {
	JobID  uint
	Status string
	Page   int
	Limit  int
}

// AssessmentInput carries the writable assessment fields, including the
// full section tree a builder save replaces.
type AssessmentInput struct {
	Title        string                     `json:"title,omitempty"`
	Description  string                     `json:"description,omitempty"`
	JobID        uint                       `json:"jobId,omitempty"`
	Status       string                     `json:"status,omitempty"`
	TimeLimit    *int                       `json:"timeLimit,omitempty"`
	PassingScore *int                       `json:"passingScore,omitempty"`
	Sections     []models.AssessmentSection `json:"sections,omitempty"`
}

// SubmitInput is one candidate's completed answer set.
type SubmitInput struct {
	CandidateID uint           `json:"candidateId"`
	Answers     models.JSONMap `json:"answers"`
	TimeSpent   int            `json:"timeSpent"`
}

func (s *AssessmentsService) List(ctx context.Context, params AssessmentListParams) (*Page[models.Assessment], error) {
	q := url.Values{}
	if params.JobID != 0 {
		q.Set("jobId", strconv.FormatUint(uint64(params.JobID), 10))
	}
	setIf(q, "status", params.Status)
	setPage(q, params.Page, params.Limit)
	resp, err := s.c.get(ctx, "/assessments", q)
	if err != nil {
		return nil, err
	}
	page, err := decodeInto[Page[models.Assessment]](resp)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *AssessmentsService) Get(ctx context.Context, id uint) (*models.Assessment, error) {
	resp, err := s.c.get(ctx, fmt.Sprintf("/assessments/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Assessment](resp)
}

func (s *AssessmentsService) Create(ctx context.Context, input AssessmentInput) (*models.Assessment, error) {
	resp, err := s.c.post(ctx, "/assessments", input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Assessment](resp)
}

func (s *AssessmentsService) Update(ctx context.Context, id uint, input AssessmentInput) (*models.Assessment, error) {
	resp, err := s.c.put(ctx, fmt.Sprintf("/assessments/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Assessment](resp)
}

func (s *AssessmentsService) Delete(ctx context.Context, id uint) error {
	_, err := s.c.delete(ctx, fmt.Sprintf("/assessments/%d", id))
	return err
}

func (s *AssessmentsService) Submit(ctx context.Context, id uint, input SubmitInput) (*models.Response, error) {
	resp, err := s.c.post(ctx, fmt.Sprintf("/assessments/%d/submit", id), input)
	if err != nil {
		return nil, err
	}
	return decodePtr[models.Response](resp)
}

// ---- analytics, search, files ----

type AnalyticsService struct {
	c *Client
}

// Dashboard is the aggregate counter set the dashboard renders.
type Dashboard struct {
	TotalJobs         int            `json:"totalJobs"`
	TotalCandidates   int            `json:"totalCandidates"`
	TotalAssessments  int            `json:"totalAssessments"`
	JobsByStatus      map[string]int `json:"jobsByStatus"`
	CandidatesByStage map[string]int `json:"candidatesByStage"`
	HireRate          float64        `json:"hireRate"`

	ApplicationsOverTime []models.WeeklyCount `json:"applicationsOverTime"`
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	resp, err := s.c.get(ctx, "/analytics/dashboard", nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[Dashboard](resp)
}

// SearchResult is one hit from a cross-entity search.
type SearchResult struct {
	Type  string `json:"type"`
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Extra string `json:"extra,omitempty"`
}

// Search matches the query against jobs, candidates and assessments.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	resp, err := c.get(ctx, "/search", q)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeInto[struct {
		Results []SearchResult `json:"results"`
	}](resp)
	if err != nil {
		return nil, err
	}
	return decoded.Results, nil
}

type FilesService struct {
	c *Client
}

// Upload is the server's receipt for an uploaded file.
type Upload struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
}

func (s *FilesService) Upload(ctx context.Context, fileName string, contents io.Reader) (*Upload, error) {
	resp, err := s.c.uploadFile(ctx, "/files/upload", "file", fileName, contents)
	if err != nil {
		return nil, err
	}
	return decodePtr[Upload](resp)
}

// ---- helpers ----

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setPage(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func decodePtr[T any](resp *Response) (*T, error) {
	out, err := decodeInto[T](resp)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
