// Package api provides the typed HTTP handlers for the REST API.
package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-fuego/fuego"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/store"
)

// ============================================================================
// Health
// ============================================================================

func (s *Server) healthCheck(c fuego.ContextNoBody) (HealthResponse, error) {
	storage := "ok"
	if s.deps.Available != nil && !s.deps.Available() {
		storage = "unavailable"
	}
	return HealthResponse{
		Status:  "ok",
		Storage: storage,
		Version: "dev",
	}, nil
}

// ============================================================================
// Jobs
// ============================================================================

func (s *Server) listJobs(c fuego.ContextNoBody) (ListResponse[models.Job], error) {
	filter := store.JobFilter{
		Status:     models.JobStatus(c.QueryParam("status")),
		Department: c.QueryParam("department"),
		Search:     c.QueryParam("search"),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return ListResponse[models.Job]{}, fuego.BadRequestError{Detail: "Invalid job status"}
	}

	jobs, err := s.deps.Jobs.List(c.Context(), filter)
	if err != nil {
		return ListResponse[models.Job]{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return paginateList(c, jobs), nil
}

func (s *Server) getJob(c fuego.ContextNoBody) (models.Job, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Job{}, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	job, err := s.deps.Jobs.Get(c.Context(), id)
	if err != nil {
		return models.Job{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if job == nil {
		return models.Job{}, fuego.NotFoundError{Detail: "Job not found"}
	}
	return *job, nil
}

func (s *Server) getJobBySlug(c fuego.ContextNoBody) (models.Job, error) {
	slug := c.PathParam("slug")
	job, err := s.deps.Jobs.GetBySlug(c.Context(), slug)
	if err != nil {
		return models.Job{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if job == nil {
		return models.Job{}, fuego.NotFoundError{Detail: "Job not found"}
	}
	s.deps.Jobs.IncrementViews(c.Context(), job.ID)
	return *job, nil
}

func (s *Server) createJob(c fuego.ContextWithBody[JobCreateRequest]) (models.Job, error) {
	body, err := c.Body()
	if err != nil {
		return models.Job{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if strings.TrimSpace(body.Title) == "" {
		return models.Job{}, fuego.BadRequestError{Detail: "Title is required"}
	}
	if body.Status != "" && !models.JobStatus(body.Status).IsValid() {
		return models.Job{}, fuego.BadRequestError{Detail: "Invalid job status"}
	}

	job := models.Job{
		Title:            body.Title,
		Department:       body.Department,
		Location:         body.Location,
		EmploymentType:   body.EmploymentType,
		ExperienceLevel:  body.ExperienceLevel,
		SalaryMin:        body.SalaryMin,
		SalaryMax:        body.SalaryMax,
		Status:           models.JobStatus(body.Status),
		Description:      body.Description,
		Requirements:     body.Requirements,
		Responsibilities: body.Responsibilities,
		Benefits:         body.Benefits,
		Tags:             body.Tags,
	}
	id, err := s.deps.Jobs.Create(c.Context(), &job)
	if err != nil {
		return models.Job{}, fuego.InternalServerError{Detail: err.Error()}
	}

	created, err := s.deps.Jobs.Get(c.Context(), id)
	if err != nil || created == nil {
		return job, nil
	}
	s.publish("job", "created", id)
	return *created, nil
}

func (s *Server) updateJob(c fuego.ContextWithBody[JobUpdateRequest]) (models.Job, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Job{}, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Job{}, fuego.BadRequestError{Detail: err.Error()}
	}

	fields := map[string]any{}
	setField(fields, "title", body.Title)
	setField(fields, "department", body.Department)
	setField(fields, "location", body.Location)
	setField(fields, "employment_type", body.EmploymentType)
	setField(fields, "experience_level", body.ExperienceLevel)
	setField(fields, "status", body.Status)
	setField(fields, "description", body.Description)
	setField(fields, "requirements", body.Requirements)
	setField(fields, "responsibilities", body.Responsibilities)
	setField(fields, "benefits", body.Benefits)
	if body.SalaryMin != nil {
		fields["salary_min"] = *body.SalaryMin
	}
	if body.SalaryMax != nil {
		fields["salary_max"] = *body.SalaryMax
	}
	if body.Tags != nil {
		fields["tags"] = models.StringList(body.Tags)
	}
	if len(fields) == 0 {
		return models.Job{}, fuego.BadRequestError{Detail: "No fields to update"}
	}

	affected, err := s.deps.Jobs.Update(c.Context(), id, fields)
	if err != nil {
		if errors.Is(err, store.ErrInvalidStatus) {
			return models.Job{}, fuego.BadRequestError{Detail: "Invalid job status"}
		}
		return models.Job{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if affected == 0 {
		return models.Job{}, fuego.NotFoundError{Detail: "Job not found"}
	}

	job, err := s.deps.Jobs.Get(c.Context(), id)
	if err != nil || job == nil {
		return models.Job{}, fuego.InternalServerError{Detail: "Failed to reload job"}
	}
	s.publish("job", "updated", id)
	return *job, nil
}

func (s *Server) archiveJob(c fuego.ContextNoBody) (models.Job, error) {
	return s.setJobStatus(c, models.JobStatusArchived)
}

func (s *Server) unarchiveJob(c fuego.ContextNoBody) (models.Job, error) {
	return s.setJobStatus(c, models.JobStatusActive)
}

func (s *Server) setJobStatus(c fuego.ContextNoBody, status models.JobStatus) (models.Job, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Job{}, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	affected, err := s.deps.Jobs.SetStatus(c.Context(), id, status)
	if err != nil {
		return models.Job{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if affected == 0 {
		return models.Job{}, fuego.NotFoundError{Detail: "Job not found"}
	}
	job, err := s.deps.Jobs.Get(c.Context(), id)
	if err != nil || job == nil {
		return models.Job{}, fuego.InternalServerError{Detail: "Failed to reload job"}
	}
	s.publish("job", "updated", id)
	return *job, nil
}

func (s *Server) reorderJobs(c fuego.ContextWithBody[JobsReorderRequest]) (StatusResponse, error) {
	body, err := c.Body()
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if len(body.IDs) == 0 {
		return StatusResponse{}, fuego.BadRequestError{Detail: "No job IDs provided"}
	}
	if err := s.deps.Jobs.Reorder(c.Context(), body.IDs); err != nil {
		return StatusResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	s.publish("job", "reordered", 0)
	return StatusResponse{Status: "reordered"}, nil
}

func (s *Server) deleteJob(c fuego.ContextNoBody) (StatusResponse, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	if err := s.deps.Jobs.Delete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, fuego.NotFoundError{Detail: "Job not found"}
		}
		return StatusResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	s.publish("job", "deleted", id)
	return StatusResponse{Status: "deleted"}, nil
}

// ============================================================================
// Candidates
// ============================================================================

func (s *Server) listCandidates(c fuego.ContextNoBody) (ListResponse[models.Candidate], error) {
	filter := store.CandidateFilter{
		JobID:  uint(parseIntWithDefault(c.QueryParam("jobId"), 0)),
		Stage:  models.Stage(c.QueryParam("stage")),
		Search: c.QueryParam("search"),
	}
	if filter.Stage != "" && !filter.Stage.IsValid() {
		return ListResponse[models.Candidate]{}, fuego.BadRequestError{Detail: "Invalid stage"}
	}

	candidates, err := s.deps.Candidates.List(c.Context(), filter)
	if err != nil {
		return ListResponse[models.Candidate]{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return paginateList(c, candidates), nil
}

func (s *Server) getCandidate(c fuego.ContextNoBody) (models.Candidate, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Candidate{}, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	candidate, err := s.deps.Candidates.Get(c.Context(), id)
	if err != nil {
		return models.Candidate{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if candidate == nil {
		return models.Candidate{}, fuego.NotFoundError{Detail: "Candidate not found"}
	}
	return *candidate, nil
}

func (s *Server) createCandidate(c fuego.ContextWithBody[CandidateCreateRequest]) (models.Candidate, error) {
	body, err := c.Body()
	if err != nil {
		return models.Candidate{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if strings.TrimSpace(body.Name) == "" {
		return models.Candidate{}, fuego.BadRequestError{Detail: "Name is required"}
	}
	if strings.TrimSpace(body.Email) == "" {
		return models.Candidate{}, fuego.BadRequestError{Detail: "Email is required"}
	}

	candidate := models.Candidate{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Location: body.Location,
		JobID:    body.JobID,
		Skills:   models.StringList(body.Skills),
	}
	if body.Experience != nil {
		candidate.Experience = *body.Experience
	}
	id, err := s.deps.Candidates.Create(c.Context(), &candidate)
	if err != nil {
		return models.Candidate{}, fuego.InternalServerError{Detail: err.Error()}
	}

	created, err := s.deps.Candidates.Get(c.Context(), id)
	if err != nil || created == nil {
		return candidate, nil
	}
	s.publish("candidate", "created", id)
	return *created, nil
}

func (s *Server) updateCandidate(c fuego.ContextWithBody[CandidateUpdateRequest]) (models.Candidate, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Candidate{}, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Candidate{}, fuego.BadRequestError{Detail: err.Error()}
	}

	fields := map[string]any{}
	setField(fields, "name", body.Name)
	setField(fields, "email", body.Email)
	setField(fields, "phone", body.Phone)
	setField(fields, "location", body.Location)
	if body.Experience != nil {
		fields["experience"] = *body.Experience
	}
	if body.Skills != nil {
		fields["skills"] = models.StringList(body.Skills)
	}
	if len(fields) == 0 {
		return models.Candidate{}, fuego.BadRequestError{Detail: "No fields to update"}
	}

	affected, err := s.deps.Candidates.Update(c.Context(), id, fields)
	if err != nil {
		return models.Candidate{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if affected == 0 {
		return models.Candidate{}, fuego.NotFoundError{Detail: "Candidate not found"}
	}

	candidate, err := s.deps.Candidates.Get(c.Context(), id)
	if err != nil || candidate == nil {
		return models.Candidate{}, fuego.InternalServerError{Detail: "Failed to reload candidate"}
	}
	s.publish("candidate", "updated", id)
	return *candidate, nil
}

func (s *Server) setCandidateStage(c fuego.ContextWithBody[StageChangeRequest]) (models.Candidate, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Candidate{}, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Candidate{}, fuego.BadRequestError{Detail: err.Error()}
	}

	stage := models.Stage(body.Stage)
	if !stage.IsValid() {
		return models.Candidate{}, fuego.BadRequestError{Detail: "Invalid stage"}
	}
	if err := s.deps.Candidates.SetStage(c.Context(), id, stage, body.Note, body.User); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return models.Candidate{}, fuego.NotFoundError{Detail: "Candidate not found"}
		case errors.Is(err, store.ErrInvalidStage):
			return models.Candidate{}, fuego.BadRequestError{Detail: "Invalid stage transition"}
		default:
			return models.Candidate{}, fuego.InternalServerError{Detail: err.Error()}
		}
	}

	candidate, err := s.deps.Candidates.Get(c.Context(), id)
	if err != nil || candidate == nil {
		return models.Candidate{}, fuego.InternalServerError{Detail: "Failed to reload candidate"}
	}
	s.publish("candidate", "stage_changed", id)
	return *candidate, nil
}

func (s *Server) deleteCandidate(c fuego.ContextNoBody) (StatusResponse, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	if err := s.deps.Candidates.Delete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, fuego.NotFoundError{Detail: "Candidate not found"}
		}
		return StatusResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	s.publish("candidate", "deleted", id)
	return StatusResponse{Status: "deleted"}, nil
}

func (s *Server) getTimeline(c fuego.ContextNoBody) ([]models.StageEvent, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	timeline, err := s.deps.Candidates.Timeline(c.Context(), id)
	if err != nil {
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	if timeline == nil {
		timeline = []models.StageEvent{}
	}
	return timeline, nil
}

func (s *Server) listNotes(c fuego.ContextNoBody) ([]models.Note, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	notes, err := s.deps.Notes.ListByCandidate(c.Context(), id)
	if err != nil {
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *Server) createNote(c fuego.ContextWithBody[NoteCreateRequest]) (models.Note, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Note{}, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Note{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if strings.TrimSpace(body.Content) == "" {
		return models.Note{}, fuego.BadRequestError{Detail: "Content is required"}
	}

	note := models.Note{
		CandidateID: id,
		Content:     body.Content,
		Author:      body.Author,
	}
	if _, err := s.deps.Notes.Create(c.Context(), &note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Note{}, fuego.NotFoundError{Detail: "Candidate not found"}
		}
		return models.Note{}, fuego.InternalServerError{Detail: err.Error()}
	}
	s.publish("note", "created", note.ID)
	return note, nil
}

func (s *Server) listCandidateResponses(c fuego.ContextNoBody) ([]models.Response, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid candidate ID"}
	}
	responses, err := s.deps.Responses.ListByCandidate(c.Context(), id)
	if err != nil {
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	if responses == nil {
		responses = []models.Response{}
	}
	return responses, nil
}

// ============================================================================
// Assessments
// ============================================================================

func (s *Server) listAssessments(c fuego.ContextNoBody) (ListResponse[models.Assessment], error) {
	filter := store.AssessmentFilter{
		JobID:  uint(parseIntWithDefault(c.QueryParam("jobId"), 0)),
		Status: models.AssessmentStatus(c.QueryParam("status")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return ListResponse[models.Assessment]{}, fuego.BadRequestError{Detail: "Invalid assessment status"}
	}

	assessments, err := s.deps.Assessments.List(c.Context(), filter)
	if err != nil {
		return ListResponse[models.Assessment]{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return paginateList(c, assessments), nil
}

func (s *Server) getAssessment(c fuego.ContextNoBody) (models.Assessment, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Assessment{}, fuego.BadRequestError{Detail: "Invalid assessment ID"}
	}
	a, err := s.deps.Assessments.Get(c.Context(), id)
	if err != nil {
		return models.Assessment{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if a == nil {
		return models.Assessment{}, fuego.NotFoundError{Detail: "Assessment not found"}
	}
	return *a, nil
}

func (s *Server) createAssessment(c fuego.ContextWithBody[AssessmentCreateRequest]) (models.Assessment, error) {
	body, err := c.Body()
	if err != nil {
		return models.Assessment{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if strings.TrimSpace(body.Title) == "" {
		return models.Assessment{}, fuego.BadRequestError{Detail: "Title is required"}
	}
	if body.Status != "" && !models.AssessmentStatus(body.Status).IsValid() {
		return models.Assessment{}, fuego.BadRequestError{Detail: "Invalid assessment status"}
	}

	a := models.Assessment{
		Title:       body.Title,
		Description: body.Description,
		JobID:       body.JobID,
		Status:      models.AssessmentStatus(body.Status),
		Sections:    body.Sections,
	}
	if body.TimeLimit != nil {
		a.TimeLimit = *body.TimeLimit
	}
	if body.PassingScore != nil {
		a.PassingScore = *body.PassingScore
	}
	id, err := s.deps.Assessments.Create(c.Context(), &a)
	if err != nil {
		if errors.Is(err, models.ErrUnknownQuestionType) ||
			errors.Is(err, models.ErrOptionsRequired) ||
			errors.Is(err, models.ErrBadNumericRange) ||
			errors.Is(err, models.ErrPointsNotPositive) {
			return models.Assessment{}, fuego.BadRequestError{Detail: err.Error()}
		}
		return models.Assessment{}, fuego.InternalServerError{Detail: err.Error()}
	}

	created, err := s.deps.Assessments.Get(c.Context(), id)
	if err != nil || created == nil {
		return a, nil
	}
	s.publish("assessment", "created", id)
	return *created, nil
}

func (s *Server) updateAssessment(c fuego.ContextWithBody[AssessmentUpdateRequest]) (models.Assessment, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Assessment{}, fuego.BadRequestError{Detail: "Invalid assessment ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Assessment{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if body.Status != "" && !models.AssessmentStatus(body.Status).IsValid() {
		return models.Assessment{}, fuego.BadRequestError{Detail: "Invalid assessment status"}
	}

	fields := map[string]any{}
	setField(fields, "title", body.Title)
	setField(fields, "description", body.Description)
	setField(fields, "status", body.Status)
	if body.TimeLimit != nil {
		fields["time_limit"] = *body.TimeLimit
	}
	if body.PassingScore != nil {
		fields["passing_score"] = *body.PassingScore
	}
	if len(fields) > 0 {
		affected, err := s.deps.Assessments.Update(c.Context(), id, fields)
		if err != nil {
			return models.Assessment{}, fuego.InternalServerError{Detail: err.Error()}
		}
		if affected == 0 {
			return models.Assessment{}, fuego.NotFoundError{Detail: "Assessment not found"}
		}
	}

	if len(body.Sections) > 0 {
		if err := s.deps.Assessments.ReplaceSections(c.Context(), id, body.Sections); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return models.Assessment{}, fuego.NotFoundError{Detail: "Assessment not found"}
			case errors.Is(err, store.ErrLastSection):
				return models.Assessment{}, fuego.BadRequestError{Detail: "An assessment needs at least one section"}
			default:
				return models.Assessment{}, fuego.InternalServerError{Detail: err.Error()}
			}
		}
	}

	a, err := s.deps.Assessments.Get(c.Context(), id)
	if err != nil || a == nil {
		return models.Assessment{}, fuego.NotFoundError{Detail: "Assessment not found"}
	}
	s.publish("assessment", "updated", id)
	return *a, nil
}

func (s *Server) deleteAssessment(c fuego.ContextNoBody) (StatusResponse, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: "Invalid assessment ID"}
	}
	if err := s.deps.Assessments.Delete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, fuego.NotFoundError{Detail: "Assessment not found"}
		}
		return StatusResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	s.publish("assessment", "deleted", id)
	return StatusResponse{Status: "deleted"}, nil
}

func (s *Server) submitAssessment(c fuego.ContextWithBody[SubmitAssessmentRequest]) (models.Response, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: "Invalid assessment ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: err.Error()}
	}

	draft, err := s.deps.Responses.Start(c.Context(), body.CandidateID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Response{}, fuego.NotFoundError{Detail: "Assessment not found"}
		}
		return models.Response{}, fuego.InternalServerError{Detail: err.Error()}
	}
	submitted, err := s.deps.Responses.Submit(c.Context(), draft.ID, body.Answers, body.TimeSpent)
	if err != nil {
		// the draft was opened in this request; don't leave it orphaned
		if derr := s.deps.Responses.Discard(c.Context(), draft.ID); derr != nil {
			s.log.Error().Err(derr).Uint("response_id", draft.ID).Msg("discard draft after failed submit")
		}
		return models.Response{}, fuego.InternalServerError{Detail: err.Error()}
	}
	s.publish("response", "submitted", submitted.ID)
	return *submitted, nil
}

func (s *Server) listAssessmentResponses(c fuego.ContextNoBody) ([]models.Response, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid assessment ID"}
	}
	responses, err := s.deps.Responses.ListByAssessment(c.Context(), id)
	if err != nil {
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	if responses == nil {
		responses = []models.Response{}
	}
	return responses, nil
}

// ============================================================================
// Responses
// ============================================================================

func (s *Server) startResponse(c fuego.ContextWithBody[ResponseStartRequest]) (models.Response, error) {
	assessmentID, err := pathID(c, "assessmentId")
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: "Invalid assessment ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: err.Error()}
	}
	resp, err := s.deps.Responses.Start(c.Context(), body.CandidateID, assessmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Response{}, fuego.NotFoundError{Detail: "Assessment not found"}
		}
		return models.Response{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return *resp, nil
}

func (s *Server) saveResponseDraft(c fuego.ContextWithBody[ResponseDraftRequest]) (StatusResponse, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: "Invalid response ID"}
	}
	body, err := c.Body()
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if err := s.deps.Responses.SaveDraft(c.Context(), id, body.Answers); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return StatusResponse{}, fuego.NotFoundError{Detail: "Response not found"}
		case errors.Is(err, store.ErrImmutableResponse):
			return StatusResponse{}, fuego.BadRequestError{Detail: "Submitted responses cannot be modified"}
		default:
			return StatusResponse{}, fuego.InternalServerError{Detail: err.Error()}
		}
	}
	return StatusResponse{Status: "saved"}, nil
}

func (s *Server) submitResponse(c fuego.ContextWithBody[ResponseSubmitRequest]) (models.Response, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: "Invalid response ID"}
	}
	body, err := c.Body()
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: err.Error()}
	}
	resp, err := s.deps.Responses.Submit(c.Context(), id, body.Answers, body.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return models.Response{}, fuego.NotFoundError{Detail: "Response not found"}
		case errors.Is(err, store.ErrImmutableResponse):
			return models.Response{}, fuego.BadRequestError{Detail: "Submitted responses cannot be modified"}
		default:
			return models.Response{}, fuego.InternalServerError{Detail: err.Error()}
		}
	}
	s.publish("response", "submitted", resp.ID)
	return *resp, nil
}

func (s *Server) getResponse(c fuego.ContextNoBody) (models.Response, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return models.Response{}, fuego.BadRequestError{Detail: "Invalid response ID"}
	}
	resp, err := s.deps.Responses.Get(c.Context(), id)
	if err != nil {
		return models.Response{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if resp == nil {
		return models.Response{}, fuego.NotFoundError{Detail: "Response not found"}
	}
	return *resp, nil
}

// ============================================================================
// Settings
// ============================================================================

func (s *Server) listSettings(c fuego.ContextNoBody) ([]models.Setting, error) {
	settings, err := s.deps.Settings.All(c.Context())
	if err != nil {
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	if settings == nil {
		settings = []models.Setting{}
	}
	return settings, nil
}

func (s *Server) setSetting(c fuego.ContextWithBody[SettingRequest]) (StatusResponse, error) {
	key := c.PathParam("key")
	if key == "" {
		return StatusResponse{}, fuego.BadRequestError{Detail: "Setting key is required"}
	}
	body, err := c.Body()
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}
	if err := s.deps.Settings.Set(c.Context(), key, body.Value); err != nil {
		return StatusResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return StatusResponse{Status: "saved"}, nil
}

// ============================================================================
// Analytics & Search
// ============================================================================

func (s *Server) getDashboard(c fuego.ContextNoBody) (DashboardResponse, error) {
	jobs, err := s.deps.Jobs.List(c.Context(), store.JobFilter{})
	if err != nil {
		return DashboardResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	candidates, err := s.deps.Candidates.List(c.Context(), store.CandidateFilter{})
	if err != nil {
		return DashboardResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	assessments, err := s.deps.Assessments.List(c.Context(), store.AssessmentFilter{})
	if err != nil {
		return DashboardResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}

	jobsByStatus := map[string]int{}
	for _, j := range jobs {
		jobsByStatus[string(j.Status)]++
	}
	candidatesByStage := map[string]int{}
	hired := 0
	for _, candidate := range candidates {
		candidatesByStage[string(candidate.Stage)]++
		if candidate.Stage == models.StageHired {
			hired++
		}
	}
	hireRate := 0.0
	if len(candidates) > 0 {
		hireRate = float64(hired) / float64(len(candidates))
	}

	return DashboardResponse{
		TotalJobs:            len(jobs),
		TotalCandidates:      len(candidates),
		TotalAssessments:     len(assessments),
		JobsByStatus:         jobsByStatus,
		CandidatesByStage:    candidatesByStage,
		HireRate:             hireRate,
		ApplicationsOverTime: models.ApplicationsOverTime(candidates, 12),
	}, nil
}

func (s *Server) search(c fuego.ContextNoBody) (SearchResponse, error) {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	out := SearchResponse{Query: q, Results: []SearchResult{}}
	if q == "" {
		return out, nil
	}

	jobs, err := s.deps.Jobs.List(c.Context(), store.JobFilter{Search: q})
	if err != nil {
		return out, fuego.InternalServerError{Detail: err.Error()}
	}
	for _, j := range jobs {
		out.Results = append(out.Results, SearchResult{Type: "job", ID: j.ID, Title: j.Title, Extra: j.Department})
	}

	candidates, err := s.deps.Candidates.List(c.Context(), store.CandidateFilter{Search: q})
	if err != nil {
		return out, fuego.InternalServerError{Detail: err.Error()}
	}
	for _, candidate := range candidates {
		out.Results = append(out.Results, SearchResult{Type: "candidate", ID: candidate.ID, Title: candidate.Name, Extra: candidate.Email})
	}

	assessments, err := s.deps.Assessments.List(c.Context(), store.AssessmentFilter{})
	if err != nil {
		return out, fuego.InternalServerError{Detail: err.Error()}
	}
	for _, a := range assessments {
		if strings.Contains(strings.ToLower(a.Title), q) {
			out.Results = append(out.Results, SearchResult{Type: "assessment", ID: a.ID, Title: a.Title})
		}
	}
	return out, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Server) publish(entity, action string, id uint) {
	if s.deps.Hub != nil {
		s.deps.Hub.Publish(entity, action, id)
	}
}

// setField records a partial-update column only when the client sent a
// non-empty value.
func setField(fields map[string]any, column, value string) {
	if value != "" {
		fields[column] = value
	}
}

func pathID(c interface{ PathParam(string) string }, name string) (uint, error) {
	id, err := strconv.ParseUint(c.PathParam(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parseIntWithDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// paginateList slices an already-filtered collection into one page with
// the shared envelope metadata. Empty pages keep an empty, non-nil slice
// so they serialize as [].
func paginateList[T any](c fuego.ContextNoBody, items []T) ListResponse[T] {
	page := parseIntWithDefault(c.QueryParam("page"), 1)
	limit := parseIntWithDefault(c.QueryParam("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	total := len(items)
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	data := items[start:end]
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{
		Data: data,
		Meta: Meta{Total: total, Page: page, Limit: limit, TotalPages: pages},
	}
}
