package simulator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/talentflow/internal/models"
)

// jobPayload is the request body for creating and updating jobs.
type jobPayload struct {
	Title            string   `json:"title"`
	Department       string   `json:"department"`
	Location         string   `json:"location"`
	EmploymentType   string   `json:"employmentType"`
	ExperienceLevel  string   `json:"experienceLevel"`
	SalaryMin        *int     `json:"salaryMin"`
	SalaryMax        *int     `json:"salaryMax"`
	Status           string   `json:"status"`
	Description      string   `json:"description"`
	Requirements     string   `json:"requirements"`
	Responsibilities string   `json:"responsibilities"`
	Benefits         string   `json:"benefits"`
	Tags             []string `json:"tags"`
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs := s.store.listJobs(q.Get("status"), q.Get("department"), q.Get("search"))
	page, limit := pageParams(r)
	pageItems, meta := paginate(jobs, page, limit)
	writeJSON(w, http.StatusOK, Envelope{Data: pageItems, Meta: meta})
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	job := s.store.getJob(id)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) getJobBySlug(w http.ResponseWriter, r *http.Request) {
	job := s.store.getJobBySlug(chi.URLParam(r, "slug"))
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if payload.Status != "" && !models.JobStatus(payload.Status).IsValid() {
		writeError(w, http.StatusBadRequest, "invalid job status")
		return
	}
	job := s.store.createJob(models.Job{
		Title:            payload.Title,
		Department:       payload.Department,
		Location:         payload.Location,
		EmploymentType:   payload.EmploymentType,
		ExperienceLevel:  payload.ExperienceLevel,
		SalaryMin:        payload.SalaryMin,
		SalaryMax:        payload.SalaryMax,
		Status:           models.JobStatus(payload.Status),
		Description:      payload.Description,
		Requirements:     payload.Requirements,
		Responsibilities: payload.Responsibilities,
		Benefits:         payload.Benefits,
		Tags:             payload.Tags,
	})
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Status != "" && !models.JobStatus(payload.Status).IsValid() {
		writeError(w, http.StatusBadRequest, "invalid job status")
		return
	}
	job := s.store.updateJob(id, func(j *models.Job) {
		if payload.Title != "" {
			j.Title = payload.Title
		}
		if payload.Department != "" {
			j.Department = payload.Department
		}
		if payload.Location != "" {
			j.Location = payload.Location
		}
		if payload.EmploymentType != "" {
			j.EmploymentType = payload.EmploymentType
		}
		if payload.ExperienceLevel != "" {
			j.ExperienceLevel = payload.ExperienceLevel
		}
		if payload.SalaryMin != nil {
			j.SalaryMin = payload.SalaryMin
		}
		if payload.SalaryMax != nil {
			j.SalaryMax = payload.SalaryMax
		}
		if payload.Status != "" {
			j.Status = models.JobStatus(payload.Status)
		}
		if payload.Description != "" {
			j.Description = payload.Description
		}
		if payload.Requirements != "" {
			j.Requirements = payload.Requirements
		}
		if payload.Responsibilities != "" {
			j.Responsibilities = payload.Responsibilities
		}
		if payload.Benefits != "" {
			j.Benefits = payload.Benefits
		}
		if payload.Tags != nil {
			j.Tags = payload.Tags
		}
	})
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) archiveJob(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, models.JobStatusArchived)
}

func (s *Server) unarchiveJob(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, models.JobStatusActive)
}

func (s *Server) setStatus(w http.ResponseWriter, r *http.Request, status models.JobStatus) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	job := s.store.setJobStatus(id, status)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	if !s.store.deleteJob(id) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) reorderJobs(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []uint `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids are required")
		return
	}
	s.store.reorderJobs(payload.IDs)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}
