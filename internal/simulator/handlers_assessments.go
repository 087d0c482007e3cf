package simulator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/talentflow/internal/models"
)

type assessmentPayload struct {
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	JobID        uint                       `json:"jobId"`
	Status       string                     `json:"status"`
	TimeLimit    *int                       `json:"timeLimit"`
	PassingScore *int                       `json:"passingScore"`
	Sections     []models.AssessmentSection `json:"sections"`
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	jobID := uint(queryInt(r, "jobId", 0))
	assessments := s.store.listAssessments(jobID, r.URL.Query().Get("status"))
	page, limit := pageParams(r)
	pageItems, meta := paginate(assessments, page, limit)
	writeJSON(w, http.StatusOK, Envelope{Data: pageItems, Meta: meta})
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}
	a := s.store.getAssessment(id)
	if a == nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var payload assessmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if payload.Status != "" && !models.AssessmentStatus(payload.Status).IsValid() {
		writeError(w, http.StatusBadRequest, "invalid assessment status")
		return
	}
	for _, section := range payload.Sections {
		for i := range section.Questions {
			if err := section.Questions[i].Validate(); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}
	a := models.Assessment{
		Title:       payload.Title,
		Description: payload.Description,
		JobID:       payload.JobID,
		Status:      models.AssessmentStatus(payload.Status),
		Sections:    payload.Sections,
	}
	if payload.TimeLimit != nil {
		a.TimeLimit = *payload.TimeLimit
	}
	if payload.PassingScore != nil {
		a.PassingScore = *payload.PassingScore
	}
	writeJSON(w, http.StatusCreated, s.store.createAssessment(a))
}

func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}
	var payload assessmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Status != "" && !models.AssessmentStatus(payload.Status).IsValid() {
		writeError(w, http.StatusBadRequest, "invalid assessment status")
		return
	}
	// a builder save cannot drop the last remaining section
	if payload.Sections != nil && len(payload.Sections) == 0 {
		writeError(w, http.StatusBadRequest, "an assessment needs at least one section")
		return
	}
	a := s.store.updateAssessment(id, func(a *models.Assessment) {
		if payload.Title != "" {
			a.Title = payload.Title
		}
		if payload.Description != "" {
			a.Description = payload.Description
		}
		if payload.Status != "" {
			a.Status = models.AssessmentStatus(payload.Status)
		}
		if payload.TimeLimit != nil {
			a.TimeLimit = *payload.TimeLimit
		}
		if payload.PassingScore != nil {
			a.PassingScore = *payload.PassingScore
		}
		if len(payload.Sections) > 0 {
			a.Sections = payload.Sections
		}
	})
	if a == nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}
	if !s.store.deleteAssessment(id) {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) submitAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}
	var payload struct {
		CandidateID uint           `json:"candidateId"`
		Answers     models.JSONMap `json:"answers"`
		TimeSpent   int            `json:"timeSpent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, found := s.store.submitResponse(id, payload.CandidateID, payload.Answers, payload.TimeSpent)
	if !found {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
