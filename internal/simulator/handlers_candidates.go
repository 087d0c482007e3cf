package simulator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/talentflow/internal/models"
)

type candidatePayload struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Experience *int     `json:"experience"`
	Skills     []string `json:"skills"`
	Location   string   `json:"location"`
	Stage      string   `json:"stage"`
	JobID      uint     `json:"jobId"`
}

func (s *Server) listCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobID := uint(queryInt(r, "jobId", 0))
	candidates := s.store.listCandidates(jobID, q.Get("stage"), q.Get("search"))
	page, limit := pageParams(r)
	pageItems, meta := paginate(candidates, page, limit)
	writeJSON(w, http.StatusOK, Envelope{Data: pageItems, Meta: meta})
}

func (s *Server) getCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	c := s.store.getCandidate(id)
	if c == nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCandidate(w http.ResponseWriter, r *http.Request) {
	var payload candidatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if payload.Stage != "" && !models.Stage(payload.Stage).IsValid() {
		writeError(w, http.StatusBadRequest, "invalid candidate stage")
		return
	}
	experience := 0
	if payload.Experience != nil {
		experience = *payload.Experience
	}
	c := s.store.createCandidate(models.Candidate{
		Name:       payload.Name,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Experience: experience,
		Skills:     payload.Skills,
		Location:   payload.Location,
		Stage:      models.Stage(payload.Stage),
		JobID:      payload.JobID,
	})
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	var payload candidatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Stage != "" {
		// stage moves only through PATCH /candidates/{id}/stage
		writeError(w, http.StatusBadRequest, "stage changes go through the stage endpoint")
		return
	}
	c := s.store.updateCandidate(id, func(c *models.Candidate) {
		if payload.Name != "" {
			c.Name = payload.Name
		}
		if payload.Email != "" {
			c.Email = payload.Email
		}
		if payload.Phone != "" {
			c.Phone = payload.Phone
		}
		if payload.Experience != nil {
			c.Experience = *payload.Experience
		}
		if payload.Skills != nil {
			c.Skills = payload.Skills
		}
		if payload.Location != "" {
			c.Location = payload.Location
		}
	})
	if c == nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) setCandidateStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	var payload struct {
		Stage string `json:"stage"`
		Note  string `json:"note"`
		User  string `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	stage := models.Stage(payload.Stage)
	if !stage.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid candidate stage")
		return
	}
	current := s.store.getCandidate(id)
	if current == nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	if !current.Stage.CanTransitionTo(stage) {
		writeError(w, http.StatusBadRequest, "invalid stage transition")
		return
	}
	c := s.store.setCandidateStage(id, stage, payload.Note, payload.User)
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	if !s.store.deleteCandidate(id) {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) getTimeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	c := s.store.getCandidate(id)
	if c == nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, c.Timeline)
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	notes, found := s.store.listNotes(id)
	if !found {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	var payload struct {
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	note, found := s.store.createNote(id, models.Note{
		Author:  payload.Author,
		Content: payload.Content,
	})
	if !found {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}
