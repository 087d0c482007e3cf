package simulator

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/models"
)

// analyticsDashboard aggregates the counters the dashboard widgets render.
// Everything is computed on the fly from the in-memory collections.
func (s *Server) analyticsDashboard(w http.ResponseWriter, r *http.Request) {
	jobs := s.store.listJobs("", "", "")
	candidates := s.store.listCandidates(0, "", "")
	assessments := s.store.listAssessments(0, "")

	jobsByStatus := map[string]int{}
	for _, j := range jobs {
		jobsByStatus[string(j.Status)]++
	}
	candidatesByStage := map[string]int{}
	hired := 0
	for _, c := range candidates {
		candidatesByStage[string(c.Stage)]++
		if c.Stage == models.StageHired {
			hired++
		}
	}
	conversion := 0.0
	if len(candidates) > 0 {
		conversion = float64(hired) / float64(len(candidates))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalJobs":            len(jobs),
		"totalCandidates":      len(candidates),
		"totalAssessments":     len(assessments),
		"jobsByStatus":         jobsByStatus,
		"candidatesByStage":    candidatesByStage,
		"hireRate":             conversion,
		"applicationsOverTime": models.ApplicationsOverTime(candidates, 12),
	})
}

type searchHit struct {
	Type  string `json:"type"`
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Extra string `json:"extra,omitempty"`
}

// search runs a case-insensitive substring match over jobs, candidates
// and assessments and returns a flat result list.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	hits := []searchHit{}
	if q == "" {
		writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": hits})
		return
	}
	for _, j := range s.store.listJobs("", "", "") {
		if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Description), q) {
			hits = append(hits, searchHit{Type: "job", ID: j.ID, Title: j.Title, Extra: j.Department})
		}
	}
	for _, c := range s.store.listCandidates(0, "", "") {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			hits = append(hits, searchHit{Type: "candidate", ID: c.ID, Title: c.Name, Extra: c.Email})
		}
	}
	for _, a := range s.store.listAssessments(0, "") {
		if strings.Contains(strings.ToLower(a.Title), q) {
			hits = append(hits, searchHit{Type: "assessment", ID: a.ID, Title: a.Title})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": hits})
}

// uploadFile accepts a multipart upload and returns a token for it. The
// simulator never stores the bytes, only the metadata a client needs to
// reference the file in an answer.
func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": uuid.NewString(),
		"name":  header.Filename,
		"size":  header.Size,
	})
}
