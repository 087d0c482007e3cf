package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
)

func testFixtures() ([]models.Job, []models.Candidate, []models.Assessment) {
	jobs := []models.Job{
		{Title: "Backend Engineer", Slug: "backend-engineer", Department: "Engineering", Description: "Own the billing pipeline", Status: models.JobStatusActive},
		{Title: "Frontend Engineer", Slug: "frontend-engineer", Department: "Engineering", Status: models.JobStatusActive},
		{Title: "Recruiter", Slug: "recruiter", Department: "People", Status: models.JobStatusArchived},
	}
	candidates := []models.Candidate{
		{Name: "Ada Lovelace", Email: "ada@example.com", Stage: models.StageApplied, JobID: 1},
		{Name: "Grace Hopper", Email: "grace@example.com", Stage: models.StageInterview, JobID: 1},
	}
	assessments := []models.Assessment{
		{Title: "Backend Screen", JobID: 1, Status: models.AssessmentStatusPublished, Sections: []models.AssessmentSection{
			{Title: "Basics", Questions: []models.Question{
				{Type: models.QuestionShortText, Prompt: "Explain indexes", Points: 5},
			}},
		}},
	}
	return jobs, candidates, assessments
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	jobs, candidates, assessments := testFixtures()
	return New(cfg, jobs, candidates, assessments)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListJobs_FilterAndMeta(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/jobs?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.Job `json:"data"`
		Meta Meta         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, 2, envelope.Meta.Total)
	assert.Equal(t, 1, envelope.Meta.Page)
	for _, j := range envelope.Data {
		assert.Equal(t, models.JobStatusActive, j.Status)
	}

	// meta.total reflects the filtered count, not the page size
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/jobs?status=active&limit=1", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, 2, envelope.Meta.Total)
	assert.Equal(t, 2, envelope.Meta.TotalPages)
}

func TestJobLifecycle(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/jobs", map[string]any{
		"title":      "Platform Engineer",
		"department": "Engineering",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var job models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "platform-engineer", job.Slug)
	assert.Equal(t, models.JobStatusDraft, job.Status)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/jobs/slug/%s", job.Slug), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/v1/jobs/%d/archive", job.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, models.JobStatusArchived, job.Status)

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/jobs/%d", job.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d", job.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJob_Validation(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/jobs", map[string]any{"department": "Engineering"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "title is required", errBody.Message)
	assert.Equal(t, http.StatusBadRequest, errBody.Status)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/jobs", map[string]any{
		"title":  "Whatever",
		"status": "paused",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidateStageTransitions(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodPatch, "/api/v1/candidates/1/stage", map[string]any{
		"stage": "screening",
		"note":  "phone screen booked",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// backward moves are rejected
	rec = doJSON(t, srv, http.MethodPatch, "/api/v1/candidates/1/stage", map[string]any{
		"stage": "applied",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/candidates/1/timeline", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []models.StageEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, models.StageScreening, events[1].Stage)
	assert.Equal(t, "phone screen booked", events[1].Note)
}

func TestNotes_MentionsExtracted(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/candidates/2/notes", map[string]any{
		"author":  "recruiter",
		"content": "strong signal, loop in @maria and @jon.smith",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var note models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	assert.Equal(t, models.StringList{"maria", "jon.smith"}, note.Mentions)
	assert.NotEmpty(t, note.PublicID)
}

func TestFaults_AllOrNothing(t *testing.T) {
	srv := newTestServer(t, Config{ErrorRate: 1})
	for i := 0; i < 5; i++ {
		rec := doJSON(t, srv, http.MethodGet, "/api/v1/jobs", nil)
		require.GreaterOrEqual(t, rec.Code, 500, "every request should be injected")
		var errBody ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
		assert.Equal(t, "simulated backend failure", errBody.Message)
	}

	srv = newTestServer(t, Config{ErrorRate: 0})
	for i := 0; i < 5; i++ {
		rec := doJSON(t, srv, http.MethodGet, "/api/v1/jobs", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestThrottle(t *testing.T) {
	srv := newTestServer(t, Config{RateLimitRPS: 1})

	var throttled bool
	for i := 0; i < 10; i++ {
		rec := doJSON(t, srv, http.MethodGet, "/api/v1/jobs", nil)
		if rec.Code == http.StatusTooManyRequests {
			throttled = true
			break
		}
	}
	assert.True(t, throttled, "burst of 10 against 1 rps should hit the limiter")
}

func TestLatency_HonorsContextCancel(t *testing.T) {
	srv := newTestServer(t, Config{LatencyMin: time.Second, LatencyMax: 2 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	start := time.Now()
	srv.ServeHTTP(rec, req)
	assert.Less(t, time.Since(start), time.Second, "cancelled request should not wait out the delay")
}

func TestFallback_PassThroughOutsideAPI(t *testing.T) {
	fallback := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("static asset"))
	})
	srv := newTestServer(t, Config{Fallback: fallback})

	rec := doJSON(t, srv, http.MethodGet, "/assets/app.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "static asset", rec.Body.String())

	// unknown API routes still answer with the API error shape
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/nonsense", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errBody ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "endpoint not found", errBody.Message)
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/search?q=GRACE", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query   string `json:"query"`
		Results []struct {
			Type  string `json:"type"`
			Title string `json:"title"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "candidate", body.Results[0].Type)
	assert.Equal(t, "Grace Hopper", body.Results[0].Title)
}

func TestSearch_JobsMatchTitleAndDescription(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/search?q=billing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []struct {
			Type  string `json:"type"`
			Title string `json:"title"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "job", body.Results[0].Type)
	assert.Equal(t, "Backend Engineer", body.Results[0].Title)

	// department is not a search field, same as the jobs list filter
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/search?q=people", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body.Results = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Results)
}

func TestSubmitAssessment(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assessments/1/submit", map[string]any{
		"candidateId": 1,
		"answers":     map[string]any{"1": "clustered vs non-clustered"},
		"timeSpent":   300,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.AssessmentID)
	assert.NotNil(t, resp.SubmittedAt)
}
