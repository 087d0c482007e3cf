package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/simulator"
)

func newSimClient(t *testing.T, cfg simulator.Config, opts ...Option) *Client {
	t.Helper()
	jobs := []models.Job{
		{Title: "Backend Engineer", Slug: "backend-engineer", Department: "Engineering", Status: models.JobStatusActive},
	}
	candidates := []models.Candidate{
		{Name: "Ada Lovelace", Email: "ada@example.com", Stage: models.StageApplied, JobID: 1},
	}
	sim := simulator.New(cfg, jobs, candidates, nil)
	opts = append([]Option{WithTransport(sim.Transport())}, opts...)
	return New("http://talentflow.local/api/v1", opts...)
}

func TestJobs_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newSimClient(t, simulator.Config{})

	created, err := c.Jobs().Create(ctx, JobInput{
		Title:      "Data Engineer",
		Department: "Engineering",
		Tags:       []string{"sql", "python"},
	})
	require.NoError(t, err)
	assert.Equal(t, "data-engineer", created.Slug)

	fetched, err := c.Jobs().GetBySlug(ctx, "data-engineer")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	updated, err := c.Jobs().Update(ctx, created.ID, JobInput{Location: "Remote"})
	require.NoError(t, err)
	assert.Equal(t, "Remote", updated.Location)

	page, err := c.Jobs().List(ctx, JobListParams{Department: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.Total)

	require.NoError(t, c.Jobs().Delete(ctx, created.ID))

	_, err = c.Jobs().Get(ctx, created.ID)
	assert.True(t, IsNotFound(err), "deleted job should 404, got %v", err)
}

func TestCandidates_StageAndNotes(t *testing.T) {
	ctx := context.Background()
	c := newSimClient(t, simulator.Config{})

	moved, err := c.Candidates().SetStage(ctx, 1, "screening", "phone screen")
	require.NoError(t, err)
	assert.Equal(t, models.StageScreening, moved.Stage)

	// backward move surfaces the server's validation message
	_, err = c.Candidates().SetStage(ctx, 1, "applied", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid stage transition", apiErr.Message)

	note, err := c.Candidates().AddNote(ctx, 1, "ping @maria", "recruiter")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"maria"}, note.Mentions)

	timeline, err := c.Candidates().Timeline(ctx, 1)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "phone screen", timeline[1].Note)
}

func TestTimeout_Becomes408(t *testing.T) {
	c := newSimClient(t,
		simulator.Config{LatencyMin: 50 * time.Millisecond, LatencyMax: 60 * time.Millisecond},
		WithTimeout(10*time.Millisecond))

	_, err := c.Jobs().List(context.Background(), JobListParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestTimeout, apiErr.Status)
	assert.Equal(t, MsgTimeout, apiErr.Message)
	assert.True(t, IsTimeout(err))
}

func TestServerFault_MessageTable(t *testing.T) {
	c := newSimClient(t, simulator.Config{ErrorRate: 1})

	_, err := c.Jobs().List(context.Background(), JobListParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.GreaterOrEqual(t, apiErr.Status, 500)
	assert.Equal(t, MsgServerError, apiErr.Message)
}

func TestRateLimit_Becomes429(t *testing.T) {
	c := newSimClient(t, simulator.Config{RateLimitRPS: 1})
	ctx := context.Background()

	var apiErr *APIError
	for i := 0; i < 10; i++ {
		if _, err := c.Jobs().List(ctx, JobListParams{}); err != nil {
			require.ErrorAs(t, err, &apiErr)
			break
		}
	}
	require.NotNil(t, apiErr, "burst should trip the limiter")
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, MsgRateLimited, apiErr.Message)
}

func TestNotFound_Message(t *testing.T) {
	c := newSimClient(t, simulator.Config{})

	_, err := c.Candidates().Get(context.Background(), 999)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, MsgNotFound, apiErr.Message)
}

func TestNetworkFailure_StatusZero(t *testing.T) {
	// a server that is already gone
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL + "/api/v1")
	_, err := c.Jobs().List(context.Background(), JobListParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, MsgNetwork, apiErr.Message)
}

func TestContextCancel_PassesThrough(t *testing.T) {
	c := newSimClient(t, simulator.Config{LatencyMin: time.Second, LatencyMax: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := c.Jobs().List(ctx, JobListParams{})
	require.Error(t, err)
	var apiErr *APIError
	assert.NotErrorAs(t, err, &apiErr, "deliberate cancellation is not an API failure")
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	c := newSimClient(t, simulator.Config{})

	up, err := c.Files().Upload(ctx, "resume.pdf", strings.NewReader("%PDF-1.4 ..."))
	require.NoError(t, err)
	assert.NotEmpty(t, up.Token)
	assert.Equal(t, "resume.pdf", up.Name)
	assert.Equal(t, int64(len("%PDF-1.4 ...")), up.Size)
}

func TestSearch(t *testing.T) {
	c := newSimClient(t, simulator.Config{})

	results, err := c.Search(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "candidate", results[0].Type)
}
