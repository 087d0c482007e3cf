package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/client"
	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/simulator"
)

type memorySettings struct {
	values map[string]string
	fail   bool
}

func (m *memorySettings) Set(ctx context.Context, key, value string) error {
	if m.fail {
		return errors.New("storage unavailable")
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *memorySettings) Get(ctx context.Context, key string) (string, error) {
	if m.fail {
		return "", errors.New("storage unavailable")
	}
	return m.values[key], nil
}

func newTestState(t *testing.T, settings SettingsWriter) *AppState {
	t.Helper()
	jobs := []models.Job{
		{Title: "Backend Engineer", Slug: "backend-engineer", Department: "Engineering", Status: models.JobStatusActive},
		{Title: "Frontend Engineer", Slug: "frontend-engineer", Department: "Engineering", Status: models.JobStatusActive},
	}
	candidates := []models.Candidate{
		{Name: "Ada Lovelace", Email: "ada@example.com", Stage: models.StageApplied, JobID: 1},
	}
	sim := simulator.New(simulator.Config{}, jobs, candidates, nil)
	c := client.New("http://talentflow.local/api/v1", client.WithTransport(sim.Transport()))
	return New(c, settings)
}

func TestJobsState_LoadAndRefresh(t *testing.T) {
	ctx := context.Background()
	app := newTestState(t, nil)

	require.NoError(t, app.Jobs.Load(ctx, client.JobListParams{Status: "active"}))
	assert.Len(t, app.Jobs.Jobs(), 2)
	assert.Equal(t, 2, app.Jobs.Meta().Total)

	created, err := app.Jobs.Create(ctx, client.JobInput{Title: "Data Engineer", Department: "Engineering"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Create refreshes with the last filters; the new draft job is
	// filtered out of the active view but the cache stays consistent
	assert.Len(t, app.Jobs.Jobs(), 2)

	require.NoError(t, app.Jobs.Load(ctx, client.JobListParams{}))
	assert.Len(t, app.Jobs.Jobs(), 3)
}

func TestJobsState_ReorderRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	app := newTestState(t, nil)
	require.NoError(t, app.Jobs.Load(ctx, client.JobListParams{}))

	before := app.Jobs.Jobs()
	require.Len(t, before, 2)

	// an unknown id makes the server reject the ordering
	err := app.Jobs.Reorder(ctx, nil)
	require.Error(t, err)

	after := app.Jobs.Jobs()
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
}

func TestCandidatesState_SetStage(t *testing.T) {
	ctx := context.Background()
	app := newTestState(t, nil)
	require.NoError(t, app.Candidates.Load(ctx, client.CandidateListParams{}))

	moved, err := app.Candidates.SetStage(ctx, 1, "screening", "phone screen")
	require.NoError(t, err)
	assert.Equal(t, models.StageScreening, moved.Stage)

	// the cached view reflects the move without a reload
	cached := app.Candidates.Candidates()
	require.Len(t, cached, 1)
	assert.Equal(t, models.StageScreening, cached[0].Stage)
}

func TestThemeState_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	settings := &memorySettings{}
	app := newTestState(t, settings)

	assert.Equal(t, "light", app.Theme.Mode())
	require.NoError(t, app.Theme.Toggle(ctx))
	assert.Equal(t, "dark", app.Theme.Mode())
	assert.Equal(t, "dark", settings.values["theme"])

	// a fresh state restores the persisted choice
	fresh := newTestState(t, settings)
	require.NoError(t, fresh.Theme.Restore(ctx))
	assert.Equal(t, "dark", fresh.Theme.Mode())
}

func TestThemeState_NilSettingsIsSessionOnly(t *testing.T) {
	ctx := context.Background()
	app := newTestState(t, nil)

	require.NoError(t, app.Theme.Toggle(ctx))
	assert.Equal(t, "dark", app.Theme.Mode())
	require.NoError(t, app.Theme.Restore(ctx))
	assert.Equal(t, "dark", app.Theme.Mode(), "restore without storage keeps the session value")
}
