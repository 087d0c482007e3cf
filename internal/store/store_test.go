package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.InMemory, logger.Nop())
	require.NoError(t, err)
	require.True(t, db.Available())
	t.Cleanup(func() { _ = db.Close() })
	return New(db, logger.Nop())
}

func TestBootstrap_SeedsOnce(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	generate := func() ([]models.Job, []models.Candidate, []models.Assessment) {
		return []models.Job{
				{Title: "Backend Engineer", Slug: "backend-engineer", Status: models.JobStatusActive},
			}, []models.Candidate{
				{Name: "Ada Park", Email: "ada@example.com", Stage: models.StageApplied, JobID: 1},
			}, nil
	}

	require.NoError(t, st.Bootstrap(ctx, generate))

	jobs, err := st.Jobs.List(ctx, JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	// second bootstrap must not duplicate fixtures
	require.NoError(t, st.Bootstrap(ctx, generate))
	jobs, err = st.Jobs.List(ctx, JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}

func TestStore_Unavailable(t *testing.T) {
	db := &database.DB{}
	st := New(db, logger.Nop())
	ctx := context.Background()

	_, err := st.Jobs.Create(ctx, &models.Job{Title: "X"})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	// reads fail open
	jobs, err := st.Jobs.List(ctx, JobFilter{})
	require.NoError(t, err)
	require.Empty(t, jobs)

	job, err := st.Jobs.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, job)
}
