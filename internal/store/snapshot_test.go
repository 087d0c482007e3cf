package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	source := newTestStore(t)
	ctx := context.Background()

	jobID, err := source.Jobs.Create(ctx, &models.Job{Title: "Staff Engineer", Status: models.JobStatusActive})
	require.NoError(t, err)
	candidateID, err := source.Candidates.Create(ctx, &models.Candidate{
		Name: "Iris Blum", Email: "iris@example.com", JobID: jobID,
	})
	require.NoError(t, err)
	require.NoError(t, source.Candidates.SetStage(ctx, candidateID, models.StageScreening, "", ""))
	_, err = source.Notes.Create(ctx, &models.Note{CandidateID: candidateID, Content: "ping @lee"})
	require.NoError(t, err)
	assessmentID, err := source.Assessments.Create(ctx, twoSectionAssessment())
	require.NoError(t, err)
	require.NoError(t, source.Settings.Set(ctx, "theme", "dark"))

	snap, err := source.ExportAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Jobs, 1)
	assert.Len(t, snap.Candidates, 1)
	assert.Len(t, snap.StageEvents, 2)
	assert.Len(t, snap.Sections, 2)
	assert.Len(t, snap.Questions, 3)

	target := newTestStore(t)
	require.NoError(t, target.ImportAll(ctx, snap))

	job, err := target.Jobs.Get(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "Staff Engineer", job.Title)

	candidate, err := target.Candidates.Get(ctx, candidateID)
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, models.StageScreening, candidate.Stage)
	assert.Len(t, candidate.Timeline, 2)
	assert.Len(t, candidate.Notes, 1)

	a, err := target.Assessments.Get(ctx, assessmentID)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Len(t, a.Sections, 2)

	theme, err := target.Settings.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestSnapshot_ImportReplacesExisting(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Jobs.Create(ctx, &models.Job{Title: "Old Job"})
	require.NoError(t, err)

	require.NoError(t, st.ImportAll(ctx, &Snapshot{
		Jobs: []models.Job{{ID: 7, Title: "Imported Job", Slug: "imported-job", Status: models.JobStatusActive}},
	}))

	jobs, err := st.Jobs.List(ctx, JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Imported Job", jobs[0].Title)
	assert.EqualValues(t, 7, jobs[0].ID)
}
