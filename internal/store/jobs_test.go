package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/models"
)

func TestJobStore_Create_SlugDerivation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Jobs.Create(ctx, &models.Job{Title: "Senior QA Engineer "})
	require.NoError(t, err)

	job, err := st.Jobs.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "senior-qa-engineer", job.Slug)
	assert.Equal(t, models.JobStatusDraft, job.Status, "status defaults to draft")
}

func TestJobStore_Create_SlugCollision(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Jobs.Create(ctx, &models.Job{Title: "Backend Engineer"})
	require.NoError(t, err)
	second := models.Job{Title: "Backend Engineer"}
	_, err = st.Jobs.Create(ctx, &second)
	require.NoError(t, err)
	third := models.Job{Title: "Backend Engineer"}
	_, err = st.Jobs.Create(ctx, &third)
	require.NoError(t, err)

	assert.Equal(t, "backend-engineer-2", second.Slug)
	assert.Equal(t, "backend-engineer-3", third.Slug)
}

func TestJobStore_List_Filters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Jobs.Create(ctx, &models.Job{Title: "Frontend Developer", Department: "Engineering", Status: models.JobStatusActive})
	require.NoError(t, err)
	_, err = st.Jobs.Create(ctx, &models.Job{Title: "Product Designer", Department: "Design", Status: models.JobStatusActive})
	require.NoError(t, err)
	_, err = st.Jobs.Create(ctx, &models.Job{Title: "Data Analyst", Department: "Engineering", Status: models.JobStatusDraft})
	require.NoError(t, err)

	active, err := st.Jobs.List(ctx, JobFilter{Status: models.JobStatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	engineering, err := st.Jobs.List(ctx, JobFilter{Department: "Engineering"})
	require.NoError(t, err)
	assert.Len(t, engineering, 2)

	// search is case-insensitive over the title
	found, err := st.Jobs.List(ctx, JobFilter{Search: "designer"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Product Designer", found[0].Title)
}

func TestJobStore_Update_TitleRederivesSlug(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Jobs.Create(ctx, &models.Job{Title: "Mobile Developer"})
	require.NoError(t, err)

	affected, err := st.Jobs.Update(ctx, id, map[string]any{"title": "iOS Developer"})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	job, err := st.Jobs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ios-developer", job.Slug)
}

func TestJobStore_Update_RejectsInvalidStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Jobs.Create(ctx, &models.Job{Title: "DevOps Engineer"})
	require.NoError(t, err)

	_, err = st.Jobs.Update(ctx, id, map[string]any{"status": "paused"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestJobStore_ArchiveIsStatusChange(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Jobs.Create(ctx, &models.Job{Title: "SRE", Status: models.JobStatusActive})
	require.NoError(t, err)

	affected, err := st.Jobs.SetStatus(ctx, id, models.JobStatusArchived)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	job, err := st.Jobs.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, job, "archived job must still exist")
	assert.Equal(t, models.JobStatusArchived, job.Status)
}

func TestJobStore_Reorder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var ids []uint
	for _, title := range []string{"A", "B", "C"} {
		id, err := st.Jobs.Create(ctx, &models.Job{Title: title})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, st.Jobs.Reorder(ctx, []uint{ids[2], ids[0], ids[1]}))

	job, err := st.Jobs.Get(ctx, ids[2])
	require.NoError(t, err)
	assert.Equal(t, 0, job.Position)
	job, err = st.Jobs.Get(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, 2, job.Position)
}

func TestJobStore_Delete_Cascades(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	jobID, err := st.Jobs.Create(ctx, &models.Job{Title: "Fullstack Engineer", Status: models.JobStatusActive})
	require.NoError(t, err)

	candidateID, err := st.Candidates.Create(ctx, &models.Candidate{
		Name: "Mina Solano", Email: "mina@example.com", JobID: jobID,
	})
	require.NoError(t, err)

	_, err = st.Notes.Create(ctx, &models.Note{CandidateID: candidateID, Content: "strong intro call"})
	require.NoError(t, err)

	assessmentID, err := st.Assessments.Create(ctx, &models.Assessment{
		Title: "Fullstack Screen", JobID: jobID,
	})
	require.NoError(t, err)

	resp, err := st.Responses.Start(ctx, candidateID, assessmentID)
	require.NoError(t, err)

	require.NoError(t, st.Jobs.Delete(ctx, jobID))

	candidate, err := st.Candidates.Get(ctx, candidateID)
	require.NoError(t, err)
	assert.Nil(t, candidate, "candidate must be removed with the job")

	notes, err := st.Notes.ListByCandidate(ctx, candidateID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	a, err := st.Assessments.Get(ctx, assessmentID)
	require.NoError(t, err)
	assert.Nil(t, a, "assessment must be removed with the job")

	gone, err := st.Responses.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "responses must be removed with the job")
}

func TestJobStore_Delete_MidCascadeFailureRollsBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	jobID, err := st.Jobs.Create(ctx, &models.Job{Title: "Fullstack Engineer", Status: models.JobStatusActive})
	require.NoError(t, err)
	candidateID, err := st.Candidates.Create(ctx, &models.Candidate{
		Name: "Mina Solano", Email: "mina@example.com", JobID: jobID,
	})
	require.NoError(t, err)
	assessmentID, err := st.Assessments.Create(ctx, &models.Assessment{
		Title: "Fullstack Screen", JobID: jobID,
	})
	require.NoError(t, err)

	// fail the candidate delete, after the job row itself is already gone
	boom := errors.New("disk full")
	err = st.db.GORM.Callback().Delete().Before("gorm:delete").Register("fail_candidates", func(tx *gorm.DB) {
		if tx.Statement.Table == "candidates" {
			tx.AddError(boom)
		}
	})
	require.NoError(t, err)

	err = st.Jobs.Delete(ctx, jobID)
	require.ErrorIs(t, err, boom)
	require.NoError(t, st.db.GORM.Callback().Delete().Remove("fail_candidates"))

	// nothing partial: job, candidate and assessment all survive the rollback
	job, err := st.Jobs.Get(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, job, "job row must be restored by the rollback")

	candidate, err := st.Candidates.Get(ctx, candidateID)
	require.NoError(t, err)
	require.NotNil(t, candidate)

	a, err := st.Assessments.Get(ctx, assessmentID)
	require.NoError(t, err)
	require.NotNil(t, a)
}

func TestJobStore_Delete_Missing(t *testing.T) {
	st := newTestStore(t)
	err := st.Jobs.Delete(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}
