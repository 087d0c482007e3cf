package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
)

func TestCandidateStore_Create_SeedsHistory(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	jobID, err := st.Jobs.Create(ctx, &models.Job{Title: "Platform Engineer", Status: models.JobStatusActive})
	require.NoError(t, err)

	id, err := st.Candidates.Create(ctx, &models.Candidate{
		Name: "Ravi Chandran", Email: "ravi@example.com", JobID: jobID,
	})
	require.NoError(t, err)

	candidate, err := st.Candidates.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, models.StageApplied, candidate.Stage)
	require.Len(t, candidate.Timeline, 1)
	assert.Equal(t, models.StageApplied, candidate.Timeline[0].Stage)

	job, err := st.Jobs.Get(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, 1, job.ApplicationsCount)
}

func TestCandidateStore_SetStage_AppendsHistory(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Candidates.Create(ctx, &models.Candidate{Name: "Lena Fox", Email: "lena@example.com"})
	require.NoError(t, err)

	require.NoError(t, st.Candidates.SetStage(ctx, id, models.StageScreening, "passed resume review", "recruiter"))
	require.NoError(t, st.Candidates.SetStage(ctx, id, models.StageTechnical, "", ""))

	timeline, err := st.Candidates.Timeline(ctx, id)
	require.NoError(t, err)
	require.Len(t, timeline, 3, "history grows by one entry per move and is never rewritten")
	assert.Equal(t, models.StageApplied, timeline[0].Stage)
	assert.Equal(t, models.StageScreening, timeline[1].Stage)
	assert.Equal(t, models.StageTechnical, timeline[2].Stage)
	assert.Equal(t, "passed resume review", timeline[1].Note)
}

func TestCandidateStore_SetStage_RejectsBackwardMove(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Candidates.Create(ctx, &models.Candidate{Name: "Omar Nasser", Email: "omar@example.com"})
	require.NoError(t, err)
	require.NoError(t, st.Candidates.SetStage(ctx, id, models.StageInterview, "", ""))

	err = st.Candidates.SetStage(ctx, id, models.StageScreening, "", "")
	require.ErrorIs(t, err, ErrInvalidStage)

	// failed move leaves the history untouched
	timeline, err := st.Candidates.Timeline(ctx, id)
	require.NoError(t, err)
	assert.Len(t, timeline, 2)
}

func TestCandidateStore_SetStage_TerminalRules(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Candidates.Create(ctx, &models.Candidate{Name: "June Ito", Email: "june@example.com"})
	require.NoError(t, err)

	// hired is only reachable from offer
	err = st.Candidates.SetStage(ctx, id, models.StageHired, "", "")
	require.ErrorIs(t, err, ErrInvalidStage)

	// rejection is allowed from any non-terminal stage
	require.NoError(t, st.Candidates.SetStage(ctx, id, models.StageRejected, "", ""))

	// terminal stages accept no further moves
	err = st.Candidates.SetStage(ctx, id, models.StageScreening, "", "")
	require.ErrorIs(t, err, ErrInvalidStage)
}

func TestCandidateStore_Update_RejectsStageField(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Candidates.Create(ctx, &models.Candidate{Name: "Petra Okafor", Email: "petra@example.com"})
	require.NoError(t, err)

	_, err = st.Candidates.Update(ctx, id, map[string]any{"stage": "interview"})
	require.Error(t, err, "stage changes must go through SetStage")

	affected, err := st.Candidates.Update(ctx, id, map[string]any{"phone": "+1 555 0100"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}

func TestCandidateStore_List_Filters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	jobID, err := st.Jobs.Create(ctx, &models.Job{Title: "Designer"})
	require.NoError(t, err)

	_, err = st.Candidates.Create(ctx, &models.Candidate{Name: "Alice Moreau", Email: "alice@example.com", JobID: jobID})
	require.NoError(t, err)
	_, err = st.Candidates.Create(ctx, &models.Candidate{Name: "Bob Tanaka", Email: "bob@other.org"})
	require.NoError(t, err)

	byJob, err := st.Candidates.List(ctx, CandidateFilter{JobID: jobID})
	require.NoError(t, err)
	assert.Len(t, byJob, 1)

	// search matches email as well as name, case-insensitively
	byEmail, err := st.Candidates.List(ctx, CandidateFilter{Search: "OTHER.ORG"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Bob Tanaka", byEmail[0].Name)
}

func TestCandidateStore_Delete_CascadesChildren(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Candidates.Create(ctx, &models.Candidate{Name: "Sana Haddad", Email: "sana@example.com"})
	require.NoError(t, err)
	_, err = st.Notes.Create(ctx, &models.Note{CandidateID: id, Content: "call scheduled with @maria"})
	require.NoError(t, err)

	require.NoError(t, st.Candidates.Delete(ctx, id))

	notes, err := st.Notes.ListByCandidate(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, notes)
	timeline, err := st.Candidates.Timeline(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, timeline)
}

func TestNoteStore_ExtractsMentions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Candidates.Create(ctx, &models.Candidate{Name: "Teo Varga", Email: "teo@example.com"})
	require.NoError(t, err)

	note := models.Note{CandidateID: id, Content: "@maria please pair with @jon.smith, then ping @maria again"}
	_, err = st.Notes.Create(ctx, &note)
	require.NoError(t, err)

	assert.Equal(t, models.StringList{"maria", "jon.smith"}, note.Mentions)
	assert.NotEmpty(t, note.PublicID)
}

func TestNoteStore_RequiresCandidate(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Notes.Create(context.Background(), &models.Note{CandidateID: 404, Content: "orphan"})
	require.ErrorIs(t, err, ErrNotFound)
}
