package store

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
)

func keyFor(questionID uint) string {
	return strconv.FormatUint(uint64(questionID), 10)
}

func twoSectionAssessment() *models.Assessment {
	passing := 50
	correct := "const"
	return &models.Assessment{
		Title:        "Go Screen",
		Status:       models.AssessmentStatusPublished,
		PassingScore: passing,
		Sections: []models.AssessmentSection{
			{
				Title: "Technical Knowledge",
				Questions: []models.Question{
					{
						Type:          models.QuestionSingleChoice,
						Prompt:        "Which keyword declares a constant?",
						Options:       models.StringList{"var", "const", "let"},
						CorrectAnswer: &correct,
						Points:        10,
					},
					{
						Type:   models.QuestionShortText,
						Prompt: "Describe a goroutine in one sentence.",
						Points: 5,
					},
				},
			},
			{
				Title: "Background",
				Questions: []models.Question{
					{
						Type:   models.QuestionLongText,
						Prompt: "Tell us about a production incident you handled.",
						Points: 5,
					},
				},
			},
		},
	}
}

func TestAssessmentStore_Create_NormalizesOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Assessments.Create(ctx, twoSectionAssessment())
	require.NoError(t, err)

	a, err := st.Assessments.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, a)
	require.Len(t, a.Sections, 2)
	assert.Equal(t, "Technical Knowledge", a.Sections[0].Title)
	assert.Len(t, a.Sections[0].Questions, 2)
	assert.Equal(t, "Background", a.Sections[1].Title)
}

func TestAssessmentStore_Create_EmptyGetsBlankSection(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Assessments.Create(ctx, &models.Assessment{Title: "Empty Shell"})
	require.NoError(t, err)

	a, err := st.Assessments.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, a.Sections, 1)
	assert.Equal(t, models.AssessmentStatusDraft, a.Status)
}

func TestAssessmentStore_Create_ValidatesQuestions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	bad := &models.Assessment{
		Title: "Broken",
		Sections: []models.AssessmentSection{{
			Title: "S1",
			Questions: []models.Question{{
				Type:   models.QuestionSingleChoice,
				Prompt: "pick one",
				Points: 5,
				// no options
			}},
		}},
	}
	_, err := st.Assessments.Create(ctx, bad)
	require.ErrorIs(t, err, models.ErrOptionsRequired)
}

func TestAssessmentStore_ReplaceSections(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Assessments.Create(ctx, twoSectionAssessment())
	require.NoError(t, err)

	err = st.Assessments.ReplaceSections(ctx, id, []models.AssessmentSection{{
		Title: "Only Section",
		Questions: []models.Question{{
			Type:   models.QuestionNumeric,
			Prompt: "Years of Go experience?",
			Points: 5,
		}},
	}})
	require.NoError(t, err)

	a, err := st.Assessments.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, a.Sections, 1)
	assert.Equal(t, "Only Section", a.Sections[0].Title)

	// the last section cannot be removed
	err = st.Assessments.ReplaceSections(ctx, id, nil)
	require.ErrorIs(t, err, ErrLastSection)
}

func TestResponseStore_SubmitScoresAndFreezes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Assessments.Create(ctx, twoSectionAssessment())
	require.NoError(t, err)

	a, err := st.Assessments.Get(ctx, id)
	require.NoError(t, err)
	questionID := a.Sections[0].Questions[0].ID

	draft, err := st.Responses.Start(ctx, 1, id)
	require.NoError(t, err)
	require.False(t, draft.Submitted)

	answers := models.JSONMap{keyFor(questionID): "const"}
	require.NoError(t, st.Responses.SaveDraft(ctx, draft.ID, answers))

	submitted, err := st.Responses.Submit(ctx, draft.ID, answers, 300)
	require.NoError(t, err)
	assert.True(t, submitted.Submitted)
	// only the choice question is auto-gradable: 10 of 10 gradable points
	assert.InDelta(t, 100.0, submitted.Score, 0.01)
	assert.True(t, submitted.Passed)
	assert.NotNil(t, submitted.SubmittedAt)

	// frozen after submit
	err = st.Responses.SaveDraft(ctx, draft.ID, answers)
	require.ErrorIs(t, err, ErrImmutableResponse)
	_, err = st.Responses.Submit(ctx, draft.ID, answers, 10)
	require.ErrorIs(t, err, ErrImmutableResponse)
}

func TestResponseStore_DiscardDraft(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.Assessments.Create(ctx, twoSectionAssessment())
	require.NoError(t, err)

	draft, err := st.Responses.Start(ctx, 1, id)
	require.NoError(t, err)

	require.NoError(t, st.Responses.Discard(ctx, draft.ID))

	gone, err := st.Responses.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// submitted responses are frozen, not discardable
	second, err := st.Responses.Start(ctx, 2, id)
	require.NoError(t, err)
	_, err = st.Responses.Submit(ctx, second.ID, models.JSONMap{}, 10)
	require.NoError(t, err)
	err = st.Responses.Discard(ctx, second.ID)
	require.ErrorIs(t, err, ErrImmutableResponse)

	err = st.Responses.Discard(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResponseStore_StartUnknownAssessment(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Responses.Start(context.Background(), 1, 404)
	require.ErrorIs(t, err, ErrNotFound)
}
