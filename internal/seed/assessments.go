package seed

import (
	"fmt"
	"math/rand"

	"github.com/talentflow/talentflow/internal/models"
)

// The generator's historical question vocabulary. Mapped to the canonical
// models.QuestionType at the boundary so nothing downstream ever sees it.
const (
	seedQuestionMCQ     = "mcq"
	seedQuestionText    = "text"
	seedQuestionNumeric = "numeric"
	seedQuestionFile    = "file"
	seedQuestionBoolean = "boolean"
)

// mapQuestionType normalizes the seed vocabulary to the canonical enum.
// boolean becomes a single-choice Yes/No question.
func mapQuestionType(seedType string) models.QuestionType {
	switch seedType {
	case seedQuestionMCQ:
		return models.QuestionMultiChoice
	case seedQuestionText:
		return models.QuestionShortText
	case seedQuestionNumeric:
		return models.QuestionNumeric
	case seedQuestionFile:
		return models.QuestionFileUpload
	case seedQuestionBoolean:
		return models.QuestionSingleChoice
	default:
		return models.QuestionShortText
	}
}

var seedQuestionTypes = []string{
	seedQuestionMCQ, seedQuestionText, seedQuestionNumeric,
	seedQuestionFile, seedQuestionBoolean,
}

// Assessments generates one screening assessment for roughly half the active
// jobs.
func Assessments(jobs []models.Job) []models.Assessment {
	var assessments []models.Assessment
	for _, job := range jobs {
		if job.Status != models.JobStatusActive || rand.Intn(2) == 0 {
			continue
		}
		a := models.Assessment{
			Title:        fmt.Sprintf("%s Screening", job.Title),
			Description:  fmt.Sprintf("Initial screening for the %s role.", job.Title),
			JobID:        job.ID,
			Status:       models.AssessmentStatusPublished,
			TimeLimit:    30 + rand.Intn(4)*15,
			PassingScore: 60 + rand.Intn(3)*10,
			Sections: []models.AssessmentSection{
				{
					Title: "Technical Knowledge",
					Order: 0,
					Questions: questions(job.Tags, 3+rand.Intn(3)),
				},
				{
					Title: "Background",
					Order: 1,
					Questions: questions(job.Tags, 2),
				},
			},
		}
		assessments = append(assessments, a)
	}
	return assessments
}

func questions(topics []string, n int) []models.Question {
	qs := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		topic := "the role"
		if len(topics) > 0 {
			topic = topics[rand.Intn(len(topics))]
		}
		q := models.Question{
			Type:     mapQuestionType(seedQuestionTypes[rand.Intn(len(seedQuestionTypes))]),
			Prompt:   fmt.Sprintf("Question %d: tell us about your experience with %s.", i+1, topic),
			Required: rand.Intn(4) != 0,
			Points:   5 + rand.Intn(3)*5,
			Order:    i,
		}
		switch q.Type {
		case models.QuestionSingleChoice:
			q.Options = models.StringList{"Yes", "No"}
			yes := "Yes"
			q.CorrectAnswer = &yes
		case models.QuestionMultiChoice:
			q.Options = models.StringList{"Daily", "Weekly", "Monthly", "Never"}
			q.CorrectAnswers = models.StringList{"Daily", "Weekly"}
		case models.QuestionNumeric:
			min, max := 0.0, 30.0
			q.Min = &min
			q.Max = &max
		case models.QuestionShortText:
			maxLen := 500
			q.MaxLength = &maxLen
		case models.QuestionFileUpload:
			size := int64(5 << 20)
			q.AllowedFileTypes = models.StringList{".pdf", ".doc", ".docx"}
			q.MaxFileSize = &size
		}
		qs = append(qs, q)
	}
	return qs
}
