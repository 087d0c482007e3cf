package validation

import (
	"context"

	"github.com/talentflow/talentflow/internal/models"
)

// Per-entity schemas. These rule sets are the canonical definition of a valid
// form submission for each entity; handlers and state containers share them.

// JobSchema validates job create/edit forms. slugFree reports whether a slug
// derived from the title is still available; pass nil to skip the check
// (e.g. when the store will de-duplicate anyway).
func JobSchema(slugFree Predicate) Schema {
	title := []Rule{Required(), MinLength(3), MaxLength(120)}
	if slugFree != nil {
		title = append(title, Unique(slugFree).WithMessage("A job with this title already exists"))
	}
	return Schema{
		"title":       title,
		"department":  {Required()},
		"location":    {Required()},
		"description": {MaxLength(5000)},
		"salaryMin":   {Min(0)},
		"salaryMax":   {Min(0)},
		"status": {Custom(func(_ context.Context, value any, _ map[string]any) (bool, error) {
			s, _ := value.(string)
			return s == "" || models.JobStatus(s).IsValid(), nil
		}, "Unknown job status")},
	}
}

// CandidateSchema validates candidate application forms.
func CandidateSchema() Schema {
	return Schema{
		"name":       {Required(), MinLength(2), MaxLength(100)},
		"email":      {Required(), Email()},
		"phone":      {Phone()},
		"experience": {Min(0), Max(60)},
		"stage": {Custom(func(_ context.Context, value any, _ map[string]any) (bool, error) {
			s, _ := value.(string)
			return s == "" || models.Stage(s).IsValid(), nil
		}, "Unknown pipeline stage")},
	}
}

// AssessmentSchema validates assessment metadata forms.
func AssessmentSchema() Schema {
	return Schema{
		"title":        {Required(), MinLength(3), MaxLength(120)},
		"timeLimit":    {Min(0), Max(480)},
		"passingScore": {Min(0), Max(100)},
	}
}

// QuestionSchema validates a question in the builder. The options rule is
// cross-field: options are required only when the chosen type is a choice
// type.
func QuestionSchema() Schema {
	return Schema{
		"prompt": {Required(), MaxLength(1000)},
		"points": {Required(), Min(1)},
		"type": {Required(), Custom(func(_ context.Context, value any, _ map[string]any) (bool, error) {
			s, _ := value.(string)
			return models.QuestionType(s).IsValid(), nil
		}, "Unknown question type")},
		"options": {Custom(func(_ context.Context, value any, form map[string]any) (bool, error) {
			qt, _ := form["type"].(string)
			if !models.QuestionType(qt).IsChoice() {
				return true, nil
			}
			switch opts := value.(type) {
			case []string:
				return len(opts) >= 2, nil
			case []any:
				return len(opts) >= 2, nil
			default:
				return false, nil
			}
		}, "Choice questions need at least two options")},
	}
}

// NoteSchema validates note forms.
func NoteSchema() Schema {
	return Schema{
		"content": {Required(), MaxLength(2000)},
		"author":  {Required()},
	}
}
