package models

import (
	"errors"
	"time"
)

// AssessmentStatus represents the publication state of an assessment.
type AssessmentStatus string

// AssessmentStatus constants.
const (
	AssessmentStatusDraft     AssessmentStatus = "draft"
	AssessmentStatusPublished AssessmentStatus = "published"
	AssessmentStatusArchived  AssessmentStatus = "archived"
)

// IsValid reports whether the status is one of the known values.
func (s AssessmentStatus) IsValid() bool {
	switch s {
	case AssessmentStatusDraft, AssessmentStatusPublished, AssessmentStatusArchived:
		return true
	}
	return false
}

// QuestionType discriminates the question variants.
//
// Canonical vocabulary; the seed generator's short names (mcq, text, numeric,
// file, boolean) are mapped here at generation time.
type QuestionType string

// QuestionType constants.
const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file-upload"
)

// IsValid reports whether the type is one of the known values.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText,
		QuestionLongText, QuestionNumeric, QuestionFileUpload:
		return true
	}
	return false
}

// IsChoice reports whether the type carries an options list.
func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice
}

// Assessment is a test attached to a job, owning ordered sections.
type Assessment struct {
	ID          uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	JobID       uint             `json:"jobId" gorm:"index"`
	Status      AssessmentStatus `json:"status" gorm:"index;size:32"`

	TimeLimit    int `json:"timeLimit"`    // minutes, 0 means unlimited
	PassingScore int `json:"passingScore"` // percentage

	Sections []AssessmentSection `json:"sections" gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssessmentSection owns an ordered list of questions.
type AssessmentSection struct {
	ID           uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	AssessmentID uint       `json:"assessmentId" gorm:"index"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Order        int        `json:"order" gorm:"column:section_order"`
	Questions    []Question `json:"questions" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

// Question is a tagged variant: Type selects which of the optional fields
// are meaningful. Validate enforces the per-variant shape.
type Question struct {
	ID        uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	SectionID uint         `json:"sectionId" gorm:"index"`
	Type      QuestionType `json:"type" gorm:"size:32"`
	Prompt    string       `json:"prompt"`
	Required  bool         `json:"required"`
	Points    int          `json:"points"`
	Order     int          `json:"order" gorm:"column:question_order"`

	// choice variants
	Options        StringList `json:"options,omitempty" gorm:"type:text"`
	CorrectAnswer  *string    `json:"correctAnswer,omitempty"`
	CorrectAnswers StringList `json:"correctAnswers,omitempty" gorm:"type:text"`

	// numeric variant
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// text variants
	MaxLength *int `json:"maxLength,omitempty"`

	// file-upload variant
	AllowedFileTypes StringList `json:"allowedFileTypes,omitempty" gorm:"type:text"`
	MaxFileSize      *int64     `json:"maxFileSize,omitempty"` // bytes

	Explanation string `json:"explanation,omitempty"`
}

// question shape errors
var (
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrOptionsRequired     = errors.New("choice questions need at least two options")
	ErrBadNumericRange     = errors.New("numeric min must not exceed max")
	ErrPointsNotPositive   = errors.New("points must be a positive integer")
)

// Validate checks that the question's fields match its type.
func (q *Question) Validate() error {
	if q.Points <= 0 {
		return ErrPointsNotPositive
	}
	switch q.Type {
	case QuestionSingleChoice, QuestionMultiChoice:
		if len(q.Options) < 2 {
			return ErrOptionsRequired
		}
		return nil
	case QuestionNumeric:
		if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
			return ErrBadNumericRange
		}
		return nil
	case QuestionShortText, QuestionLongText, QuestionFileUpload:
		return nil
	default:
		return ErrUnknownQuestionType
	}
}
