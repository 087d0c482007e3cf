package models

import (
	"time"
)

// Response is one assessment attempt. Draft responses may be auto-saved
// repeatedly; once Submitted is set the answers are immutable.
type Response struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	PublicID     string `json:"publicId" gorm:"uniqueIndex;size:36"`
	CandidateID  uint   `json:"candidateId" gorm:"index"`
	AssessmentID uint   `json:"assessmentId" gorm:"index"`

	// question id (as string) -> answer value; shape depends on question type
	Answers JSONMap `json:"answers" gorm:"type:text"`

	Score       float64    `json:"score"` // percentage
	Passed      bool       `json:"passed"`
	Submitted   bool       `json:"submitted"`
	TimeSpent   int        `json:"timeSpent"` // seconds
	StartedAt   time.Time  `json:"startedAt"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Setting is a persisted key/value preference, one row per key.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
