package models

import (
	"time"
)

// Stage represents a candidate's position in the hiring pipeline.
//
// This is the canonical vocabulary; seed data and any imported datasets are
// normalized to it at the boundary.
type Stage string

// Stage constants in pipeline order.
const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageTechnical Stage = "technical"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
	StageWithdrawn Stage = "withdrawn"
)

// stageOrder maps pipeline stages to their position; terminal stages are absent.
var stageOrder = map[Stage]int{
	StageApplied:   0,
	StageScreening: 1,
	StageTechnical: 2,
	StageInterview: 3,
	StageOffer:     4,
}

// IsValid reports whether the stage is one of the known values.
func (s Stage) IsValid() bool {
	switch s {
	case StageApplied, StageScreening, StageTechnical, StageInterview,
		StageOffer, StageHired, StageRejected, StageWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether the stage ends the pipeline.
func (s Stage) IsTerminal() bool {
	return s == StageHired || s == StageRejected || s == StageWithdrawn
}

// CanTransitionTo reports whether a candidate may move from s to next.
// Forward moves along the pipeline are allowed, as is jumping to rejected or
// withdrawn from any non-terminal stage. Hired is only reachable from offer.
func (s Stage) CanTransitionTo(next Stage) bool {
	if !next.IsValid() || s.IsTerminal() || s == next {
		return false
	}
	switch next {
	case StageRejected, StageWithdrawn:
		return true
	case StageHired:
		return s == StageOffer
	default:
		return stageOrder[next] > stageOrder[s]
	}
}

// Candidate represents an applicant attached to a job.
type Candidate struct {
	ID uint `json:"id" gorm:"primaryKey;autoIncrement"`

	Name       string     `json:"name"`
	Email      string     `json:"email" gorm:"index"`
	Phone      string     `json:"phone"`
	Experience int        `json:"experience"` // years
	Skills     StringList `json:"skills" gorm:"type:text"`
	Location   string     `json:"location"`

	Stage Stage `json:"stage" gorm:"index;size:32"`

	// back-reference, not ownership; cascade runs from the job side
	JobID uint `json:"jobId" gorm:"index"`

	AppliedAt time.Time `json:"appliedAt"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	// owned, append-only
	Timeline []StageEvent `json:"timeline,omitempty" gorm:"foreignKey:CandidateID"`
	Notes    []Note       `json:"notes,omitempty" gorm:"foreignKey:CandidateID"`
}

// StageEvent is one entry of a candidate's stage history. Entries are only
// ever appended; removing one would falsify the record.
type StageEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CandidateID uint      `json:"candidateId" gorm:"index"`
	Stage       Stage     `json:"stage" gorm:"size:32"`
	Note        string    `json:"note"`
	User        string    `json:"user"`
	Timestamp   time.Time `json:"timestamp"`
}
