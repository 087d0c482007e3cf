package api

import (
	"context"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/store"
)

// JobsStore defines the interface for job data access.
type JobsStore interface {
	Create(ctx context.Context, job *models.Job) (uint, error)
	Get(ctx context.Context, id uint) (*models.Job, error)
	GetBySlug(ctx context.Context, slug string) (*models.Job, error)
	List(ctx context.Context, filter store.JobFilter) ([]models.Job, error)
	Update(ctx context.Context, id uint, fields map[string]any) (int64, error)
	SetStatus(ctx context.Context, id uint, status models.JobStatus) (int64, error)
	Reorder(ctx context.Context, ids []uint) error
	IncrementViews(ctx context.Context, id uint)
	Delete(ctx context.Context, id uint) error
}

// CandidatesStore defines the interface for candidate data access.
type CandidatesStore interface {
	Create(ctx context.Context, c *models.Candidate) (uint, error)
	Get(ctx context.Context, id uint) (*models.Candidate, error)
	List(ctx context.Context, filter store.CandidateFilter) ([]models.Candidate, error)
	Update(ctx context.Context, id uint, fields map[string]any) (int64, error)
	SetStage(ctx context.Context, id uint, stage models.Stage, note, user string) error
	Timeline(ctx context.Context, id uint) ([]models.StageEvent, error)
	Delete(ctx context.Context, id uint) error
}

// AssessmentsStore defines the interface for assessment data access.
type AssessmentsStore interface {
	Create(ctx context.Context, a *models.Assessment) (uint, error)
	Get(ctx context.Context, id uint) (*models.Assessment, error)
	List(ctx context.Context, filter store.AssessmentFilter) ([]models.Assessment, error)
	Update(ctx context.Context, id uint, fields map[string]any) (int64, error)
	ReplaceSections(ctx context.Context, id uint, sections []models.AssessmentSection) error
	Delete(ctx context.Context, id uint) error
}

// NotesStore defines the interface for note data access.
type NotesStore interface {
	Create(ctx context.Context, n *models.Note) (uint, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Note, error)
	Delete(ctx context.Context, id uint) error
}

// ResponsesStore defines the interface for assessment response data access.
type ResponsesStore interface {
	Start(ctx context.Context, candidateID, assessmentID uint) (*models.Response, error)
	SaveDraft(ctx context.Context, id uint, answers models.JSONMap) error
	Submit(ctx context.Context, id uint, answers models.JSONMap, timeSpent int) (*models.Response, error)
	Discard(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.Response, error)
	ListByAssessment(ctx context.Context, assessmentID uint) ([]models.Response, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Response, error)
}

// SettingsStore defines the interface for settings data access.
type SettingsStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	All(ctx context.Context) ([]models.Setting, error)
}

// HubBroadcaster defines the interface for WebSocket broadcasting.
type HubBroadcaster interface {
	Publish(entity, action string, id uint)
}
