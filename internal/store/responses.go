package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// ResponseStore handles assessment responses. A response is a mutable draft
// until Submit, then frozen.
type ResponseStore struct {
	db  *database.DB
	log *logger.Logger
}

// Start opens a draft response for a candidate/assessment pair.
func (s *ResponseStore) Start(ctx context.Context, candidateID, assessmentID uint) (*models.Response, error) {
	if !s.db.Available() {
		return nil, ErrStorageUnavailable
	}
	r := &models.Response{
		PublicID:     uuid.NewString(),
		CandidateID:  candidateID,
		AssessmentID: assessmentID,
		Answers:      models.JSONMap{},
		StartedAt:    time.Now(),
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Assessment{}).Where("id = ?", assessmentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(r).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("start response: %w", err)
	}
	return r, nil
}

// SaveDraft replaces the draft's answers. Fails on submitted responses.
func (s *ResponseStore) SaveDraft(ctx context.Context, id uint, answers models.JSONMap) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Response
		if err := tx.First(&r, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if r.Submitted {
			return ErrImmutableResponse
		}
		return tx.Model(&r).Updates(map[string]any{
			"answers":    answers,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Submit finalizes a draft: answers are stored, the response is auto-graded
// against the assessment and frozen. A second submit fails.
func (s *ResponseStore) Submit(ctx context.Context, id uint, answers models.JSONMap, timeSpent int) (*models.Response, error) {
	if !s.db.Available() {
		return nil, ErrStorageUnavailable
	}
	var submitted models.Response
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Response
		if err := tx.First(&r, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if r.Submitted {
			return ErrImmutableResponse
		}

		var a models.Assessment
		err := tx.Preload("Sections").Preload("Sections.Questions").
			First(&a, r.AssessmentID).Error
		if err != nil {
			return err
		}

		score := models.Score(&a, answers)
		now := time.Now()
		updates := map[string]any{
			"answers":      answers,
			"score":        score.Percent,
			"passed":       score.Percent >= float64(a.PassingScore),
			"submitted":    true,
			"submitted_at": now,
			"time_spent":   timeSpent,
			"updated_at":   now,
		}
		if err := tx.Model(&r).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&submitted, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("submit response: %w", err)
	}
	return &submitted, nil
}

// Discard deletes an unsubmitted draft. Submitted responses are frozen and
// cannot be discarded.
func (s *ResponseStore) Discard(ctx context.Context, id uint) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Response
		if err := tx.First(&r, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if r.Submitted {
			return ErrImmutableResponse
		}
		return tx.Delete(&models.Response{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("discard response: %w", err)
	}
	return nil
}

// Get returns a response by id, or nil when missing.
func (s *ResponseStore) Get(ctx context.Context, id uint) (*models.Response, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var r models.Response
	err := s.db.GORM.WithContext(ctx).First(&r, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		readFailed(s.log, "responses.get", err)
		return nil, nil
	}
	return &r, nil
}

// ListByAssessment returns submissions for an assessment, newest first.
func (s *ResponseStore) ListByAssessment(ctx context.Context, assessmentID uint) ([]models.Response, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var responses []models.Response
	err := s.db.GORM.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("created_at DESC, id DESC").
		Find(&responses).Error
	if err != nil {
		readFailed(s.log, "responses.list_by_assessment", err)
		return nil, nil
	}
	return responses, nil
}

// ListByCandidate returns a candidate's responses, newest first.
func (s *ResponseStore) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Response, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var responses []models.Response
	err := s.db.GORM.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC, id DESC").
		Find(&responses).Error
	if err != nil {
		readFailed(s.log, "responses.list_by_candidate", err)
		return nil, nil
	}
	return responses, nil
}
