package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// CandidateFilter narrows List results. Zero values mean "no constraint".
type CandidateFilter struct {
	JobID  uint
	Stage  models.Stage
	Search string // case-insensitive substring over name and email
}

// CandidateStore handles the candidates collection and their stage history.
type CandidateStore struct {
	db  *database.DB
	log *logger.Logger
}

// Create inserts a candidate with defaults, seeds the stage history with the
// initial stage and bumps the job's applications counter. Returns the new id.
func (s *CandidateStore) Create(ctx context.Context, c *models.Candidate) (uint, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if c.Stage == "" {
		c.Stage = models.StageApplied
	}
	if !c.Stage.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStage, c.Stage)
	}
	if c.AppliedAt.IsZero() {
		c.AppliedAt = time.Now()
	}

	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		event := models.StageEvent{
			CandidateID: c.ID,
			Stage:       c.Stage,
			Note:        "application received",
			Timestamp:   c.AppliedAt,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if c.JobID != 0 {
			if err := tx.Model(&models.Job{}).Where("id = ?", c.JobID).
				Update("applications_count", gorm.Expr("applications_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("create candidate: %w", err)
	}
	return c.ID, nil
}

// Get returns a candidate by id with timeline and notes, or nil when missing.
func (s *CandidateStore) Get(ctx context.Context, id uint) (*models.Candidate, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var c models.Candidate
	err := s.db.GORM.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC, id ASC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		First(&c, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		readFailed(s.log, "candidates.get", err)
		return nil, nil
	}
	return &c, nil
}

// List returns candidates matching the filter, newest first.
func (s *CandidateStore) List(ctx context.Context, filter CandidateFilter) ([]models.Candidate, error) {
	if !s.db.Available() {
		return nil, nil
	}
	q := s.db.GORM.WithContext(ctx).Model(&models.Candidate{}).Order("created_at DESC, id DESC")
	if filter.JobID != 0 {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.Stage != "" {
		q = q.Where("stage = ?", filter.Stage)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}

	var candidates []models.Candidate
	if err := q.Find(&candidates).Error; err != nil {
		readFailed(s.log, "candidates.list", err)
		return nil, nil
	}
	return candidates, nil
}

// Update merges the given fields and refreshes updated_at. Stage changes must
// go through SetStage so the history stays truthful; a "stage" key here is
// rejected.
func (s *CandidateStore) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if _, ok := fields["stage"]; ok {
		return 0, fmt.Errorf("%w: stage changes go through SetStage", ErrInvalidStage)
	}
	delete(fields, "id")
	delete(fields, "created_at")
	fields["updated_at"] = time.Now()

	res := s.db.GORM.WithContext(ctx).Model(&models.Candidate{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("update candidate: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SetStage moves a candidate to a new pipeline stage and appends the
// transition to the stage history. History entries are never removed.
func (s *CandidateStore) SetStage(ctx context.Context, id uint, stage models.Stage, note, user string) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	if !stage.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}

	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Candidate
		if err := tx.First(&c, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if !c.Stage.CanTransitionTo(stage) {
			return fmt.Errorf("%w: cannot move from %q to %q", ErrInvalidStage, c.Stage, stage)
		}
		if err := tx.Model(&c).Updates(map[string]any{
			"stage":      string(stage),
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		event := models.StageEvent{
			CandidateID: id,
			Stage:       stage,
			Note:        note,
			User:        user,
			Timestamp:   time.Now(),
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return fmt.Errorf("set candidate stage: %w", err)
	}
	return nil
}

// Timeline returns the candidate's stage history, oldest first.
func (s *CandidateStore) Timeline(ctx context.Context, id uint) ([]models.StageEvent, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var events []models.StageEvent
	err := s.db.GORM.WithContext(ctx).
		Where("candidate_id = ?", id).
		Order("timestamp ASC, id ASC").
		Find(&events).Error
	if err != nil {
		readFailed(s.log, "candidates.timeline", err)
		return nil, nil
	}
	return events, nil
}

// Delete hard-deletes a candidate and cascades to owned notes, stage events
// and assessment responses in one transaction.
func (s *CandidateStore) Delete(ctx context.Context, id uint) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Candidate{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return deleteCandidateChildren(tx, []uint{id})
	})
	if err != nil {
		return fmt.Errorf("delete candidate %d: %w", id, err)
	}
	return nil
}

// deleteCandidateChildren removes everything owned by the given candidates.
// Runs inside the caller's transaction.
func deleteCandidateChildren(tx *gorm.DB, candidateIDs []uint) error {
	if len(candidateIDs) == 0 {
		return nil
	}
	if err := tx.Where("candidate_id IN ?", candidateIDs).Delete(&models.Note{}).Error; err != nil {
		return err
	}
	if err := tx.Where("candidate_id IN ?", candidateIDs).Delete(&models.StageEvent{}).Error; err != nil {
		return err
	}
	return tx.Where("candidate_id IN ?", candidateIDs).Delete(&models.Response{}).Error
}
