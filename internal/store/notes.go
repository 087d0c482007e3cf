package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// NoteStore handles candidate notes. Notes are append-only: there is no
// update method on purpose.
type NoteStore struct {
	db  *database.DB
	log *logger.Logger
}

// Create appends a note to a candidate, deriving the mentions list from the
// content. Returns the new id.
func (s *NoteStore) Create(ctx context.Context, n *models.Note) (uint, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if n.PublicID == "" {
		n.PublicID = uuid.NewString()
	}
	n.Mentions = models.ExtractMentions(n.Content)

	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Candidate{}).Where("id = ?", n.CandidateID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(n).Error
	})
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}
	return n.ID, nil
}

// ListByCandidate returns a candidate's notes, newest first.
func (s *NoteStore) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Note, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var notes []models.Note
	err := s.db.GORM.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC, id DESC").
		Find(&notes).Error
	if err != nil {
		readFailed(s.log, "notes.list", err)
		return nil, nil
	}
	return notes, nil
}

// Delete removes a single note.
func (s *NoteStore) Delete(ctx context.Context, id uint) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	res := s.db.GORM.WithContext(ctx).Delete(&models.Note{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
