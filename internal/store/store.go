// Package store implements the persistence layer: per-entity collections over
// the embedded database with filtered queries and cascading deletes.
//
// Failure semantics: reads fail open (engine errors are logged and surfaced
// as empty results) so a broken disk never takes down a list view; writes
// return errors. When the engine never opened, writes fail with
// ErrStorageUnavailable and reads return nothing.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// store errors
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidStage       = errors.New("invalid candidate stage")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrLastSection        = errors.New("cannot delete the last remaining section")
	ErrImmutableResponse  = errors.New("submitted responses cannot be modified")
)

// Store aggregates the per-entity collections over one database handle.
type Store struct {
	Jobs        *JobStore
	Candidates  *CandidateStore
	Assessments *AssessmentStore
	Notes       *NoteStore
	Responses   *ResponseStore
	Settings    *SettingStore

	db  *database.DB
	log *logger.Logger
}

// New creates a store over the given database handle.
func New(db *database.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		Jobs:        &JobStore{db: db, log: log},
		Candidates:  &CandidateStore{db: db, log: log},
		Assessments: &AssessmentStore{db: db, log: log},
		Notes:       &NoteStore{db: db, log: log},
		Responses:   &ResponseStore{db: db, log: log},
		Settings:    &SettingStore{db: db, log: log},
		db:          db,
		log:         log,
	}
}

// Available reports whether the underlying engine is usable.
func (s *Store) Available() bool {
	return s.db.Available()
}

// Bootstrap seeds the database on first open: if the jobs collection is
// empty, fixtures from generate are bulk-loaded exactly once. Subsequent
// opens are no-ops.
func (s *Store) Bootstrap(ctx context.Context, generate func() ([]models.Job, []models.Candidate, []models.Assessment)) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}

	var count int64
	if err := s.db.GORM.WithContext(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	jobs, candidates, assessments := generate()
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range jobs {
			if err := tx.Create(&jobs[i]).Error; err != nil {
				return err
			}
		}
		for i := range candidates {
			if err := tx.Create(&candidates[i]).Error; err != nil {
				return err
			}
		}
		for i := range assessments {
			if err := tx.Create(&assessments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Int("jobs", len(jobs)).
		Int("candidates", len(candidates)).
		Int("assessments", len(assessments)).
		Msg("seeded empty database")
	return nil
}

// readFailed logs an engine error on the read path. Reads degrade to empty
// results rather than propagating.
func readFailed(log *logger.Logger, op string, err error) {
	log.Error().Err(err).Str("op", op).Msg("read failed, returning empty result")
}
