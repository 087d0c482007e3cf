package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/models"
)

// Snapshot is a full-database backup: every collection, flat.
type Snapshot struct {
	Jobs        []models.Job               `json:"jobs"`
	Candidates  []models.Candidate         `json:"candidates"`
	StageEvents []models.StageEvent        `json:"stageEvents"`
	Assessments []models.Assessment        `json:"assessments"`
	Sections    []models.AssessmentSection `json:"sections"`
	Questions   []models.Question          `json:"questions"`
	Responses   []models.Response          `json:"responses"`
	Notes       []models.Note              `json:"notes"`
	Settings    []models.Setting           `json:"settings"`
}

// ExportAll reads every collection into a snapshot.
func (s *Store) ExportAll(ctx context.Context) (*Snapshot, error) {
	if !s.db.Available() {
		return nil, ErrStorageUnavailable
	}
	snap := &Snapshot{}
	db := s.db.GORM.WithContext(ctx)
	for _, step := range []struct {
		name string
		dest any
	}{
		{"jobs", &snap.Jobs},
		{"candidates", &snap.Candidates},
		{"stage events", &snap.StageEvents},
		{"assessments", &snap.Assessments},
		{"sections", &snap.Sections},
		{"questions", &snap.Questions},
		{"responses", &snap.Responses},
		{"notes", &snap.Notes},
		{"settings", &snap.Settings},
	} {
		if err := db.Find(step.dest).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", step.name, err)
		}
	}
	return snap, nil
}

// ImportAll restores a snapshot: all collections are cleared, then the
// snapshot is bulk-inserted, in one transaction.
func (s *Store) ImportAll(ctx context.Context, snap *Snapshot) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Setting{}, &models.Note{}, &models.Response{},
			&models.Question{}, &models.AssessmentSection{}, &models.Assessment{},
			&models.StageEvent{}, &models.Candidate{}, &models.Job{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		for _, batch := range []struct {
			name   string
			insert func() error
		}{
			{"jobs", func() error { return createAll(tx, snap.Jobs) }},
			{"candidates", func() error { return createAll(tx, snap.Candidates) }},
			{"stage events", func() error { return createAll(tx, snap.StageEvents) }},
			{"assessments", func() error { return createAll(tx, snap.Assessments) }},
			{"sections", func() error { return createAll(tx, snap.Sections) }},
			{"questions", func() error { return createAll(tx, snap.Questions) }},
			{"responses", func() error { return createAll(tx, snap.Responses) }},
			{"notes", func() error { return createAll(tx, snap.Notes) }},
			{"settings", func() error { return createAll(tx, snap.Settings) }},
		} {
			if err := batch.insert(); err != nil {
				return fmt.Errorf("import %s: %w", batch.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	return nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	for i := range rows {
		if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
