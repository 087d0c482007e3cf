package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// AssessmentFilter narrows List results. Zero values mean "no constraint".
type AssessmentFilter struct {
	JobID  uint
	Status models.AssessmentStatus
}

// AssessmentStore handles assessments with their owned sections and questions.
type AssessmentStore struct {
	db  *database.DB
	log *logger.Logger
}

// Create inserts an assessment tree. An assessment under construction must
// hold at least one section, so an empty one is given a blank first section.
func (s *AssessmentStore) Create(ctx context.Context, a *models.Assessment) (uint, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if a.Status == "" {
		a.Status = models.AssessmentStatusDraft
	}
	if !a.Status.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	if len(a.Sections) == 0 {
		a.Sections = []models.AssessmentSection{{Title: "Section 1", Order: 0}}
	}
	for si := range a.Sections {
		a.Sections[si].Order = si
		for qi := range a.Sections[si].Questions {
			q := &a.Sections[si].Questions[qi]
			q.Order = qi
			if err := q.Validate(); err != nil {
				return 0, fmt.Errorf("section %d question %d: %w", si, qi, err)
			}
		}
	}

	if err := s.db.GORM.WithContext(ctx).Create(a).Error; err != nil {
		return 0, fmt.Errorf("create assessment: %w", err)
	}
	return a.ID, nil
}

// Get returns an assessment with its full section/question tree, or nil.
func (s *AssessmentStore) Get(ctx context.Context, id uint) (*models.Assessment, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var a models.Assessment
	err := s.db.GORM.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_order ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order ASC")
		}).
		First(&a, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		readFailed(s.log, "assessments.get", err)
		return nil, nil
	}
	return &a, nil
}

// List returns assessments matching the filter, newest first, without their
// question trees.
func (s *AssessmentStore) List(ctx context.Context, filter AssessmentFilter) ([]models.Assessment, error) {
	if !s.db.Available() {
		return nil, nil
	}
	q := s.db.GORM.WithContext(ctx).Model(&models.Assessment{}).Order("created_at DESC, id DESC")
	if filter.JobID != 0 {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var assessments []models.Assessment
	if err := q.Find(&assessments).Error; err != nil {
		readFailed(s.log, "assessments.list", err)
		return nil, nil
	}
	return assessments, nil
}

// Update merges top-level fields (title, description, status, timeLimit,
// passingScore) and refreshes updated_at. Section edits go through
// ReplaceSections.
func (s *AssessmentStore) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		if !models.AssessmentStatus(status).IsValid() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
		}
	}
	delete(fields, "id")
	delete(fields, "created_at")
	fields["updated_at"] = time.Now()

	res := s.db.GORM.WithContext(ctx).Model(&models.Assessment{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("update assessment: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ReplaceSections swaps the assessment's section tree for the given one in a
// single transaction. At least one section must remain; the builder cannot
// delete the last one.
func (s *AssessmentStore) ReplaceSections(ctx context.Context, id uint, sections []models.AssessmentSection) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	if len(sections) == 0 {
		return ErrLastSection
	}
	for si := range sections {
		sections[si].ID = 0
		sections[si].AssessmentID = id
		sections[si].Order = si
		for qi := range sections[si].Questions {
			q := &sections[si].Questions[qi]
			q.ID = 0
			q.Order = qi
			if err := q.Validate(); err != nil {
				return fmt.Errorf("section %d question %d: %w", si, qi, err)
			}
		}
	}

	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Assessment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := deleteSectionTrees(tx, id); err != nil {
			return err
		}
		for i := range sections {
			if err := tx.Create(&sections[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Assessment{}).Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return fmt.Errorf("replace sections: %w", err)
	}
	return nil
}

// Delete hard-deletes an assessment, its section tree and all responses to
// it, atomically.
func (s *AssessmentStore) Delete(ctx context.Context, id uint) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Assessment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return deleteAssessments(tx, []uint{id})
	})
	if err != nil {
		return fmt.Errorf("delete assessment %d: %w", id, err)
	}
	return nil
}

// deleteSectionTrees removes all sections and questions under an assessment.
func deleteSectionTrees(tx *gorm.DB, assessmentID uint) error {
	var sectionIDs []uint
	if err := tx.Model(&models.AssessmentSection{}).Where("assessment_id = ?", assessmentID).
		Pluck("id", &sectionIDs).Error; err != nil {
		return err
	}
	if len(sectionIDs) > 0 {
		if err := tx.Where("section_id IN ?", sectionIDs).Delete(&models.Question{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("assessment_id = ?", assessmentID).Delete(&models.AssessmentSection{}).Error
}

// deleteAssessments removes the given assessments with their section trees
// and responses. Runs inside the caller's transaction.
func deleteAssessments(tx *gorm.DB, ids []uint) error {
	for _, id := range ids {
		if err := deleteSectionTrees(tx, id); err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("assessment_id IN ?", ids).Delete(&models.Response{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Assessment{}).Error
}
