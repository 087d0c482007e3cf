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

// JobFilter narrows List results. Zero values mean "no constraint".
type JobFilter struct {
	Status     models.JobStatus
	Department string
	Search     string // case-insensitive substring over title and description
}

// JobStore handles the jobs collection.
type JobStore struct {
	db  *database.DB
	log *logger.Logger
}

// Create inserts a job, assigning defaults, timestamps and a unique slug
// derived from the title. Returns the new id.
func (s *JobStore) Create(ctx context.Context, job *models.Job) (uint, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	if !job.Status.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, job.Status)
	}

	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, models.Slugify(job.Title), 0)
		if err != nil {
			return err
		}
		job.Slug = slug
		return tx.Create(job).Error
	})
	if err != nil {
		return 0, fmt.Errorf("create job: %w", err)
	}
	return job.ID, nil
}

// uniqueSlug appends -2, -3, ... until the slug is free. excludeID skips the
// job being renamed so updates do not collide with themselves.
func uniqueSlug(tx *gorm.DB, base string, excludeID uint) (string, error) {
	if base == "" {
		base = "job"
	}
	slug := base
	for n := 2; ; n++ {
		var count int64
		q := tx.Model(&models.Job{}).Where("slug = ?", slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// Get returns a job by id, or nil when missing.
func (s *JobStore) Get(ctx context.Context, id uint) (*models.Job, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var job models.Job
	err := s.db.GORM.WithContext(ctx).First(&job, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		readFailed(s.log, "jobs.get", err)
		return nil, nil
	}
	return &job, nil
}

// GetBySlug returns a job by its slug, or nil when missing.
func (s *JobStore) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var job models.Job
	err := s.db.GORM.WithContext(ctx).Where("slug = ?", slug).First(&job).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		readFailed(s.log, "jobs.get_by_slug", err)
		return nil, nil
	}
	return &job, nil
}

// List returns jobs matching the filter, newest first.
func (s *JobStore) List(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	if !s.db.Available() {
		return nil, nil
	}
	q := s.db.GORM.WithContext(ctx).Model(&models.Job{}).Order("created_at DESC, id DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		readFailed(s.log, "jobs.list", err)
		return nil, nil
	}
	return jobs, nil
}

// Update merges the given fields into the job and refreshes updated_at.
// Returns the number of affected rows. Validation against the entity schema
// is the caller's responsibility; only enum sanity is enforced here.
func (s *JobStore) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if !s.db.Available() {
		return 0, ErrStorageUnavailable
	}
	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		if !models.JobStatus(status).IsValid() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
		}
	}
	delete(fields, "id")
	delete(fields, "created_at")
	fields["updated_at"] = time.Now()

	var affected int64
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if title, ok := fields["title"].(string); ok {
			slug, err := uniqueSlug(tx, models.Slugify(title), id)
			if err != nil {
				return err
			}
			fields["slug"] = slug
		}
		res := tx.Model(&models.Job{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("update job: %w", err)
	}
	return affected, nil
}

// SetStatus transitions a job between lifecycle states (archive, unarchive,
// close). Archiving is a status change, never a delete.
func (s *JobStore) SetStatus(ctx context.Context, id uint, status models.JobStatus) (int64, error) {
	if !status.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.Update(ctx, id, map[string]any{"status": string(status)})
}

// Reorder persists board positions: ids are stored positions 0..n-1.
func (s *JobStore) Reorder(ctx context.Context, ids []uint) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range ids {
			if err := tx.Model(&models.Job{}).Where("id = ?", id).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reorder jobs: %w", err)
	}
	return nil
}

// IncrementViews bumps the views counter. Best-effort: a lost increment is
// tolerated.
func (s *JobStore) IncrementViews(ctx context.Context, id uint) {
	if !s.db.Available() {
		return
	}
	err := s.db.GORM.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).
		Update("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		s.log.Error().Err(err).Uint("job_id", id).Msg("increment views failed")
	}
}

// Delete hard-deletes a job and cascades to its candidates (with their notes,
// stage events and responses) and its assessments (with their responses).
// The whole cascade runs in one transaction; any failure leaves everything
// unchanged.
func (s *JobStore) Delete(ctx context.Context, id uint) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	err := s.db.GORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Job{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var candidateIDs []uint
		if err := tx.Model(&models.Candidate{}).Where("job_id = ?", id).
			Pluck("id", &candidateIDs).Error; err != nil {
			return err
		}
		if err := deleteCandidateChildren(tx, candidateIDs); err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.Candidate{}).Error; err != nil {
			return err
		}

		var assessmentIDs []uint
		if err := tx.Model(&models.Assessment{}).Where("job_id = ?", id).
			Pluck("id", &assessmentIDs).Error; err != nil {
			return err
		}
		return deleteAssessments(tx, assessmentIDs)
	})
	if err != nil {
		return fmt.Errorf("delete job %d: %w", id, err)
	}
	return nil
}
