package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// SettingStore persists UI preferences as key/value pairs, one row per key.
type SettingStore struct {
	db  *database.DB
	log *logger.Logger
}

// Set upserts a setting.
func (s *SettingStore) Set(ctx context.Context, key, value string) error {
	if !s.db.Available() {
		return ErrStorageUnavailable
	}
	setting := models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.GORM.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Get returns a setting's value, or the empty string when unset.
func (s *SettingStore) Get(ctx context.Context, key string) (string, error) {
	if !s.db.Available() {
		return "", nil
	}
	var setting models.Setting
	err := s.db.GORM.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		readFailed(s.log, "settings.get", err)
		return "", nil
	}
	return setting.Value, nil
}

// All returns every stored setting.
func (s *SettingStore) All(ctx context.Context) ([]models.Setting, error) {
	if !s.db.Available() {
		return nil, nil
	}
	var settings []models.Setting
	if err := s.db.GORM.WithContext(ctx).Find(&settings).Error; err != nil {
		readFailed(s.log, "settings.all", err)
		return nil, nil
	}
	return settings, nil
}
