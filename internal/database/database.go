// Package database provides the embedded sqlite connection management.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
)

// DB wraps a GORM handle over an embedded sqlite database.
//
// Open failure does not abort the process: the handle degrades to
// unavailable and the store layer treats every call as best-effort.
type DB struct {
	GORM      *gorm.DB
	available bool
}

// InMemory is the DSN for a non-durable database, used in tests and as the
// fallback when no path is configured.
const InMemory = ":memory:"

// Open opens (creating if needed) the database at path and migrates the
// schema. On engine failure it returns a degraded handle and a nil error;
// the condition is logged once here.
func Open(path string, log *logger.Logger) (*DB, error) {
	if path == "" {
		path = InMemory
	}
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("storage unavailable, running without persistence")
			return &DB{}, nil
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("storage unavailable, running without persistence")
		return &DB{}, nil
	}

	if err := migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &DB{GORM: gormDB, available: true}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Job{},
		&models.Candidate{},
		&models.StageEvent{},
		&models.Assessment{},
		&models.AssessmentSection{},
		&models.Question{},
		&models.Response{},
		&models.Note{},
		&models.Setting{},
	)
}

// Available reports whether the engine opened successfully.
func (db *DB) Available() bool {
	return db != nil && db.available
}

// Close closes the underlying sql.DB.
func (db *DB) Close() error {
	if !db.Available() {
		return nil
	}
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database is reachable.
func (db *DB) Ping() error {
	if !db.Available() {
		return fmt.Errorf("storage unavailable")
	}
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
