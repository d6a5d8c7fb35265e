package kv

import (
	"context"
	"errors"

	"credit-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps values in the session_entries table
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a SQL-backed store. The table must be migrated with
// models.AutoMigrate first.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.SessionEntry
	err := s.db.WithContext(ctx).Where("session_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set upserts the entry
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := models.SessionEntry{Key: key, Value: string(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.SessionEntry{}, "session_key = ?", key).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
