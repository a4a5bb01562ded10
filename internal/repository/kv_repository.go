package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/request-board/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKVRepository is a GORM implementation of KVRepository
type GormKVRepository struct {
	db *gorm.DB
}

// NewKVRepository creates a new KVRepository backed by the kv_entries table
func NewKVRepository(db *gorm.DB) KVRepository {
	return &GormKVRepository{db: db}
}

// Get finds a blob by key
func (r *GormKVRepository) Get(key string) ([]byte, bool, error) {
	var entry models.KVEntry
	if err := r.db.Where("storage_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return []byte(entry.Value), true, nil
}

// Set upserts a blob
func (r *GormKVRepository) Set(key string, value []byte) error {
	entry := models.KVEntry{
		Key:   key,
		Value: string(value),
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes a blob
func (r *GormKVRepository) Delete(key string) error {
	if err := r.db.Where("storage_key = ?", key).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
