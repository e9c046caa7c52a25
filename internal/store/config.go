package store

import (
	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"gorm.io/gorm/clause"
)

// GetConfig reads one key from the config table. Missing keys are not an
// error; ok is false.
func (s *Store) GetConfig(key string) (value string, ok bool, err error) {
	var entry models.ConfigEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// SetConfig upserts one key.
func (s *Store) SetConfig(key, value string) error {
	entry := models.ConfigEntry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

// DeleteConfig removes one key if present.
func (s *Store) DeleteConfig(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.ConfigEntry{}).Error
}
