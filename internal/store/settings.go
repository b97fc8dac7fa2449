package store

import (
	"errors"

	"billing-app/internal/domain/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingValue returns the stored value for key, or "" when unset.
func (s *Store) SettingValue(key string) (string, error) {
	var row settings.Setting
	err := s.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

func (s *Store) AllSettings() ([]settings.Setting, error) {
	var list []settings.Setting
	err := s.db.Order("key ASC").Find(&list).Error
	return list, err
}

func (s *Store) PutSetting(key, value string) error {
	row := settings.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
