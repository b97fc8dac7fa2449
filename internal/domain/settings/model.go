package settings

import "time"

// Setting is a flat key/value row for operator-tunable values that do not
// warrant their own table (support email, grace period days, banner text).
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"not null;uniqueIndex:idx_settings_key"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
