package models

import "time"

// SearchEngine names are unique per user, not globally.
type SearchEngine struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_search_engine_user_name,priority:2"`
	DisplayName string `gorm:"size:255"`
	URLTemplate string `gorm:"size:512;not null"`
	Icon        string `gorm:"size:100"`
	Color       string `gorm:"size:20"`
	IsActive    bool   `gorm:"not null"`
	IsDefault   bool   `gorm:"not null;default:false"`
	SortOrder   int    `gorm:"not null;default:0"`
	UserID      uint   `gorm:"not null;index;uniqueIndex:idx_search_engine_user_name,priority:1"`
	CreatedAt   time.Time
}
