package models

import "time"

// SearchHistory is append-only. SearchEngine is the engine short name, not a
// foreign key.
type SearchHistory struct {
	ID           uint      `gorm:"primaryKey"`
	Query        string    `gorm:"size:255;index;not null"`
	SearchEngine string    `gorm:"size:100"`
	UserID       uint      `gorm:"not null;index:idx_search_history_user_created,priority:1"`
	CreatedAt    time.Time `gorm:"index:idx_search_history_user_created,priority:2"`
}

func (SearchHistory) TableName() string { return "search_history" }
