package models

import "time"

type QuickLink struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;index;not null"`
	URL       string `gorm:"size:512;not null"`
	Icon      string `gorm:"size:100"`
	Color     string `gorm:"size:20"`
	Category  string `gorm:"size:100;index"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
}
