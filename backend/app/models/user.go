package models

import "time"

type User struct {
	ID            uint    `gorm:"primaryKey"`
	Username      string  `gorm:"uniqueIndex;size:191;not null"`
	Email         string  `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash  string  `gorm:"size:255;not null"`
	DisplayName   *string `gorm:"size:255"`
	Bio           *string `gorm:"size:500"`
	AvatarURL     *string `gorm:"size:512"`
	IsActive      bool    `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	QuickLinks    []QuickLink     `gorm:"constraint:OnDelete:CASCADE"`
	SearchEngines []SearchEngine  `gorm:"constraint:OnDelete:CASCADE"`
	SearchHistory []SearchHistory `gorm:"constraint:OnDelete:CASCADE"`
}
