package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID int64   `json:"telegram_id" gorm:"uniqueIndex;not null"`
	Name       string  `json:"name" gorm:"not null"`
	Email      *string `json:"email,omitempty" gorm:"uniqueIndex"`
}
