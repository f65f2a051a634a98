package models

import (
	"time"

	"gorm.io/gorm"
)

type Word struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Text       string         `json:"text" gorm:"not null;index"`
	Category   string         `json:"category" gorm:"not null;index"`
	Difficulty string         `json:"difficulty" gorm:"not null;default:'medium'"` // easy, medium, hard
	IsActive   bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
