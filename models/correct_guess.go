package models

import (
	"time"

	"gorm.io/gorm"
)

type CorrectGuess struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	RoundID    uint           `json:"round_id" gorm:"not null;index"`
	PlayerID   string         `json:"player_id" gorm:"not null"`
	PlayerName string         `json:"player_name"`
	TimeTaken  int            `json:"time_taken" gorm:"not null"` // seconds into the round
	Points     int            `json:"points" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Round Round `json:"round,omitempty"`
}
