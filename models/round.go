package models

import (
	"time"

	"gorm.io/gorm"
)

type Round struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	GameID      uint           `json:"game_id" gorm:"not null;index"`
	RoundNumber int            `json:"round_number" gorm:"not null"`
	Word        string         `json:"word" gorm:"not null"`
	DrawerID    string         `json:"drawer_id" gorm:"not null"`
	DrawerName  string         `json:"drawer_name"`
	EndReason   string         `json:"end_reason"` // guessed, timed_out, skipped, drawer_complete, drawer_left
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     *time.Time     `json:"ended_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Game    Game           `json:"game,omitempty"`
	Guesses []CorrectGuess `json:"guesses,omitempty" gorm:"foreignKey:RoundID"`
}
