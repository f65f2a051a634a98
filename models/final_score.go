package models

import (
	"time"

	"gorm.io/gorm"
)

type FinalScore struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	GameID         uint           `json:"game_id" gorm:"not null;index"`
	PlayerID       string         `json:"player_id" gorm:"not null"`
	PlayerName     string         `json:"player_name"`
	TotalScore     int            `json:"total_score" gorm:"not null"`
	CorrectGuesses int            `json:"correct_guesses" gorm:"not null"`
	Rank           int            `json:"rank" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Game Game `json:"game,omitempty"`
}
