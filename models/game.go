package models

import (
	"time"

	"gorm.io/gorm"
)

type Game struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	RoomID    string         `json:"room_id" gorm:"not null;index"`
	RoomCode  string         `json:"room_code" gorm:"not null;index"`
	Status    string         `json:"status" gorm:"not null;default:'playing'"` // playing, completed, cancelled
	Rounds    int            `json:"rounds" gorm:"not null"`
	RoundTime int            `json:"round_time" gorm:"not null"` // seconds
	StartedAt time.Time      `json:"started_at"`
	EndedAt   *time.Time     `json:"ended_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	RoundRecords []Round      `json:"round_records,omitempty" gorm:"foreignKey:GameID"`
	FinalScores  []FinalScore `json:"final_scores,omitempty" gorm:"foreignKey:GameID"`
}
