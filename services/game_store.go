package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"drawsurus/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// snapshotTTL bounds how long an abandoned room's live state lingers.
const snapshotTTL = 2 * time.Hour

// GameStore persists game records in Postgres and the live room snapshot in
// Redis. It implements GameRecorder.
type GameStore struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewGameStore(db *gorm.DB, redisClient *redis.Client) *GameStore {
	return &GameStore{
		db:    db,
		redis: redisClient,
	}
}

func (s *GameStore) RecordGameStarted(roomID, roomCode string, settings GameSettings) (uint, error) {
	game := models.Game{
		RoomID:    roomID,
		RoomCode:  roomCode,
		Status:    string(StatusPlaying),
		Rounds:    settings.RoundsPerGame,
		RoundTime: settings.RoundTime,
		StartedAt: time.Now(),
	}

	if err := s.db.Create(&game).Error; err != nil {
		return 0, fmt.Errorf("failed to create game record: %w", err)
	}

	return game.ID, nil
}

func (s *GameStore) RecordRoundEnded(gameID uint, archive RoundArchive) error {
	now := time.Now()
	round := models.Round{
		GameID:      gameID,
		RoundNumber: archive.Number,
		Word:        archive.Word,
		DrawerID:    archive.DrawerID,
		DrawerName:  archive.DrawerName,
		EndReason:   string(archive.Reason),
		StartedAt:   archive.StartedAt,
		EndedAt:     &now,
	}
	for _, guess := range archive.CorrectGuesses {
		round.Guesses = append(round.Guesses, models.CorrectGuess{
			PlayerID:   guess.PlayerID,
			PlayerName: guess.PlayerName,
			TimeTaken:  guess.TimeTaken,
			Points:     guess.Points,
		})
	}

	if err := s.db.Create(&round).Error; err != nil {
		return fmt.Errorf("failed to create round record: %w", err)
	}

	return nil
}

func (s *GameStore) RecordGameEnded(gameID uint, status RoomStatus, finals []FinalScore) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":   string(status),
		"ended_at": &now,
	}
	if err := s.db.Model(&models.Game{}).Where("id = ?", gameID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update game record: %w", err)
	}

	for _, final := range finals {
		record := models.FinalScore{
			GameID:         gameID,
			PlayerID:       final.PlayerID,
			PlayerName:     final.PlayerName,
			TotalScore:     final.TotalScore,
			CorrectGuesses: final.CorrectGuesses,
			Rank:           final.Rank,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create final score record: %w", err)
		}
	}

	return nil
}

func (s *GameStore) SaveSnapshot(snapshot *RoomSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal room snapshot: %w", err)
	}

	if err := s.redis.Set(context.Background(), snapshotKey(snapshot.RoomCode), data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot in Redis: %w", err)
	}

	return nil
}

// GetSnapshot restores the public room state, e.g. for HTTP reads.
func (s *GameStore) GetSnapshot(roomCode string) (*RoomSnapshot, error) {
	data, err := s.redis.Get(context.Background(), snapshotKey(roomCode)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot from Redis: %w", err)
	}

	var snapshot RoomSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room snapshot: %w", err)
	}

	return &snapshot, nil
}

func (s *GameStore) DeleteSnapshot(roomCode string) error {
	return s.redis.Del(context.Background(), snapshotKey(roomCode)).Err()
}

func snapshotKey(roomCode string) string {
	return "room:" + roomCode
}
