package services

import "time"

// EventType identifies a room transition event broadcast to clients.
type EventType string

const (
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
	EventPlayerReady     EventType = "player_ready"
	EventSettingsUpdated EventType = "settings_updated"
	EventGameStarted     EventType = "game_started"
	EventRoundStarted    EventType = "round_started"
	EventWordAssigned    EventType = "word_assigned" // sent to the drawer only
	EventTimerTick       EventType = "timer_tick"
	EventRoundPaused     EventType = "round_paused"
	EventRoundResumed    EventType = "round_resumed"
	EventHintRevealed    EventType = "hint_revealed"
	EventChatMessage     EventType = "chat_message"
	EventGuessResult     EventType = "guess_result"
	EventRoundEnded      EventType = "round_ended"
	EventGameEnded       EventType = "game_ended"
	EventRoomCancelled   EventType = "room_cancelled"
	EventStateSync       EventType = "state_sync"
	EventError           EventType = "error"
)

// Message kinds for chat_message events. The engine only distinguishes a
// guess from everything else; the kind tells clients how to render it.
const (
	MessageKindChat    = "chat"
	MessageKindGuess   = "guess"
	MessageKindCorrect = "correct"
	MessageKindSystem  = "system"
)

type PlayerJoinedPayload struct {
	Player  Player   `json:"player"`
	Players []Player `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerID  string   `json:"player_id"`
	Reason    string   `json:"reason"` // "left" or "kicked"
	NewHostID string   `json:"new_host_id,omitempty"`
	Players   []Player `json:"players"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

type SettingsUpdatedPayload struct {
	Settings GameSettings `json:"settings"`
}

type GameStartedPayload struct {
	GameID   uint         `json:"game_id"`
	Settings GameSettings `json:"settings"`
}

type RoundStartedPayload struct {
	RoundNumber int    `json:"round_number"`
	DrawerID    string `json:"drawer_id"`
	DrawerName  string `json:"drawer_name"`
	Hint        string `json:"hint"`
	TimeLeft    int    `json:"time_left"`
	NewCycle    bool   `json:"new_cycle"` // rotation wrapped back to the first drawer
}

type WordAssignedPayload struct {
	RoundNumber int    `json:"round_number"`
	Word        string `json:"word"`
}

type TimerTickPayload struct {
	RoundNumber int `json:"round_number"`
	TimeLeft    int `json:"time_left"`
}

type HintRevealedPayload struct {
	Hint string `json:"hint"`
}

type ChatMessagePayload struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	Points     int       `json:"points,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type GuessResultPayload struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	Correct      bool   `json:"correct"`
	PointsEarned int    `json:"points_earned"`
	DrawerBonus  int    `json:"drawer_bonus,omitempty"`
}

type RoundEndedPayload struct {
	RoundNumber    int            `json:"round_number"`
	Reason         EndReason      `json:"reason"`
	Word           string         `json:"word"`
	CorrectGuesses []CorrectGuess `json:"correct_guesses"`
	Players        []Player       `json:"players"`
}

type GameEndedPayload struct {
	FinalScores []FinalScore `json:"final_scores"`
}

type RoomCancelledPayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
