package services

import (
	"strings"
	"time"
)

// RoundPhase is the per-round state machine: active and paused alternate
// until the round ends; ended is terminal.
type RoundPhase int

const (
	RoundActive RoundPhase = iota
	RoundPaused
	RoundEnded
)

// EndReason records why a round reached its terminal state.
type EndReason string

const (
	EndGuessed        EndReason = "guessed"
	EndTimedOut       EndReason = "timed_out"
	EndSkipped        EndReason = "skipped"
	EndDrawerComplete EndReason = "drawer_complete"
	EndDrawerLeft     EndReason = "drawer_left"
	EndAborted        EndReason = "aborted"
)

// CorrectGuess is one scored guess within a round.
type CorrectGuess struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TimeTaken  int    `json:"time_taken"` // seconds into the round
	Points     int    `json:"points"`
}

// RoundOutcome is reported to the room session when a round ends.
type RoundOutcome struct {
	Reason         EndReason
	Word           string
	CorrectGuesses []CorrectGuess
}

// GuessVerdict is the engine's answer to a single guess submission.
type GuessVerdict struct {
	Correct bool
	Points  int
}

// Round owns one round's lifecycle: the secret word, the drawer, the
// countdown and guess validation. All methods must be called with the room
// session's lock held; the round does no locking of its own.
type Round struct {
	Number    int
	Word      string
	Hint      string
	DrawerID  string
	RoundTime int
	TimeLeft  int
	StartedAt time.Time
	HintShown bool

	phase          RoundPhase
	correctGuesses []CorrectGuess
}

func NewRound(number int, word, hint, drawerID string, roundTime int) *Round {
	return &Round{
		Number:    number,
		Word:      word,
		Hint:      hint,
		DrawerID:  drawerID,
		RoundTime: roundTime,
		TimeLeft:  roundTime,
		StartedAt: time.Now(),
		phase:     RoundActive,
	}
}

func (r *Round) Phase() RoundPhase { return r.phase }

func (r *Round) IsEnded() bool { return r.phase == RoundEnded }

func (r *Round) CorrectGuesses() []CorrectGuess { return r.correctGuesses }

// Tick applies one second of countdown. It returns a non-nil outcome when
// the clock reaches zero. Ticks are ignored while paused or ended.
func (r *Round) Tick() *RoundOutcome {
	if r.phase != RoundActive {
		return nil
	}
	r.TimeLeft--
	if r.TimeLeft <= 0 {
		r.TimeLeft = 0
		return r.end(EndTimedOut)
	}
	return nil
}

// Pause halts the countdown. Host-only. Pausing an already paused round is a
// no-op, not a toggle.
func (r *Round) Pause(isHost bool) error {
	if !isHost {
		return ErrForbidden
	}
	if r.phase == RoundEnded {
		return ErrInvalidState
	}
	r.phase = RoundPaused
	return nil
}

// Resume restarts the countdown. Host-only and idempotent like Pause.
func (r *Round) Resume(isHost bool) error {
	if !isHost {
		return ErrForbidden
	}
	if r.phase == RoundEnded {
		return ErrInvalidState
	}
	r.phase = RoundActive
	return nil
}

// Skip ends the round immediately without consuming any clock. Host-only.
func (r *Round) Skip(isHost bool) (*RoundOutcome, error) {
	if !isHost {
		return nil, ErrForbidden
	}
	if r.phase == RoundEnded {
		return nil, ErrInvalidState
	}
	return r.end(EndSkipped), nil
}

// MarkComplete lets the drawer declare the drawing finished, ending the
// round immediately.
func (r *Round) MarkComplete(playerID string) (*RoundOutcome, error) {
	if playerID != r.DrawerID {
		return nil, ErrForbidden
	}
	if r.phase == RoundEnded {
		return nil, ErrInvalidState
	}
	return r.end(EndDrawerComplete), nil
}

// RevealHint flips the hint-shown flag. The drawer already knows the word
// and may not trigger it. Revealing does not end the round or affect score.
func (r *Round) RevealHint(playerID string) error {
	if playerID == r.DrawerID {
		return ErrForbidden
	}
	if r.phase == RoundEnded {
		return ErrInvalidState
	}
	r.HintShown = true
	return nil
}

// SubmitGuess validates one guess. The drawer may not guess. A correct guess
// is scored against the remaining time and ends the round immediately: one
// winner per round. The verdict is nil when the guess was not accepted.
func (r *Round) SubmitGuess(playerID, playerName, text string) (*GuessVerdict, *RoundOutcome, error) {
	if playerID == r.DrawerID {
		return nil, nil, ErrForbidden
	}
	if r.phase == RoundEnded {
		return nil, nil, ErrInvalidState
	}

	if !strings.EqualFold(strings.TrimSpace(text), r.Word) {
		return &GuessVerdict{Correct: false}, nil, nil
	}

	points := GuesserPoints(r.TimeLeft)
	r.correctGuesses = append(r.correctGuesses, CorrectGuess{
		PlayerID:   playerID,
		PlayerName: playerName,
		TimeTaken:  r.RoundTime - r.TimeLeft,
		Points:     points,
	})

	return &GuessVerdict{Correct: true, Points: points}, r.end(EndGuessed), nil
}

// Abort ends the round from the outside, e.g. when the drawer leaves or the
// room is torn down.
func (r *Round) Abort(reason EndReason) *RoundOutcome {
	if r.phase == RoundEnded {
		return nil
	}
	return r.end(reason)
}

func (r *Round) end(reason EndReason) *RoundOutcome {
	r.phase = RoundEnded
	return &RoundOutcome{
		Reason:         reason,
		Word:           r.Word,
		CorrectGuesses: r.correctGuesses,
	}
}
