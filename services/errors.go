package services

import "errors"

// Engine errors. All of these are recoverable: the transport layer maps them
// to a user-facing message and never retries on its own.
var (
	ErrInvalidState     = errors.New("operation not valid in current room state")
	ErrForbidden        = errors.New("caller lacks the required role")
	ErrNotFound         = errors.New("player or room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrDuplicatePlayer  = errors.New("player already in room")
	ErrNotEnoughPlayers = errors.New("not enough ready players to start")
)

// ErrorCode maps an engine error to a stable code for clients.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, ErrDuplicatePlayer):
		return "DUPLICATE_PLAYER"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "NOT_ENOUGH_PLAYERS"
	default:
		return "INTERNAL"
	}
}
