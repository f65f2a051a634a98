package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *RoomManager {
	manager := NewRoomManager(fixedWordBank{word: "ELEPHANT"}, &fakeRecorder{})
	manager.AttachBroadcaster(&fakeBroadcaster{})
	return manager
}

func TestRoomManager_CreateRoomAssignsUniqueCodes(t *testing.T) {
	manager := newTestManager()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := manager.CreateRoom(DefaultGameSettings())
		require.NoError(t, err)
		code := session.RoomCode()
		assert.Len(t, code, 6)
		assert.False(t, seen[code], "code %s reused", code)
		seen[code] = true
	}
	assert.Equal(t, 50, manager.RoomCount())
}

func TestRoomManager_CreateRoomRejectsInvalidSettings(t *testing.T) {
	manager := newTestManager()

	settings := DefaultGameSettings()
	settings.MaxPlayers = 1

	_, err := manager.CreateRoom(settings)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, manager.RoomCount())
}

func TestRoomManager_GetRoomIsCaseInsensitive(t *testing.T) {
	manager := newTestManager()

	session, err := manager.CreateRoom(DefaultGameSettings())
	require.NoError(t, err)

	found, err := manager.GetRoom(session.RoomCode())
	require.NoError(t, err)
	assert.Same(t, session, found)

	found, err = manager.GetRoom(strings.ToUpper(session.RoomCode()))
	require.NoError(t, err)
	assert.Same(t, session, found)

	_, err = manager.GetRoom("nosuch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomManager_RoomRemovedWhenEmptied(t *testing.T) {
	manager := newTestManager()

	session, err := manager.CreateRoom(DefaultGameSettings())
	require.NoError(t, err)

	_, err = session.Join("a", "Alice", "")
	require.NoError(t, err)
	require.NoError(t, session.Leave("a"))

	assert.Zero(t, manager.RoomCount())
	_, err = manager.GetRoom(session.RoomCode())
	assert.ErrorIs(t, err, ErrNotFound)
}
