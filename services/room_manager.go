package services

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// RoomManager is the registry of live rooms. Each room is an independent
// unit of concurrency; the manager only guards the lookup map.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*RoomSession // key: room code (lowercase)

	wordBank    WordBank
	store       GameRecorder
	broadcaster Broadcaster
}

func NewRoomManager(wordBank WordBank, store GameRecorder) *RoomManager {
	return &RoomManager{
		rooms:    make(map[string]*RoomSession),
		wordBank: wordBank,
		store:    store,
	}
}

// AttachBroadcaster wires the hub in. Must be called before rooms are
// created; the hub needs the manager first, hence the two-step wiring.
func (m *RoomManager) AttachBroadcaster(b Broadcaster) {
	m.broadcaster = b
}

// CreateRoom allocates a new room with a unique shareable code.
func (m *RoomManager) CreateRoom(settings GameSettings) (*RoomSession, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.generateCode()
	for _, taken := m.rooms[code]; taken; _, taken = m.rooms[code] {
		code = m.generateCode()
	}

	session := NewRoomSession(uuid.NewString(), code, settings, m.wordBank, m.store, m.broadcaster)
	session.SetOnClose(m.removeRoom)
	m.rooms[code] = session

	log.Printf("Room %s created (%d active rooms)", code, len(m.rooms))
	return session, nil
}

// GetRoom looks a room up by its code, case-insensitively.
func (m *RoomManager) GetRoom(code string) (*RoomSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.rooms[strings.ToLower(code)]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// RoomCount reports the number of active rooms.
func (m *RoomManager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *RoomManager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[code]; ok {
		delete(m.rooms, code)
		log.Printf("Room %s removed (%d active rooms)", code, len(m.rooms))
	}
}

func (m *RoomManager) generateCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)[:6]
}
