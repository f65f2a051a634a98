package services

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addClient(h *Hub, c *Client) {
	h.mutex.Lock()
	h.clients[c] = true
	h.mutex.Unlock()
}

// stalledClient has a full send buffer, so any delivery attempt hits the
// eviction path.
func stalledClient(h *Hub, id, roomCode, playerID string) *Client {
	c := &Client{
		hub:      h,
		id:       id,
		send:     make(chan []byte, 1),
		roomCode: roomCode,
		playerID: playerID,
	}
	c.send <- []byte("backlog")
	return c
}

func TestHub_ConcurrentBroadcastsEvictStalledClients(t *testing.T) {
	hub := NewHub(nil)

	for _, room := range []string{"aaaaaa", "bbbbbb"} {
		addClient(hub, stalledClient(hub, room+"-1", room, "p1"))
		addClient(hub, stalledClient(hub, room+"-2", room, "p2"))
	}
	healthy := &Client{
		hub:      hub,
		id:       "healthy",
		send:     make(chan []byte, 256),
		roomCode: "aaaaaa",
		playerID: "p3",
	}
	addClient(hub, healthy)

	// rooms broadcast independently and in parallel
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		room := "aaaaaa"
		if i%2 == 1 {
			room = "bbbbbb"
		}
		wg.Add(1)
		go func(room string) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				hub.BroadcastToRoom(room, EventTimerTick, TimerTickPayload{RoundNumber: 1, TimeLeft: j})
			}
		}(room)
	}
	wg.Wait()

	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	require.Len(t, hub.clients, 1, "stalled clients must be evicted exactly once")
	assert.True(t, hub.clients[healthy])
	assert.NotEmpty(t, healthy.send)
}

func TestHub_ConcurrentSendToPlayerEvictsStalledClient(t *testing.T) {
	hub := NewHub(nil)
	addClient(hub, stalledClient(hub, "c1", "aaaaaa", "p1"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.SendToPlayer("aaaaaa", "p1", EventWordAssigned, WordAssignedPayload{RoundNumber: 1, Word: "ELEPHANT"})
		}()
	}
	wg.Wait()

	assert.False(t, hub.IsPlayerConnected("aaaaaa", "p1"))
}

func TestHub_PingToEvictedClientIsDropped(t *testing.T) {
	hub := NewHub(nil)
	evicted := &Client{
		hub:      hub,
		id:       "gone",
		send:     make(chan []byte),
		roomCode: "aaaaaa",
		playerID: "p1",
	}
	close(evicted.send) // evicted: channel closed, not in the client map

	assert.NotPanics(t, func() {
		evicted.handleMessage(Envelope{Type: "ping"})
		evicted.sendError(ErrNotFound)
	})
}

func TestHub_PingRepliesPong(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{
		hub:      hub,
		id:       "c1",
		send:     make(chan []byte, 1),
		roomCode: "aaaaaa",
		playerID: "p1",
	}
	addClient(hub, client)

	client.handleMessage(Envelope{Type: "ping"})

	var envelope Envelope
	require.NoError(t, json.Unmarshal(<-client.send, &envelope))
	assert.Equal(t, "pong", envelope.Type)
}
