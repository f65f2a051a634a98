package services

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub owns all websocket clients and fans room events out to them. It is the
// transport collaborator of the engine: it maps inbound client actions to
// RoomSession operations and implements Broadcaster for the reverse path.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	manager    *RoomManager
}

type Client struct {
	hub        *Hub
	id         string
	socket     *websocket.Conn
	send       chan []byte
	roomCode   string
	playerID   string
	playerName string
}

// Envelope is the wire format in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outEnvelope struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

func NewHub(manager *RoomManager) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		manager:    manager,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %s registered for room %s (player %s: %s)", client.id, client.roomCode, client.playerID, client.playerName)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			log.Printf("Client %s unregistered from room %s (player %s)", client.id, client.roomCode, client.playerID)

			// A dropped connection is a leave, never an error path.
			if session, err := h.manager.GetRoom(client.roomCode); err == nil {
				if err := session.Leave(client.playerID); err != nil && err != ErrNotFound {
					log.Printf("Error removing player %s after disconnect: %v", client.playerID, err)
				}
			}
		}
	}
}

// BroadcastToRoom sends an event to every client in a room. Rooms broadcast
// concurrently, and a stalled client is evicted inline, so the write lock is
// required here even though most of the work is reads.
func (h *Hub) BroadcastToRoom(roomCode string, event EventType, payload interface{}) {
	data, err := json.Marshal(outEnvelope{Type: event, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) {
			select {
			case client.send <- data:
			default:
				log.Printf("Client %s send buffer full, dropping connection", client.id)
				close(client.send)
				delete(h.clients, client)
			}
		}
	}
}

// SendToPlayer sends an event to one player's connections only. Used for
// payloads that must not reach the rest of the room, like the secret word.
// Takes the write lock for the same reason as BroadcastToRoom.
func (h *Hub) SendToPlayer(roomCode, playerID string, event EventType, payload interface{}) {
	data, err := json.Marshal(outEnvelope{Type: event, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) && client.playerID == playerID {
			select {
			case client.send <- data:
			default:
				close(client.send)
				delete(h.clients, client)
			}
		}
	}
}

// trySend delivers data to one client unless it has already been evicted.
// Every path that closes the send channel holds the write lock, so checking
// membership under the read lock guarantees the channel is still open.
func (h *Hub) trySend(c *Client, data []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if !h.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// IsPlayerConnected reports whether a player has a live connection.
func (h *Hub) IsPlayerConnected(roomCode, playerID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if strings.EqualFold(client.roomCode, roomCode) && client.playerID == playerID {
			return true
		}
	}
	return false
}

func (h *Hub) RegisterClient(conn *websocket.Conn, roomCode, playerID, playerName string) *Client {
	client := &Client{
		hub:        h,
		id:         uuid.NewString(),
		socket:     conn,
		send:       make(chan []byte, 256),
		roomCode:   strings.ToLower(roomCode),
		playerID:   playerID,
		playerName: playerName,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var envelope Envelope
		if err := json.Unmarshal(message, &envelope); err != nil {
			log.Printf("Error unmarshaling message from client %s: %v", c.id, err)
			continue
		}

		c.handleMessage(envelope)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

type textPayload struct {
	Text string `json:"text"`
}

type readyPayload struct {
	Ready bool `json:"ready"`
}

// handleMessage maps a client action onto the room session's call surface.
// Engine errors go back to the sender only.
func (c *Client) handleMessage(envelope Envelope) {
	if envelope.Type == "ping" {
		data, _ := json.Marshal(outEnvelope{Type: "pong"})
		c.hub.trySend(c, data)
		return
	}

	session, err := c.hub.manager.GetRoom(c.roomCode)
	if err != nil {
		c.sendError(err)
		return
	}

	switch envelope.Type {
	case "guess":
		var p textPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return
		}
		err = session.SubmitGuess(c.playerID, p.Text)

	case "chat":
		var p textPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return
		}
		err = session.Chat(c.playerID, p.Text)

	case "ready":
		var p readyPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return
		}
		err = session.SetReady(c.playerID, p.Ready)

	case "pause":
		err = session.Pause(c.playerID)

	case "resume":
		err = session.Resume(c.playerID)

	case "skip":
		err = session.Skip(c.playerID)

	case "mark_complete":
		err = session.MarkComplete(c.playerID)

	case "reveal_hint":
		err = session.RevealHint(c.playerID)

	case "request_state":
		session.SyncClient(c.playerID)
		return

	default:
		log.Printf("Unknown message type %q from player %s in room %s", envelope.Type, c.playerID, c.roomCode)
		return
	}

	if err != nil {
		c.sendError(err)
	}
}

func (c *Client) sendError(err error) {
	data, marshalErr := json.Marshal(outEnvelope{
		Type:    EventError,
		Payload: ErrorPayload{Code: ErrorCode(err), Message: err.Error()},
	})
	if marshalErr != nil {
		return
	}
	c.hub.trySend(c, data)
}
