package handlers

import (
	"errors"
	"net/http"

	"drawsurus/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	manager *services.RoomManager
}

func NewRoomHandler(manager *services.RoomManager) *RoomHandler {
	return &RoomHandler{manager: manager}
}

type CreateRoomRequest struct {
	HostName string                 `json:"host_name" binding:"required"`
	Avatar   string                 `json:"avatar"`
	Settings *services.GameSettings `json:"settings"`
}

type JoinRoomRequest struct {
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

type PlayerActionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

type ReadyRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Ready    *bool  `json:"ready" binding:"required"`
}

type UpdateSettingsRequest struct {
	PlayerID string                `json:"player_id" binding:"required"`
	Settings services.GameSettings `json:"settings" binding:"required"`
}

type KickRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	TargetID string `json:"target_id" binding:"required"`
}

// CreateRoom allocates a room and seats the caller as its host.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := services.DefaultGameSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}

	session, err := h.manager.CreateRoom(settings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	host, err := session.Join(uuid.NewString(), req.HostName, req.Avatar)
	if err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"room_code": session.RoomCode(),
		"room_id":   session.RoomID(),
		"player":    host,
	})
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	player, err := session.Join(uuid.NewString(), req.Name, req.Avatar)
	if err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_code": session.RoomCode(),
		"player":    player,
	})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *RoomHandler) StartGame(c *gin.Context) {
	var req PlayerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if err := session.Start(req.PlayerID); err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game started"})
}

func (h *RoomHandler) SetReady(c *gin.Context) {
	var req ReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if err := session.SetReady(req.PlayerID, *req.Ready); err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ready state updated"})
}

func (h *RoomHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if err := session.UpdateSettings(req.PlayerID, req.Settings); err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}

func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	var req PlayerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if err := session.Leave(req.PlayerID); err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left room"})
}

func (h *RoomHandler) KickPlayer(c *gin.Context) {
	var req KickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.GetRoom(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if err := session.Kick(req.PlayerID, req.TargetID); err != nil {
		c.JSON(engineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}

// engineStatus maps engine errors to HTTP status codes.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrRoomFull), errors.Is(err, services.ErrDuplicatePlayer):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
