package routes

import (
	"log"
	"net/http"
	"strings"

	"drawsurus/handlers"
	"drawsurus/middleware"
	"drawsurus/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	hub *services.Hub,
	manager *services.RoomManager,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.POST("/rooms", roomHandler.CreateRoom)
		}

		// Public room routes; the engine enforces roles by player id
		rooms := api.Group("/rooms")
		{
			rooms.POST("/:code/join", roomHandler.JoinRoom)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.POST("/:code/start", roomHandler.StartGame)
			rooms.POST("/:code/ready", roomHandler.SetReady)
			rooms.PUT("/:code/settings", roomHandler.UpdateSettings)
			rooms.POST("/:code/leave", roomHandler.LeaveRoom)
			rooms.POST("/:code/kick", roomHandler.KickPlayer)
		}
	}

	// WebSocket endpoint for real-time room communication
	router.GET("/ws/:roomCode/:playerID", func(c *gin.Context) {
		roomCode := strings.ToLower(c.Param("roomCode"))
		playerID := c.Param("playerID")

		session, err := manager.GetRoom(roomCode)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		playerName := ""
		for _, p := range session.Snapshot().Players {
			if p.ID == playerID {
				playerName = p.Name
				break
			}
		}
		if playerName == "" {
			log.Printf("WebSocket rejected: player %s not in room %s", playerID, roomCode)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not found in room"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for room %s, player %s: %v", roomCode, playerID, err)
			return
		}

		log.Printf("WebSocket connected for room %s, player %s (%s)", roomCode, playerID, playerName)
		hub.RegisterClient(conn, roomCode, playerID, playerName)
		session.SyncClient(playerID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": manager.RoomCount()})
	})
}
