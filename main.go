package main

import (
	"log"

	"drawsurus/config"
	"drawsurus/handlers"
	"drawsurus/middleware"
	"drawsurus/models"
	"drawsurus/routes"
	"drawsurus/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Word{},
		&models.Game{},
		&models.Round{},
		&models.CorrectGuess{},
		&models.FinalScore{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	gameStore := services.NewGameStore(db, redisClient)
	wordBank := services.NewDBWordBank(db)
	manager := services.NewRoomManager(wordBank, gameStore)

	// Initialize WebSocket hub
	hub := services.NewHub(manager)
	manager.AttachBroadcaster(hub)
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(manager)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, roomHandler, hub, manager, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
