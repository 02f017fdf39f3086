package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lucky-seven-backend/internal/config"
	"lucky-seven-backend/internal/handlers"
	"lucky-seven-backend/internal/middleware"
	"lucky-seven-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	userStore, err := services.NewUserStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	defer userStore.Close()

	sessionStore, err := services.NewRedisSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer sessionStore.Close()

	jwtService := services.NewJWTService(cfg)
	authService := services.NewAuthService(userStore, jwtService)
	gameEngine := services.NewGameEngine(sessionStore)

	wsHandler := handlers.NewWebSocketHandler()
	gameEngine.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(authService, jwtService)
	gameHandler := handlers.NewGameHandler(gameEngine)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", middleware.BlockIfAuthenticated(), authHandler.Signup)
		auth.POST("/login", middleware.BlockIfAuthenticated(), authHandler.Login)
		auth.POST("/logout", middleware.RequireRefreshToken(authService), authHandler.Logout)
		auth.GET("/accessToken", middleware.RequireRefreshToken(authService), authHandler.AccessToken)
	}

	game := router.Group("/api/game")
	game.Use(middleware.RequireAccessToken(jwtService))
	{
		game.POST("/start", gameHandler.Start)
		game.GET("/session/:sessionId", gameHandler.GetSession)
		game.DELETE("/session/:sessionId", gameHandler.ClearSession)
		game.GET("/session", gameHandler.ListSessions)
		game.DELETE("/session", gameHandler.ClearAllSessions)
		game.POST("/roll_die/:sessionId", gameHandler.Roll)

		game.GET("/ws", wsHandler.HandleWebSocket)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
