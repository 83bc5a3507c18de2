package main

import (
	"fmt"
	"log"
	"os"

	"impact-game/internal/api/handlers"
	"impact-game/internal/api/middleware"
	"impact-game/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Run persistence is optional: DB_PATH=off disables it.
	var runStore *store.RunStore
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "impact-game.db"
	}
	if dbPath != "off" {
		var err error
		runStore, err = store.NewRunStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open run store at %s: %v", dbPath, err)
		}
		defer runStore.Close()
		log.Printf("Persisting runs to %s", dbPath)
	} else {
		log.Printf("Run persistence disabled")
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RateLimit(20, 40))

	bestResponseHandler := handlers.NewBestResponseHandler()
	dynamicsHandler := handlers.NewDynamicsHandler(runStore)
	metricsHandler := handlers.NewMetricsHandler()
	strategyHandler := handlers.NewStrategyHandler()
	gameHandler := handlers.NewGameHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/bestresponse", bestResponseHandler.Solve)
		api.POST("/cost", bestResponseHandler.Cost)

		api.POST("/dynamics", dynamicsHandler.Run)
		api.GET("/runs", dynamicsHandler.ListRuns)
		api.GET("/runs/:id/ledger", dynamicsHandler.GetLedger)

		api.POST("/metrics", metricsHandler.Compute)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/games", gameHandler.ListGames)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
