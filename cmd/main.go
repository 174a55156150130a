package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"market-ingest/internal/config"
	"market-ingest/internal/database"
	"market-ingest/internal/handlers"
	"market-ingest/internal/ident"
	"market-ingest/internal/jobs"
	"market-ingest/internal/repository"
	"market-ingest/internal/services"
	"market-ingest/internal/sources"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the ingestion pipeline
	repo := repository.NewRepository(database.GetDB())
	minter := ident.NewCryptoMinter()

	srcs := sources.Curated()
	srcs = append(srcs,
		sources.NewGDELTSource(cfg.Ingest.FetchTimeout),
		sources.NewRSSSource(cfg.Ingest.FetchTimeout),
	)

	ingestService := services.NewIngestService(repo, minter, srcs)

	// Run the pipeline once at startup
	ingestService.Run(context.Background())

	// Start the periodic ingestion job when an interval is configured
	if cfg.Ingest.Interval > 0 {
		ingestJob := jobs.NewIngestJob(ingestService)
		ingestJob.Start(cfg.Ingest.Interval)
		log.Printf("Ingestion job started (every %s)", cfg.Ingest.Interval)
	}

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(database.GetDB(), ingestService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000", // Local development
		"http://localhost:3001",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:3001",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Read API over the seeded event graph
	api := router.Group("/api")
	{
		api.GET("/tags", eventHandler.GetTags)
		api.GET("/events", eventHandler.GetEvents)
		api.GET("/events/:slug", eventHandler.GetEventBySlug)
		api.POST("/ingest/run", eventHandler.TriggerIngest)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
