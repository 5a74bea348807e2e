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
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/talentmatch/backend/auth"
	"github.com/talentmatch/backend/config"
	"github.com/talentmatch/backend/consolidate"
	_ "github.com/talentmatch/backend/docs"
	"github.com/talentmatch/backend/handlers"
	"github.com/talentmatch/backend/matching"
	"github.com/talentmatch/backend/mcp"
	"github.com/talentmatch/backend/reconcile"
	"github.com/talentmatch/backend/semantic"
	"github.com/talentmatch/backend/storage"
	"github.com/talentmatch/backend/tools"
)

// @title TalentMatch API
// @version 1.0
// @description Recruiting backend with spreadsheet reconciliation, profile consolidation and AI-assisted candidate ranking.

// @contact.name API Support
// @contact.email support@talentmatch.io

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	log.Println("Initializing Firestore client...")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize Cloud Storage client for spreadsheet archival when a
	// bucket is configured
	var archiveClient *storage.CloudStorageClient
	if cfg.ImportBucketName != "" {
		log.Println("Initializing Cloud Storage client...")
		archiveClient, err = storage.NewCloudStorageClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
		}
		defer archiveClient.Close()
		log.Println("Cloud Storage client initialized successfully")
	} else {
		log.Println("IMPORT_BUCKET_NAME not set, spreadsheet archival disabled")
	}

	// Initialize the semantic service
	log.Println("Initializing semantic service...")
	semanticClient, err := semantic.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize semantic service: %v", err)
	}
	defer semanticClient.Close()
	log.Println("Semantic service initialized successfully")

	// Initialize auth service
	jwtService := auth.NewJWTService(cfg)

	// Wire the domain services
	pipeline := reconcile.NewPipeline(firestoreClient)
	resolver := consolidate.NewResolver(firestoreClient)
	engine := matching.NewEngine(semanticClient, time.Duration(cfg.SemanticTimeoutSecs)*time.Second)
	ranker := matching.NewRanker(firestoreClient, resolver, engine, cfg.MaxCandidatePool, cfg.ScoreWorkers)

	// Create handlers
	candidateHandler := handlers.NewCandidateHandler(firestoreClient, resolver, semanticClient)
	jobHandler := handlers.NewJobHandler(firestoreClient, semanticClient)
	importHandler := handlers.NewImportHandler(pipeline, archiveClient)
	matchHandler := handlers.NewMatchHandler(ranker, firestoreClient, cfg)

	// Create MCP server with tool registry
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(tools.NewScoreMatchTool(ranker))
	toolRegistry.Register(tools.NewExtractSkillsTool(semanticClient))
	toolRegistry.Register(tools.NewExtractRequirementsTool(semanticClient))
	toolRegistry.Register(tools.NewValidateHeadersTool())

	mcpServer := mcp.NewServer(toolRegistry)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the recruiter frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Candidate endpoints
		candidates := api.Group("/candidates")
		{
			candidates.GET("", candidateHandler.ListCandidates)
			candidates.GET("/:id", candidateHandler.GetCandidate)
			candidates.POST("", auth.AuthMiddleware(jwtService), candidateHandler.CreateCandidate)
			candidates.PUT("/:id", auth.AuthMiddleware(jwtService), candidateHandler.UpdateCandidate)
			candidates.DELETE("/:id", auth.AuthMiddleware(jwtService), candidateHandler.DeactivateCandidate)
		}

		// Job and ranking endpoints
		jobs := api.Group("/jobs")
		{
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.GET("/:id/matches", matchHandler.RankJob)
			jobs.GET("/:id/matches/:profileId", matchHandler.ScoreCandidate)
			jobs.POST("", auth.AuthMiddleware(jwtService), jobHandler.CreateJob)
			jobs.PUT("/:id", auth.AuthMiddleware(jwtService), jobHandler.UpdateJob)
		}

		// Spreadsheet import endpoints
		imports := api.Group("/imports")
		{
			imports.POST("", auth.AuthMiddleware(jwtService), importHandler.UploadSpreadsheet)
			imports.POST("/validate", importHandler.ValidateStructure)
		}

		// Match review endpoints (reviewer identity comes from the token)
		api.PUT("/matches/:id/status", auth.AuthMiddleware(jwtService), matchHandler.UpdateMatchStatus)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
