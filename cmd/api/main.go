package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/handlers"
	"alfredoptarigan/hirematch/internal/middleware"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
	"alfredoptarigan/hirematch/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	usageRepo := repositories.NewUsageRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	cvRepo := repositories.NewCVRepository(db)
	shortlistRepo := repositories.NewShortlistRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize Gemini AI
	provider, err := services.NewGeminiProvider(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Qdrant mirror is optional. Without it matching still works off the
	// embeddings stored in Postgres.
	var matchIndex services.MatchIndex
	if cfg.Qdrant.URL != "" {
		index, err := services.NewQdrantMatchIndex(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Qdrant unavailable, continuing without match index: %v\n", err)
		} else if err := index.InitCollection(); err != nil {
			log.Printf("⚠️  Qdrant collection init failed, continuing without match index: %v\n", err)
		} else {
			matchIndex = index
			log.Println("✅ Qdrant match index initialized successfully")
		}
	}

	// Initialize domain services
	analyzer := services.NewMatchAnalyzer(provider)
	extractor := services.NewTextExtractor()
	shortlistService := services.NewShortlistService(
		jobRepo,
		cvRepo,
		shortlistRepo,
		provider,
		analyzer,
		extractor,
		matchIndex,
	)
	authService := services.NewAuthService(userRepo, clientRepo, tokenRepo, cfg.Auth)
	analyticsService := services.NewAnalyticsService(
		userRepo,
		clientRepo,
		tokenRepo,
		jobRepo,
		cvRepo,
		shortlistRepo,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize middleware and handlers
	auth := middleware.NewAuth(authService, userRepo, usageRepo)

	authHandler := handlers.NewAuthHandler(authService, cfg.Auth)
	clientHandler := handlers.NewClientHandler(authService, clientRepo, cfg.Auth)
	cvHandler := handlers.NewCVHandler(cvRepo, shortlistService, storageService, cfg.Storage.MaxFileSize)
	jobHandler := handlers.NewJobHandler(jobRepo, shortlistService)
	shortlistHandler := handlers.NewShortlistHandler(shortlistRepo, shortlistService, cfg.Auth)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireMatch API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth endpoints
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.HandleRegister)
	authGroup.Post("/login", authHandler.HandleLogin)
	authGroup.Post("/refresh", authHandler.HandleRefresh)
	authGroup.Post("/token", authHandler.HandleClientToken)
	authGroup.Post("/revoke", authHandler.HandleRevoke)
	authGroup.Post("/logout", auth.RequireCaller(), authHandler.HandleLogout)
	authGroup.Get("/me", auth.RequireCaller(), authHandler.HandleMe)

	// Protected resource endpoints
	protected := api.Group("", auth.RequireCaller(), auth.TrackUsage())

	protected.Post("/cvs/upload", auth.RequireScope(models.ScopeWrite), cvHandler.HandleUpload)
	protected.Get("/cvs", auth.RequireScope(models.ScopeRead), cvHandler.HandleList)
	protected.Get("/cvs/:id", auth.RequireScope(models.ScopeRead), cvHandler.HandleGet)
	protected.Delete("/cvs/:id", auth.RequireScope(models.ScopeWrite), cvHandler.HandleDelete)

	protected.Post("/jobs", auth.RequireScope(models.ScopeWrite), jobHandler.HandleCreate)
	protected.Get("/jobs", auth.RequireScope(models.ScopeRead), jobHandler.HandleList)
	protected.Get("/jobs/:id", auth.RequireScope(models.ScopeRead), jobHandler.HandleGet)
	protected.Put("/jobs/:id", auth.RequireScope(models.ScopeWrite), jobHandler.HandleUpdate)
	protected.Delete("/jobs/:id", auth.RequireScope(models.ScopeWrite), jobHandler.HandleDelete)

	protected.Post("/shortlists", auth.RequireScope(models.ScopeWrite), shortlistHandler.HandleRun)
	protected.Get("/shortlists", auth.RequireScope(models.ScopeRead), shortlistHandler.HandleList)
	protected.Get("/shortlists/:id", auth.RequireScope(models.ScopeRead), shortlistHandler.HandleGet)
	protected.Get("/shortlists/:id/report", auth.RequireScope(models.ScopeRead), shortlistHandler.HandleReport)
	protected.Delete("/shortlists/:id", auth.RequireScope(models.ScopeWrite), shortlistHandler.HandleDelete)

	// Admin endpoints
	admin := api.Group("", auth.RequireCaller(), auth.RequireAdmin())

	admin.Post("/clients", clientHandler.HandleCreate)
	admin.Get("/clients", clientHandler.HandleList)
	admin.Get("/clients/:client_id", clientHandler.HandleGet)
	admin.Patch("/clients/:client_id", clientHandler.HandleUpdate)
	admin.Delete("/clients/:client_id", clientHandler.HandleDeactivate)

	admin.Get("/analytics/overview", analyticsHandler.HandleOverview)
	admin.Get("/analytics/clients", analyticsHandler.HandleClients)
	admin.Get("/analytics/clients/:client_id", analyticsHandler.HandleClient)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HireMatch API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"POST /api/v1/auth/token",
				"POST /api/v1/cvs/upload",
				"POST /api/v1/jobs",
				"POST /api/v1/shortlists",
				"GET /api/v1/shortlists/:id/report",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnsupportedFormat),
		errors.Is(err, models.ErrNoTextContent), errors.Is(err, models.ErrNoCandidates):
		code = fiber.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		code = fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, models.ErrRateLimited):
		code = fiber.StatusTooManyRequests
	case errors.Is(err, models.ErrProvider):
		code = fiber.StatusBadGateway
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
