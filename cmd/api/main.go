package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-agent/pkg/validator"

	"github.com/johnquangdev/meeting-agent/internal/adapter/handler"
	"github.com/johnquangdev/meeting-agent/internal/adapter/repository"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/jira"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/slack"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
	httpmw "github.com/johnquangdev/meeting-agent/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/mail"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/storage"
	analysisuse "github.com/johnquangdev/meeting-agent/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-agent/internal/usecase/auth"
	"github.com/johnquangdev/meeting-agent/internal/usecase/integration"
	"github.com/johnquangdev/meeting-agent/internal/usecase/team"
	pkgai "github.com/johnquangdev/meeting-agent/pkg/ai"
	"github.com/johnquangdev/meeting-agent/pkg/config"
	"github.com/johnquangdev/meeting-agent/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if cfg.Server.Environment != "production" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Redis
	log.Println("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	credRepo := repository.NewCredentialRepository(db)
	trackedCardRepo := repository.NewTrackedCardRepository(db)
	runRepo := repository.NewAutomationRunRepository(db)

	// Initialize external clients
	trelloClient := trello.NewClient(&cfg.Trello)
	jiraCreator := jira.NewCreator()
	slackNotifier := slack.NewNotifier()
	mailSender := mail.NewSender(&cfg.SMTP)
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)

	// Transcript archive storage is optional
	var archiver analysisuse.TranscriptArchiver
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = minioClient
	}

	// Initialize JWT manager
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	authService := auth.NewService(userRepo, sessionRepo, jwtManager, logger)
	teamService := team.NewService(teamRepo, userRepo, logger)
	integrationService := integration.NewService(credRepo, trelloClient, redisClient, logger)
	analysisService := analysisuse.NewService(
		geminiClient,
		trelloClient,
		jiraCreator,
		slackNotifier,
		mailSender,
		archiver,
		teamRepo,
		credRepo,
		trackedCardRepo,
		runRepo,
		logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	teamHandler := handler.NewTeamHandler(teamService, logger)
	integrationHandler := handler.NewIntegrationHandler(integrationService, logger)
	analysisHandler := handler.NewAnalysisHandler(analysisService, logger)

	authMW := httpmw.Auth(authService, logger)

	router := handler.NewRouter(authHandler, teamHandler, integrationHandler, analysisHandler, authMW)
	router.Register(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		log.Printf("Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
