package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/adapter/repository"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
	"github.com/johnquangdev/meeting-agent/internal/usecase/tracker"
	"github.com/johnquangdev/meeting-agent/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if cfg.Server.Environment != "production" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	userRepo := repository.NewUserRepository(db)
	trackedCardRepo := repository.NewTrackedCardRepository(db)
	trelloClient := trello.NewClient(&cfg.Trello)

	service := tracker.NewService(userRepo, trackedCardRepo, trelloClient, logger)
	worker := tracker.NewWorker(service, &cfg.Worker, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down worker...")
		cancel()
	}()

	worker.Start(ctx)
	log.Println("Worker stopped")
}
