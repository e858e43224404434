package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/internal/adapter/repository"
	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/external/enrichment"
	"github.com/johnquangdev/briefing-assistant/internal/usecase/briefing"
	"github.com/johnquangdev/briefing-assistant/pkg/ai"
	"github.com/johnquangdev/briefing-assistant/pkg/config"
	"github.com/johnquangdev/briefing-assistant/pkg/prompts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	jobRepo := repository.NewJobRepository(db)
	briefingRepo := repository.NewBriefingRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)

	// Initialize providers
	log.Println("🤖 Initializing enrichment providers...")
	openaiClient := ai.NewOpenAIClient(&cfg.OpenAI)
	lookupClient := enrichment.NewClient(&cfg.Enrichment, logger)
	promptLoader := prompts.NewLoader(cfg.Enrichment.PromptsDir)

	// Build the pipeline and worker pool
	pipeline := briefing.NewPipeline(openaiClient, lookupClient, briefingRepo, meetingRepo, promptLoader, logger)
	pool := briefing.NewWorkerPool(jobRepo, briefingRepo, pipeline, cfg.Worker, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pool.Start(ctx); err != nil {
		log.Fatalf("Failed to start worker pool: %v", err)
	}

	// Graceful shutdown; in-flight jobs run to completion
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down worker...")
	if err := pool.Stop(); err != nil {
		log.Printf("Worker pool stop: %v", err)
	}

	log.Println("✅ Worker exited gracefully")
}
