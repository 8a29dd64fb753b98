package main

import (
	"fmt"
	"log"

	"github.com/srinathstart/HealthSyncAI/internal/config"
	"github.com/srinathstart/HealthSyncAI/internal/handler"
	"github.com/srinathstart/HealthSyncAI/internal/llm/openai"
	"github.com/srinathstart/HealthSyncAI/internal/pdftext"
	"github.com/srinathstart/HealthSyncAI/internal/pipeline"
	"github.com/srinathstart/HealthSyncAI/internal/repository/postgres"
	"github.com/srinathstart/HealthSyncAI/internal/router"
	"github.com/srinathstart/HealthSyncAI/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	reportRepo := postgres.NewHealthReportRepo(db)

	completer, err := openai.NewClient(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	extractor := pdftext.NewExtractor(cfg.OCR)
	pipe := pipeline.New(completer)

	analysisSvc := service.NewAnalysisService(reportRepo, extractor, pipe, cfg)

	analysisH := handler.NewAnalysisHandler(analysisSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(analysisH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s (model %s)", cfg.Server.Port, completer.Model())
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
