package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/statement-sync/internal/config"
	"github.com/dvloznov/statement-sync/internal/extract"
	"github.com/dvloznov/statement-sync/internal/llm"
	"github.com/dvloznov/statement-sync/internal/logger"
	"github.com/dvloznov/statement-sync/internal/notion"
	"github.com/dvloznov/statement-sync/internal/pdf"
	"github.com/dvloznov/statement-sync/internal/pipeline"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Bound the run so a stuck download or API call doesn't hang the CLI.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("source_database", cfg.MainDatabaseID).
		Str("target_page", cfg.TargetPageID).
		Str("provider", cfg.Provider).
		Msg("Starting statement sync")

	orchestrator, err := buildOrchestrator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build pipeline")
	}

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Printf("Sync completed: %d of %d statements processed, %d rows uploaded.\n",
		summary.PDFsProcessed, summary.PDFsFound, summary.RowsUploaded)
}

func buildOrchestrator(cfg *config.Config) (*pipeline.Orchestrator, error) {
	var completions llm.CompletionService
	switch cfg.Provider {
	case config.ProviderOpenAI:
		completions = llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	case config.ProviderGemini:
		completions = llm.NewGeminiClient(llm.GeminiConfig{
			APIKey: cfg.GeminiKey,
			Model:  cfg.GeminiModel,
		})
	default:
		return nil, fmt.Errorf("buildOrchestrator: unknown provider %q", cfg.Provider)
	}

	svc := notion.NewClient(cfg.NotionToken)

	return pipeline.NewOrchestrator(
		svc,
		notion.NewScanner(svc),
		notion.NewResolver(svc, cfg.TargetPageID),
		notion.NewUploader(svc),
		pdf.NewExtractor(),
		extract.NewExtractor(completions, cfg.MaxExtractAttempts, cfg.RetryBackoff),
		cfg.MainDatabaseID,
	), nil
}
