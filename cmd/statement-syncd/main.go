package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"

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
	if cfg.SyncSchedule == "" {
		log.Fatal().Msg("SYNC_SCHEDULE is not set")
	}

	orchestrator, err := buildOrchestrator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build pipeline")
	}

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	// Single-flight guard: a run that outlasts its schedule interval must
	// not overlap the next one.
	var running sync.Mutex

	c := cron.New()
	_, err = c.AddFunc(cfg.SyncSchedule, func() {
		if !running.TryLock() {
			log.Warn().Msg("Previous sync run still in progress, skipping this tick")
			return
		}
		defer running.Unlock()

		summary, err := orchestrator.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Sync run failed")
			return
		}
		log.Info().
			Int("pdfs_processed", summary.PDFsProcessed).
			Int("rows_uploaded", summary.RowsUploaded).
			Msg("Scheduled sync run finished")
	})
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SyncSchedule).Msg("Invalid sync schedule")
	}

	c.Start()
	log.Info().Str("schedule", cfg.SyncSchedule).Msg("Statement sync daemon started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down, waiting for in-flight run...")
	cancel()
	<-c.Stop().Done()
	running.Lock()

	log.Info().Msg("Statement sync daemon exited")
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
