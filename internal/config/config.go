// Package config loads process configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Completion providers selectable via LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Defaults mirror the sampling parameters the extraction prompt was tuned
// against. MaxExtractAttempts bounds the completion retry loop.
const (
	DefaultOpenAIModel        = "gpt-3.5-turbo"
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultGeminiModel        = "gemini-2.5-flash"
	DefaultMaxExtractAttempts = 3
	DefaultRetryBackoff       = 2 * time.Second
)

// Config holds everything the pipeline needs at startup. Two secrets
// (Notion token, completion-provider key) and two fixed identifiers
// (source database, target container page) are required; the rest have
// defaults.
type Config struct {
	NotionToken    string
	MainDatabaseID string
	TargetPageID   string

	Provider      string // openai or gemini
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string

	MaxExtractAttempts int
	RetryBackoff       time.Duration

	// SyncSchedule is the cron expression used by statement-syncd.
	// Empty means the daemon refuses to start.
	SyncSchedule string
}

// Load reads configuration from the environment. Absence of a required
// secret or identifier is an error; callers treat that as fatal.
func Load() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		NotionToken:        os.Getenv("NOTION_API_KEY"),
		MainDatabaseID:     os.Getenv("MAIN_DATABASE_ID"),
		TargetPageID:       os.Getenv("TARGET_PAGE_ID"),
		Provider:           getenvDefault("LLM_PROVIDER", ProviderOpenAI),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getenvDefault("OPENAI_MODEL", DefaultOpenAIModel),
		OpenAIBaseURL:      getenvDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		GeminiKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getenvDefault("GEMINI_MODEL", DefaultGeminiModel),
		MaxExtractAttempts: DefaultMaxExtractAttempts,
		RetryBackoff:       DefaultRetryBackoff,
		SyncSchedule:       os.Getenv("SYNC_SCHEDULE"),
	}

	if v := os.Getenv("MAX_EXTRACT_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: invalid MAX_EXTRACT_ATTEMPTS %q", v)
		}
		cfg.MaxExtractAttempts = n
	}
	if v := os.Getenv("RETRY_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("config: invalid RETRY_BACKOFF %q", v)
		}
		cfg.RetryBackoff = d
	}

	if cfg.NotionToken == "" {
		return nil, fmt.Errorf("config: NOTION_API_KEY is not set")
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("config: OPENAI_API_KEY is not set")
		}
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("config: GEMINI_API_KEY is not set")
		}
	default:
		return nil, fmt.Errorf("config: unknown LLM_PROVIDER %q", cfg.Provider)
	}
	if cfg.MainDatabaseID == "" {
		return nil, fmt.Errorf("config: MAIN_DATABASE_ID is not set")
	}
	if cfg.TargetPageID == "" {
		return nil, fmt.Errorf("config: TARGET_PAGE_ID is not set")
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
