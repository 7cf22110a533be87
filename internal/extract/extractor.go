// Package extract turns raw statement text into transactions by prompting
// a chat-completion model for CSV output and parsing the result.
package extract

import (
	"context"
	"math/rand"
	"time"

	"github.com/dvloznov/statement-sync/internal/domain"
	"github.com/dvloznov/statement-sync/internal/llm"
	"github.com/dvloznov/statement-sync/internal/logger"
)

const (
	extractTemperature = 0.2
	extractMaxTokens   = 1500
)

// Extractor asks a completion model for transactions in CSV form, retrying
// on malformed output. After all attempts fail it degrades to an empty
// result rather than failing the statement.
type Extractor struct {
	completions llm.CompletionService
	maxAttempts int
	backoff     time.Duration
}

// NewExtractor creates an Extractor with the given attempt budget and base
// backoff between attempts.
func NewExtractor(completions llm.CompletionService, maxAttempts int, backoff time.Duration) *Extractor {
	return &Extractor{
		completions: completions,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Extract prompts the model with the statement text and parses its CSV
// response. Every failure mode, including attempt exhaustion, yields an
// empty slice so the caller can mark the statement done and move on.
func (e *Extractor) Extract(ctx context.Context, statementText string) []domain.Transaction {
	log := logger.FromContext(ctx)
	prompt := BuildPrompt(statementText)

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := e.wait(ctx, attempt); err != nil {
				log.Warn().Err(err).Msg("Extraction aborted while waiting to retry")
				return nil
			}
		}

		message, err := e.completions.Complete(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: prompt},
			},
			Temperature: extractTemperature,
			MaxTokens:   extractMaxTokens,
		})
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", e.maxAttempts).
				Msg("Completion attempt failed")
			continue
		}

		transactions, err := parseTransactionsCSV(fencedBlock(message))
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", e.maxAttempts).
				Msg("Model output failed CSV validation")
			continue
		}

		return transactions
	}

	log.Warn().
		Int("max_attempts", e.maxAttempts).
		Msg("All extraction attempts failed, continuing with no transactions")
	return nil
}

// wait sleeps for the backoff before the given attempt, growing linearly
// with a jitter of up to half the base backoff. It returns early when the
// context is cancelled.
func (e *Extractor) wait(ctx context.Context, attempt int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	delay := e.backoff * time.Duration(attempt-1)
	if half := e.backoff / 2; half > 0 {
		delay += time.Duration(rand.Int63n(int64(half)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
