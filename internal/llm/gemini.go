package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig holds the settings for the Gemini API.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClient calls the Gemini generate-content API through the genai SDK.
type GeminiClient struct {
	cfg GeminiConfig
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	return &GeminiClient{cfg: cfg}
}

// Complete sends the chat request as a single user turn and returns the
// model's text response. Gemini has no system role on the v1 surface, so
// system and user messages are concatenated in order.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.cfg.APIKey,
		// API version v1 is what docs use for current Gemini models.
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Complete: create genai client: %w", err)
	}

	var sb strings.Builder
	for i, m := range req.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.Content)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: sb.String()},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Complete: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Complete: empty response from model")
	}

	return text, nil
}
