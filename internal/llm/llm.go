// Package llm provides chat-completion clients for the model providers the
// pipeline can extract transactions with.
package llm

import "context"

// Message roles understood by the completion providers.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// Request describes one completion call.
type Request struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// CompletionService produces a single text completion for a chat request.
type CompletionService interface {
	Complete(ctx context.Context, req Request) (string, error)
}
