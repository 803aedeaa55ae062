package interfaces

import (
	"context"

	"github.com/ternarybob/credence/internal/models"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// ChatOptions tunes a single completion call. Zero values fall back to the
// provider's configured defaults.
type ChatOptions struct {
	// Provider selects the completion provider; empty uses the configured default
	Provider models.Provider

	// Model overrides the provider's configured model
	Model string

	// Temperature overrides the provider's configured temperature when > 0
	Temperature float32

	// MaxTokens caps the length of the generated response when > 0
	MaxTokens int

	// JSON asks providers that support it for a JSON response body
	JSON bool
}

// ChatResult is the text produced by a completion call and where it came from
type ChatResult struct {
	Text     string
	Provider models.Provider
	Model    string
}

// LLMService defines the interface for chat completions against a remote
// language model provider.
type LLMService interface {
	// Chat generates a completion response based on the conversation history.
	// The messages slice should contain the full conversation context including
	// system prompts, user messages, and previous assistant responses.
	//
	// Chat makes a single attempt. Callers that want retries wrap it.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - messages: Conversation history in chronological order
	//   - opts: Per-call provider, model and sampling overrides
	//
	// Returns:
	//   - *ChatResult: Generated assistant response with provider and model
	//   - error: Error if chat completion fails
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (*ChatResult, error)

	// Configured reports which providers have an API key available.
	//
	// Returns:
	//   - []models.Provider: Providers that can serve requests, default first
	Configured() []models.Provider

	// DefaultModel returns the model used when a call does not name one.
	//
	// Parameters:
	//   - provider: Provider to query; empty uses the configured default
	//
	// Returns:
	//   - string: Model name
	DefaultModel(provider models.Provider) string

	// Close releases provider clients.
	//
	// Returns:
	//   - error: Error if cleanup fails
	Close() error
}
