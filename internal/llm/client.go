package llm

import (
	"context"
	"fmt"

	"github.com/jonathan/docuchat/internal/types"
)

// Completion is the result of a chat completion call.
type Completion struct {
	Message types.ChatMessage
	Usage   types.Usage
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends the conversation to the model and returns its reply
	// plus the provider's token accounting.
	Complete(ctx context.Context, messages []types.ChatMessage) (*Completion, error)
	// Model returns the configured model name (for logging).
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
