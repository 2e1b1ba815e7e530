// Package llm provides centralized LLM configuration and client abstractions.
// This package enables switching between providers without touching callers.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI provider (default)
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Completion response size and creativity are fixed configuration
// constants, not computed per request.
const (
	// DefaultMaxTokens caps the model's response size.
	DefaultMaxTokens = 500
	// DefaultTemperature is the fixed creativity parameter for chat replies.
	DefaultTemperature = 0.7
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Model       string
	MaxTokens   int64
	Temperature float64
}

// DefaultConfig returns the default configuration (currently OpenAI)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Model:       "gpt-3.5-turbo",
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// WithModel returns a copy of the Config with a specific model.
func (c *Config) WithModel(model string) *Config {
	copied := *c
	copied.Model = model
	return &copied
}
