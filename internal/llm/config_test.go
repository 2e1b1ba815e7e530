package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.EqualValues(t, 500, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.001)
}

func TestDefaultGeminiConfig(t *testing.T) {
	cfg := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.Model)
	assert.EqualValues(t, DefaultMaxTokens, cfg.MaxTokens)
}

func TestWithModel(t *testing.T) {
	cfg := DefaultConfig()
	modified := cfg.WithModel("gpt-4o-mini")

	assert.Equal(t, "gpt-4o-mini", modified.Model)
	// Original untouched.
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, cfg.Provider, modified.Provider)
}

func TestToChatCompletionMessages_Empty(t *testing.T) {
	_, err := toChatCompletionMessages(nil)
	assert.Error(t, err)
}
