package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/docuchat/internal/types"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends the conversation to the model and returns its reply.
// System messages become the model's system instruction; earlier turns go
// into the chat history and the final user message is sent as the prompt.
func (c *GeminiClient) Complete(ctx context.Context, messages []types.ChatMessage) (*Completion, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages for completion")
	}

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(float32(c.config.Temperature))
	model.SetMaxOutputTokens(int32(c.config.MaxTokens))

	var turns []types.ChatMessage
	var systemText string
	for _, m := range messages {
		if m.Role == types.RoleSystem {
			if systemText != "" {
				systemText += "\n"
			}
			systemText += m.Content
			continue
		}
		turns = append(turns, m)
	}
	if systemText != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemText)},
		}
	}
	if len(turns) == 0 {
		return nil, fmt.Errorf("no conversation turns for completion")
	}

	session := model.StartChat()
	last := turns[len(turns)-1]
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == types.RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return nil, fmt.Errorf("Gemini completion failed: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	var usage types.Usage
	if resp.UsageMetadata != nil {
		usage = types.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return &Completion{
		Message: types.ChatMessage{Role: types.RoleAssistant, Content: text},
		Usage:   usage,
	}, nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
