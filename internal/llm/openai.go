package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jonathan/docuchat/internal/types"
)

// OpenAIClient implements Client for OpenAI chat completions.
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// Complete sends the conversation to the model and returns its reply.
func (c *OpenAIClient) Complete(ctx context.Context, messages []types.ChatMessage) (*Completion, error) {
	chatMessages, err := toChatCompletionMessages(messages)
	if err != nil {
		return nil, err
	}

	req := openai.ChatCompletionNewParams{
		Model:       c.config.Model,
		Messages:    chatMessages,
		MaxTokens:   openai.Int(c.config.MaxTokens),
		Temperature: openai.Float(c.config.Temperature),
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	return &Completion{
		Message: types.ChatMessage{
			Role:    types.RoleAssistant,
			Content: resp.Choices[0].Message.Content,
		},
		Usage: types.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *OpenAIClient) Close() error {
	return nil
}

func toChatCompletionMessages(messages []types.ChatMessage) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case types.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case types.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case types.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			return nil, fmt.Errorf("unsupported message role: %q", m.Role)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no messages for completion")
	}
	return out, nil
}
