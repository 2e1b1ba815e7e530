package types

import "time"

// MessageRole identifies who produced a chat message.
type MessageRole string

// Chat message roles.
const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Valid reports whether the role is one of the supported message roles.
func (r MessageRole) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// ChatMessage is a single conversation turn.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// StoredMessage is a conversation turn persisted in chat history.
type StoredMessage struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// Usage is the token accounting reported by the model provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatRequest is the body of a POST /chat request.
type ChatRequest struct {
	Messages  []ChatMessage       `json:"messages"`
	Documents []DocumentReference `json:"documents,omitempty"`
}

// ChatResponse is the reply returned for a successful chat request.
type ChatResponse struct {
	Message ChatMessage `json:"message"`
	Usage   Usage       `json:"usage"`
}

// CreateChatRequest creates a new stored chat.
type CreateChatRequest struct {
	Name      string              `json:"name,omitempty"`
	Documents []DocumentReference `json:"documents,omitempty"`
}

// UpdateChatNameRequest renames a stored chat.
type UpdateChatNameRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// UpdateChatDocumentsRequest replaces the documents attached to a stored chat.
type UpdateChatDocumentsRequest struct {
	Documents []DocumentReference `json:"documents"`
}

// AddMessageRequest appends a message to a stored chat.
type AddMessageRequest struct {
	Role    MessageRole `json:"role" validate:"required"`
	Content string      `json:"content" validate:"required"`
}

// TogglePinRequest sets the pinned state of a stored chat.
type TogglePinRequest struct {
	IsPinned bool `json:"is_pinned"`
}
