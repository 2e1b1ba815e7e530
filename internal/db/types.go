package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/docuchat/internal/types"
)

// User represents a user row, including the password hash.
// API-facing code converts this to types.User which excludes the hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transcript is a cached YouTube transcription keyed by video ID.
// Records are written once and never mutated or expired.
type Transcript struct {
	VideoID         string
	VideoURL        string
	Transcript      string
	DurationSeconds int
	Title           string
	Language        string
	CreatedAt       time.Time
}

// Chat is a stored conversation owned by a user.
type Chat struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Messages  []types.StoredMessage
	Documents []types.DocumentReference
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatSummary is the listing view of a chat (no messages or documents).
type ChatSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserWithChatCount is the admin listing view of a user.
type UserWithChatCount struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ChatCount int       `json:"chat_count"`
}
