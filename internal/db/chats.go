package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/docuchat/internal/types"
)

// CreateChat creates a new chat for a user and returns the stored record.
func (db *DB) CreateChat(ctx context.Context, userID uuid.UUID, name string, documents []types.DocumentReference) (*Chat, error) {
	if name == "" {
		name = "Untitled Chat"
	}
	if documents == nil {
		documents = []types.DocumentReference{}
	}

	docsJSON, err := json.Marshal(documents)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal documents: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO chats (user_id, name, messages, documents)
		 VALUES ($1, $2, '[]'::jsonb, $3)
		 RETURNING id`,
		userID, name, docsJSON,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return db.GetChat(ctx, id, userID)
}

// GetChat retrieves a chat by ID, scoped to its owning user.
// Returns nil when the chat does not exist or is owned by someone else.
func (db *DB) GetChat(ctx context.Context, chatID, userID uuid.UUID) (*Chat, error) {
	var (
		c        Chat
		msgsJSON []byte
		docsJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, name, messages, documents, is_pinned, created_at, updated_at
		 FROM chats WHERE id = $1 AND user_id = $2`,
		chatID, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &msgsJSON, &docsJSON, &c.IsPinned, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	if err := json.Unmarshal(msgsJSON, &c.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat messages: %w", err)
	}
	if err := json.Unmarshal(docsJSON, &c.Documents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat documents: %w", err)
	}
	return &c, nil
}

// ListChats returns chat summaries for a user, most recently updated first.
func (db *DB) ListChats(ctx context.Context, userID uuid.UUID) ([]ChatSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, is_pinned, created_at, updated_at
		 FROM chats WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []ChatSummary
	for rows.Next() {
		var c ChatSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.IsPinned, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// UpdateChatName renames a chat. Returns false when the chat was not found.
func (db *DB) UpdateChatName(ctx context.Context, chatID, userID uuid.UUID, name string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE chats SET name = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		name, chatID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update chat name: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateChatDocuments replaces the documents attached to a chat.
// Returns false when the chat was not found.
func (db *DB) UpdateChatDocuments(ctx context.Context, chatID, userID uuid.UUID, documents []types.DocumentReference) (bool, error) {
	if documents == nil {
		documents = []types.DocumentReference{}
	}
	docsJSON, err := json.Marshal(documents)
	if err != nil {
		return false, fmt.Errorf("failed to marshal documents: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE chats SET documents = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		docsJSON, chatID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update chat documents: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AppendChatMessage appends a message to a chat's message array.
// Returns false when the chat was not found.
func (db *DB) AppendChatMessage(ctx context.Context, chatID, userID uuid.UUID, msg types.StoredMessage) (bool, error) {
	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return false, fmt.Errorf("failed to marshal message: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE chats SET messages = messages || $1::jsonb, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3`,
		msgJSON, chatID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to append chat message: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetChatPinned sets the pinned flag on a chat.
// Returns false when the chat was not found.
func (db *DB) SetChatPinned(ctx context.Context, chatID, userID uuid.UUID, pinned bool) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE chats SET is_pinned = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		pinned, chatID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set chat pinned: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteChat deletes a chat. Returns false when the chat was not found.
func (db *DB) DeleteChat(ctx context.Context, chatID, userID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM chats WHERE id = $1 AND user_id = $2`,
		chatID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountChats returns the total number of chats across all users.
func (db *DB) CountChats(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chats`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chats: %w", err)
	}
	return count, nil
}
