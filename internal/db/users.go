package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser creates a new user and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, role, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, strings.ToLower(strings.TrimSpace(email)), role, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return db.scanUser(db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	))
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return db.scanUser(db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
}

func (db *DB) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether a user with the given email exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword updates a user's password hash.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ListUsersWithChatCounts returns all users with their chat counts,
// newest first. Used by the admin dashboard.
func (db *DB) ListUsersWithChatCounts(ctx context.Context) ([]UserWithChatCount, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.role, u.created_at, COUNT(c.id)
		 FROM users u
		 LEFT JOIN chats c ON c.user_id = u.id
		 GROUP BY u.id
		 ORDER BY u.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []UserWithChatCount
	for rows.Next() {
		var u UserWithChatCount
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.ChatCount); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of users, optionally filtered by role.
// An empty role counts all users.
func (db *DB) CountUsers(ctx context.Context, role string) (int, error) {
	var count int
	var err error
	if role == "" {
		err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	} else {
		err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
