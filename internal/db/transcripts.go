package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetTranscript retrieves a cached transcript by video ID.
// Returns nil when no record exists.
func (db *DB) GetTranscript(ctx context.Context, videoID string) (*Transcript, error) {
	var t Transcript
	err := db.pool.QueryRow(ctx,
		`SELECT video_id, video_url, transcript, duration_seconds, title, language, created_at
		 FROM transcripts WHERE video_id = $1`,
		videoID,
	).Scan(&t.VideoID, &t.VideoURL, &t.Transcript, &t.DurationSeconds, &t.Title, &t.Language, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transcript %s: %w", videoID, err)
	}
	return &t, nil
}

// CreateTranscript stores a transcript record. The video_id column carries a
// uniqueness constraint: a duplicate store is a no-op, not an overwrite, so a
// concurrent request that transcribed the same video keeps the first record.
// Returns false when a record for the video already existed.
func (db *DB) CreateTranscript(ctx context.Context, t *Transcript) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO transcripts (video_id, video_url, transcript, duration_seconds, title, language)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (video_id) DO NOTHING`,
		t.VideoID, t.VideoURL, t.Transcript, t.DurationSeconds, t.Title, t.Language,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create transcript %s: %w", t.VideoID, err)
	}
	return tag.RowsAffected() > 0, nil
}
