// Package ytdlp wraps the yt-dlp binary for YouTube metadata lookup and
// audio-only downloads.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Command is the default yt-dlp binary name.
const Command = "yt-dlp"

// audioFormat selects the lowest-bitrate audio-only stream to keep download
// and transcription cost down. m4a preferred for Whisper compatibility.
const audioFormat = "worstaudio[ext=m4a]/worstaudio"

// VideoInfo holds the metadata needed before committing to a download.
type VideoInfo struct {
	ID              string
	Title           string
	DurationSeconds int
}

// Client runs yt-dlp commands.
type Client struct {
	binary        string
	tempDir       string
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewClient creates a yt-dlp client. Downloads are written under tempDir.
func NewClient(binary, tempDir string) *Client {
	if binary == "" {
		binary = Command
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Client{
		binary:  binary,
		tempDir: tempDir,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	c.commandRunner = runner
}

// run executes yt-dlp, using the custom runner if set.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s: %w: %s", c.binary, err, stderr)
	}
	return out, nil
}

// GetInfo fetches video metadata without downloading anything.
func (c *Client) GetInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	out, err := c.run(ctx, "--dump-json", "--no-download", "--no-playlist", videoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	var raw struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Duration float64 `json:"duration"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse video info: %w", err)
	}

	return &VideoInfo{
		ID:              raw.ID,
		Title:           raw.Title,
		DurationSeconds: int(raw.Duration),
	}, nil
}

// DownloadAudio downloads the lowest-bitrate audio-only stream to a temp file
// and returns its path together with a cleanup function that removes it.
func (c *Client) DownloadAudio(ctx context.Context, videoURL, videoID string) (string, func(), error) {
	if err := os.MkdirAll(c.tempDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	dest := filepath.Join(c.tempDir, fmt.Sprintf("audio_%s_%d.m4a", videoID, time.Now().UnixNano()))
	_, err := c.run(ctx, "-f", audioFormat, "-o", dest, "--no-playlist", videoURL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to download audio: %w", err)
	}

	cleanup := func() { _ = os.Remove(dest) }
	return dest, cleanup, nil
}
