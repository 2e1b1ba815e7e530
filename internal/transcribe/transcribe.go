// Package transcribe provides speech-to-text client abstractions.
package transcribe

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

// Transcriber turns an audio file into text.
type Transcriber interface {
	TranscribeFile(ctx context.Context, audioPath, language string) (string, error)
}

// WhisperClient transcribes audio through the OpenAI Whisper API.
type WhisperClient struct {
	client openai.Client
	model  openai.AudioModel
	log    zerolog.Logger
}

// NewWhisperClient creates a Whisper transcription client.
func NewWhisperClient(apiKey string, log zerolog.Logger) (*WhisperClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &WhisperClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.AudioModelWhisper1,
		log:    log.With().Str("component", "whisper").Logger(),
	}, nil
}

// TranscribeFile transcribes the audio file at audioPath, requesting the
// given source language (empty means auto-detect).
func (c *WhisperClient) TranscribeFile(ctx context.Context, audioPath, language string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer func() { _ = file.Close() }()

	params := openai.AudioTranscriptionNewParams{
		Model: c.model,
		File:  file,
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	c.log.Debug().Str("audio_path", audioPath).Str("language", language).Msg("starting transcription")

	resp, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	c.log.Debug().Int("transcript_chars", len(resp.Text)).Msg("transcription complete")
	return resp.Text, nil
}
