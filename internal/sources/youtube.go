package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/extract"
	"github.com/jonathan/docuchat/internal/services/ytdlp"
	"github.com/jonathan/docuchat/internal/transcribe"
	"github.com/jonathan/docuchat/internal/types"
)

// MaxVideoDurationSeconds bounds transcription cost. Videos longer than two
// hours are rejected before any audio is downloaded.
const MaxVideoDurationSeconds = 7200

// Errors returned by the YouTube fetcher.
var (
	ErrInvalidVideoURL = errors.New("invalid YouTube URL")
	ErrVideoTooLong    = errors.New("video is too long, max duration is 2 hours")
	ErrEmptyTranscript = errors.New("transcription produced no text")
)

// TranscriptStore is the durable transcript cache. Lookup by video ID;
// insert with a uniqueness constraint on the video ID.
type TranscriptStore interface {
	GetTranscript(ctx context.Context, videoID string) (*db.Transcript, error)
	CreateTranscript(ctx context.Context, t *db.Transcript) (bool, error)
}

// AudioDownloader provides video metadata and audio-only downloads.
type AudioDownloader interface {
	GetInfo(ctx context.Context, videoURL string) (*ytdlp.VideoInfo, error)
	DownloadAudio(ctx context.Context, videoURL, videoID string) (string, func(), error)
}

// YouTubeFetcher resolves a video URL to its transcript, consulting the
// transcript cache before downloading and transcribing audio.
type YouTubeFetcher struct {
	store       TranscriptStore
	downloader  AudioDownloader
	transcriber transcribe.Transcriber
	language    string
	log         zerolog.Logger
}

// YouTubeResult is the outcome of processing one video.
type YouTubeResult struct {
	VideoID         string
	Title           string
	Transcript      string
	DurationSeconds int
	Language        string
	Cached          bool
}

// Process resolves the video ID, returns the cached transcript when one
// exists, and otherwise downloads the lowest-bitrate audio stream,
// transcribes it and persists the new record. Nothing is written to the
// cache until transcription fully completes, so cancellation never leaves a
// partial record.
func (f *YouTubeFetcher) Process(ctx context.Context, videoURL string) (*YouTubeResult, error) {
	videoID := extract.YouTubeVideoID(videoURL)
	if videoID == "" {
		return nil, ErrInvalidVideoURL
	}

	if cached, err := f.store.GetTranscript(ctx, videoID); err != nil {
		return nil, err
	} else if cached != nil {
		f.log.Debug().Str("video_id", videoID).Msg("transcript cache hit")
		return &YouTubeResult{
			VideoID:         cached.VideoID,
			Title:           cached.Title,
			Transcript:      cached.Transcript,
			DurationSeconds: cached.DurationSeconds,
			Language:        cached.Language,
			Cached:          true,
		}, nil
	}

	info, err := f.downloader.GetInfo(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	if info.DurationSeconds > MaxVideoDurationSeconds {
		return nil, ErrVideoTooLong
	}

	audioPath, cleanup, err := f.downloader.DownloadAudio(ctx, videoURL, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}
	defer cleanup()

	transcript, err := f.transcriber.TranscribeFile(ctx, audioPath, f.language)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	inserted, err := f.store.CreateTranscript(ctx, &db.Transcript{
		VideoID:         videoID,
		VideoURL:        videoURL,
		Transcript:      transcript,
		DurationSeconds: info.DurationSeconds,
		Title:           info.Title,
		Language:        f.language,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		// A concurrent request transcribed the same video first. The
		// duplicate work is wasted but harmless; serve our own result.
		f.log.Debug().Str("video_id", videoID).Msg("transcript already stored by concurrent request")
	}

	return &YouTubeResult{
		VideoID:         videoID,
		Title:           info.Title,
		Transcript:      transcript,
		DurationSeconds: info.DurationSeconds,
		Language:        f.language,
		Cached:          false,
	}, nil
}

// Lookup returns the cached transcript for a video ID, or nil when absent.
func (f *YouTubeFetcher) Lookup(ctx context.Context, videoID string) (*db.Transcript, error) {
	return f.store.GetTranscript(ctx, videoID)
}

// Fetch implements Fetcher.
func (f *YouTubeFetcher) Fetch(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error) {
	result, err := f.Process(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	title := result.Title
	if title == "" {
		title = "YouTube Video " + result.VideoID
	}
	return &types.FetchResult{Content: result.Transcript, Title: title}, nil
}
