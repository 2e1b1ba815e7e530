package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/docuchat/internal/server"
)

var (
	servePort     int
	serveProvider string
	serveModel    string
	serveBrowser  bool
	serveJSONLog  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the document chat REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveProvider, "llm-provider", "", "LLM provider (openai or gemini, default openai)")
	serveCmd.Flags().StringVar(&serveModel, "llm-model", "", "Override the default model for the chosen provider")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser-fallback", false, "Render JavaScript-heavy pages with a headless browser when plain HTTP yields nothing")
	serveCmd.Flags().BoolVar(&serveJSONLog, "json-log", false, "Emit JSON logs instead of console output")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// OpenAI key is always required: Whisper transcription runs on it even
	// when chat completions use Gemini.
	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if serveProvider == "gemini" && geminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required for the gemini provider")
	}

	log := newLogger(serveJSONLog)

	cfg := server.Config{
		Port:            servePort,
		DatabaseURL:     databaseURL,
		OpenAIAPIKey:    openAIKey,
		GeminiAPIKey:    geminiKey,
		LLMProvider:     serveProvider,
		LLMModel:        serveModel,
		BrowserFallback: serveBrowser,
		Log:             log,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

func newLogger(jsonLog bool) zerolog.Logger {
	if jsonLog {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}
