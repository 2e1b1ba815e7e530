// Package server provides the HTTP REST API for the document chat backend.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/docuchat/internal/chat"
	"github.com/jonathan/docuchat/internal/config"
	"github.com/jonathan/docuchat/internal/db"
	"github.com/jonathan/docuchat/internal/llm"
	"github.com/jonathan/docuchat/internal/server/middleware"
	"github.com/jonathan/docuchat/internal/server/ratelimit"
	"github.com/jonathan/docuchat/internal/services/ytdlp"
	"github.com/jonathan/docuchat/internal/sources"
	"github.com/jonathan/docuchat/internal/transcribe"
)

// chatTimeout bounds one whole chat request including document fan-out and
// the completion call.
const chatTimeout = 120 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	userService  *UserService
	resolver     *sources.Resolver
	orchestrator *chat.Orchestrator
	llmClient    llm.Client
	chatStore    ChatStore
	adminStore   AdminStore
	log          zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port            int
	DatabaseURL     string
	OpenAIAPIKey    string
	GeminiAPIKey    string
	LLMProvider     string
	LLMModel        string
	BrowserFallback bool
	Log             zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:         database,
		chatStore:  database,
		adminStore: database,
		log:        cfg.Log,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	llmConfig, err := buildLLMConfig(cfg)
	if err != nil {
		return nil, err
	}
	apiKey := cfg.OpenAIAPIKey
	if llmConfig.Provider == llm.ProviderGemini {
		apiKey = cfg.GeminiAPIKey
	}
	s.llmClient, err = llm.NewClient(context.Background(), llmConfig, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	whisper, err := transcribe.NewWhisperClient(cfg.OpenAIAPIKey, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcription client: %w", err)
	}
	s.resolver = sources.NewResolver(sources.ResolverConfig{
		TranscriptStore: database,
		Downloader:      ytdlp.NewClient("", ""),
		Transcriber:     whisper,
		BrowserFallback: cfg.BrowserFallback,
		Log:             cfg.Log,
	})
	s.orchestrator = chat.NewOrchestrator(s.resolver, s.llmClient, cfg.Log)

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	requireAdmin := middleware.RequireAdmin

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/signin", s.handleSignin)
	mux.Handle("PUT /auth/password", requireAuth(http.HandlerFunc(s.handleUpdatePassword)))

	// Document chat endpoints
	mux.Handle("POST /chat", requireAuth(http.HandlerFunc(s.handleChat)))
	mux.Handle("POST /youtube/process", requireAuth(http.HandlerFunc(s.handleProcessVideo)))
	mux.Handle("GET /youtube/transcript/{videoId}", requireAuth(http.HandlerFunc(s.handleGetTranscript)))
	mux.Handle("GET /googledocs/doc/{docId}", requireAuth(http.HandlerFunc(s.handleGoogleDocTitle)))
	mux.Handle("GET /googledocs/sheet/{sheetId}", requireAuth(http.HandlerFunc(s.handleGoogleSheetTitle)))
	mux.Handle("POST /notion/page/title", requireAuth(http.HandlerFunc(s.handleNotionTitle)))
	mux.Handle("POST /pdf/upload", requireAuth(http.HandlerFunc(s.handlePDFUpload)))

	// Stored chat endpoints
	mux.Handle("POST /chats", requireAuth(http.HandlerFunc(s.handleCreateChat)))
	mux.Handle("GET /chats", requireAuth(http.HandlerFunc(s.handleListChats)))
	mux.Handle("GET /chats/{id}", requireAuth(http.HandlerFunc(s.handleGetChat)))
	mux.Handle("PUT /chats/{id}/name", requireAuth(http.HandlerFunc(s.handleUpdateChatName)))
	mux.Handle("PUT /chats/{id}/documents", requireAuth(http.HandlerFunc(s.handleUpdateChatDocuments)))
	mux.Handle("POST /chats/{id}/messages", requireAuth(http.HandlerFunc(s.handleAddChatMessage)))
	mux.Handle("PUT /chats/{id}/pin", requireAuth(http.HandlerFunc(s.handleTogglePin)))
	mux.Handle("DELETE /chats/{id}", requireAuth(http.HandlerFunc(s.handleDeleteChat)))

	// Admin endpoints
	mux.Handle("GET /admin/users", requireAuth(requireAdmin(http.HandlerFunc(s.handleAdminListUsers))))
	mux.Handle("GET /admin/stats", requireAuth(requireAdmin(http.HandlerFunc(s.handleAdminStats))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // transcription requests can run long
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// buildLLMConfig maps server config onto an LLM provider configuration.
func buildLLMConfig(cfg Config) (*llm.Config, error) {
	var llmConfig *llm.Config
	switch cfg.LLMProvider {
	case "", string(llm.ProviderOpenAI):
		llmConfig = llm.DefaultConfig()
	case string(llm.ProviderGemini):
		llmConfig = llm.DefaultGeminiConfig()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
	if cfg.LLMModel != "" {
		llmConfig = llmConfig.WithModel(cfg.LLMModel)
	}
	return llmConfig, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.log.Warn().Err(err).Msg("failed to close LLM client")
		}
	}

	s.db.Close()
	s.log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warn().
		Int("limit", info.Limit).
		Int("remaining", info.Remaining).
		Time("reset", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
