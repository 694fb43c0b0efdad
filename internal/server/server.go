package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-agent/internal/contacts"
	"github.com/jonathan/job-agent/internal/llm"
	"github.com/jonathan/job-agent/internal/search"
	"github.com/jonathan/job-agent/internal/types"
)

// ProfileStore persists candidate profiles. A nil profile without error
// means the ID did not resolve.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p types.Profile) (string, error)
	GetProfile(ctx context.Context, id string) (*types.Profile, error)
}

// Enricher resolves recruiter/HR contacts. Implementations never fail for
// "not found"; they return a contact with Found=false.
type Enricher interface {
	Lookup(ctx context.Context, req contacts.LookupRequest) types.Contact
}

// EmailComposer generates an outreach email for a job and optional contact.
type EmailComposer interface {
	Compose(ctx context.Context, profile *types.Profile, job types.Posting, contact *types.Contact) (types.ComposeResult, error)
}

// Config holds server configuration
type Config struct {
	Port              int
	DefaultMaxResults int
}

// Deps holds the collaborators the front door orchestrates. The portal
// registry is explicit configuration passed in at construction time, which
// keeps tests free to install fake searchers.
type Deps struct {
	Store    ProfileStore
	Registry search.Registry
	Enricher Enricher
	Composer EmailComposer
	LLM      llm.Client
	Logger   *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer        *http.Server
	store             ProfileStore
	registry          search.Registry
	enricher          Enricher
	composer          EmailComposer
	llm               llm.Client
	logger            *zap.Logger
	defaultMaxResults int
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.DefaultMaxResults <= 0 {
		cfg.DefaultMaxResults = 20
	}

	s := &Server{
		store:             deps.Store,
		registry:          deps.Registry,
		enricher:          deps.Enricher,
		composer:          deps.Composer,
		llm:               deps.LLM,
		logger:            deps.Logger,
		defaultMaxResults: cfg.DefaultMaxResults,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Profile endpoints
	mux.HandleFunc("POST /profile/set", s.handleSetProfile)
	mux.HandleFunc("POST /upload_resume", s.handleUploadResume)

	// Search endpoints
	mux.HandleFunc("POST /search_jobs", s.handleSearchJobs)
	mux.HandleFunc("POST /pipeline/run", s.handlePipelineRun)

	// Contact enrichment and email composition
	mux.HandleFunc("POST /contact/enrich", s.handleContactEnrich)
	mux.HandleFunc("POST /compose", s.handleCompose)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // portal fan-out plus an LLM call can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleRoot returns a welcome message
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Welcome to the job agent application"})
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
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// getProfile resolves a profile ID, translating absence into ErrProfileNotFound.
func (s *Server) getProfile(ctx context.Context, profileID string) (*types.Profile, error) {
	if profileID == "" {
		return nil, &ErrMalformedInput{Message: "profile_id is required"}
	}
	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &ErrProfileNotFound{ProfileID: profileID}
	}
	return profile, nil
}
