package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/compose"
	"github.com/jonathan/job-agent/internal/config"
	"github.com/jonathan/job-agent/internal/contacts"
	"github.com/jonathan/job-agent/internal/db"
	"github.com/jonathan/job-agent/internal/fetch"
	"github.com/jonathan/job-agent/internal/llm"
	"github.com/jonathan/job-agent/internal/logger"
	"github.com/jonathan/job-agent/internal/search"
	"github.com/jonathan/job-agent/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveUseBrowser bool
	serveJSONLogs   bool
	serveDebug      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes profile, search, enrichment and compose endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "browser", false, "Render JS-heavy portals with a headless browser")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit JSON-encoded logs")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		Port:              servePort,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		APIKey:            os.Getenv("GEMINI_API_KEY"),
		RocketReachKey:    os.Getenv("ROCKETREACH_API_KEY"),
		DefaultMaxResults: 20,
		SearchTimeoutSecs: int(fetch.DefaultTimeout / time.Second),
	})
	cfg.UseBrowser = cfg.UseBrowser || serveUseBrowser
	cfg.JSONLogs = cfg.JSONLogs || serveJSONLogs
	cfg.Debug = cfg.Debug || serveDebug

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	registry, err := search.NewRegistry(search.SearcherOptions{
		Fetch: &fetch.Options{
			Timeout:   time.Duration(cfg.SearchTimeoutSecs) * time.Second,
			UserAgent: fetch.DefaultUserAgent,
		},
		UseBrowser: cfg.UseBrowser,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to build portal registry: %w", err)
	}

	srv, err := server.New(
		server.Config{Port: cfg.Port, DefaultMaxResults: cfg.DefaultMaxResults},
		server.Deps{
			Store:    database,
			Registry: registry,
			Enricher: contacts.NewClient(cfg.RocketReachURL, cfg.RocketReachKey, log),
			Composer: compose.NewComposer(llmClient),
			LLM:      llmClient,
			Logger:   log,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
