// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the server configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Backends
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	RocketReachKey string `json:"rocketreach_key,omitempty"` // People-search API key (optional)
	RocketReachURL string `json:"rocketreach_url,omitempty"` // People-search base URL override

	// Search behavior
	DefaultMaxResults int  `json:"default_max_results,omitempty"` // Result cap when the request omits one
	SearchTimeoutSecs int  `json:"search_timeout_secs,omitempty"` // Per-portal fetch timeout
	UseBrowser        bool `json:"use_browser,omitempty"`         // Render JS-heavy portals with a headless browser

	// Logging
	JSONLogs bool `json:"json_logs,omitempty"` // Emit JSON-encoded logs
	Debug    bool `json:"debug,omitempty"`     // Enable debug-level logging
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in range 0-65535")
	}
	if c.DefaultMaxResults < 0 {
		return fmt.Errorf("config error: 'default_max_results' must be non-negative")
	}
	if c.SearchTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'search_timeout_secs' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.RocketReachKey == "" {
		result.RocketReachKey = defaults.RocketReachKey
	}
	if result.RocketReachURL == "" {
		result.RocketReachURL = defaults.RocketReachURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DefaultMaxResults == 0 {
		result.DefaultMaxResults = defaults.DefaultMaxResults
	}
	if result.SearchTimeoutSecs == 0 {
		result.SearchTimeoutSecs = defaults.SearchTimeoutSecs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
