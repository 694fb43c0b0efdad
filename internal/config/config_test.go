package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/jobs",
		"api_key": "gemini-key",
		"rocketreach_key": "rr-key",
		"default_max_results": 30,
		"use_browser": true,
		"debug": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/jobs", cfg.DatabaseURL)
	assert.Equal(t, "gemini-key", cfg.APIKey)
	assert.Equal(t, "rr-key", cfg.RocketReachKey)
	assert.Equal(t, 30, cfg.DefaultMaxResults)
	assert.True(t, cfg.UseBrowser)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not valid json")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value is valid", Config{}, false},
		{"typical config", Config{Port: 8080, DefaultMaxResults: 20, SearchTimeoutSecs: 20}, false},
		{"port too large", Config{Port: 70000}, true},
		{"negative port", Config{Port: -1}, true},
		{"negative max results", Config{DefaultMaxResults: -5}, true},
		{"negative timeout", Config{SearchTimeoutSecs: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9090, APIKey: "from-file"}
	defaults := Config{
		Port:              8080,
		DatabaseURL:       "postgres://localhost/jobs",
		APIKey:            "from-env",
		DefaultMaxResults: 20,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, "postgres://localhost/jobs", merged.DatabaseURL)
	assert.Equal(t, 20, merged.DefaultMaxResults)
}

func TestMergeWithDefaults_DoesNotMergeBools(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{UseBrowser: true, Debug: true})

	assert.False(t, merged.UseBrowser)
	assert.False(t, merged.Debug)
}
