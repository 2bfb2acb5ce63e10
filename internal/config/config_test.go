package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPricesURL, cfg.PricesURL)
	assert.Equal(t, DefaultIconsBaseURL, cfg.IconsBaseURL)
	assert.Equal(t, DefaultCacheTTLMs, cfg.CacheTTLMs)
	assert.Equal(t, DefaultSwapDelayMs, cfg.SwapDelayMs)
	assert.Equal(t, DefaultFailureRate, cfg.FailureRate)
	assert.False(t, cfg.DebugLogging)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPricesURL, cfg.PricesURL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`prices_url: "https://feed.example.com/prices.json"
swap_delay_ms: 100
failure_rate: 0.5
debug_logging: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://feed.example.com/prices.json", cfg.PricesURL)
	assert.Equal(t, 100, cfg.SwapDelayMs)
	assert.Equal(t, 0.5, cfg.FailureRate)
	assert.True(t, cfg.DebugLogging)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultIconsBaseURL, cfg.IconsBaseURL)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("SWAPDESK_PRICES_URL", "https://env.example.com/prices.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/prices.json", cfg.PricesURL)
}

func TestLoadEnvironmentOverridesBoolKey(t *testing.T) {
	t.Setenv("SWAPDESK_DEBUG_LOGGING", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.DebugLogging)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad prices url", `prices_url: "ftp://feed.example.com"`},
		{"zero cache ttl", `cache_ttl_ms: 0`},
		{"negative swap delay", `swap_delay_ms: -1`},
		{"failure rate above one", `failure_rate: 1.5`},
		{"negative failure rate", `failure_rate: -0.1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
