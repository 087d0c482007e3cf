package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3200, cfg.HTTPPort)
	assert.Equal(t, "./data/talentflow.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.LatencyMin)
	assert.Equal(t, 800*time.Millisecond, cfg.LatencyMax)
	assert.Equal(t, 0.05, cfg.ErrorRate)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SIM_LATENCY_MIN_MS", "10")
	t.Setenv("SIM_LATENCY_MAX_MS", "20")
	t.Setenv("SIM_ERROR_RATE", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 10*time.Millisecond, cfg.LatencyMin)
	assert.Equal(t, 20*time.Millisecond, cfg.LatencyMax)
	assert.Zero(t, cfg.ErrorRate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_YamlFileThenEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talentflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: 9000\nlog_level: warn\n"), 0o644))

	t.Setenv("TALENTFLOW_CONFIG", path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	// file applies first, environment overrides it
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("SIM_ERROR_RATE", "1.5")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadLatencyRange(t *testing.T) {
	t.Setenv("SIM_LATENCY_MIN_MS", "500")
	t.Setenv("SIM_LATENCY_MAX_MS", "100")
	_, err := Load()
	assert.Error(t, err)
}
