package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesStructuredConfig(t *testing.T) {
	t.Setenv("ADAPTER_SERVER_ADDRESS", "localhost:8080")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "7s")
	t.Setenv("STORAGE_DB_DSN", "client.db")
	t.Setenv("SYNC_INTERVAL", "45s")
	t.Setenv("SYNC_PUSH_LIMIT", "25")
	t.Setenv("CONFIG", "/tmp/cfg.json")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "localhost:8080", cfg.Adapter.ServerAddress)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 45*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 25, cfg.Sync.PushLimit)
	assert.Equal(t, "/tmp/cfg.json", cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))
	assert.Zero(t, cfg.Adapter.ServerAddress)
	assert.Zero(t, cfg.Sync.Interval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SYNC_INTERVAL", "not-a-duration")

	var cfg StructuredConfig
	err := parseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
