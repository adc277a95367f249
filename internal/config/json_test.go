package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_FullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"adapter": {"server_address": "https://api.daybook.test", "request_timeout": "5s"},
		"storage": {"db": {"dsn": "daybook.db"}},
		"sync": {"interval": "20s", "push_limit": 50, "pull_limit": 100, "pull_max_pages": 10, "probe_interval": "1m"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.daybook.test", cfg.Adapter.ServerAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "daybook.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 20*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 50, cfg.Sync.PushLimit)
	assert.Equal(t, 100, cfg.Sync.PullLimit)
	assert.Equal(t, 10, cfg.Sync.PullMaxPages)
	assert.Equal(t, time.Minute, cfg.Sync.ProbeInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Duration
	}{
		{name: "string form", in: `"15s"`, want: 15 * time.Second},
		{name: "numeric nanoseconds", in: `1000000000`, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_UnmarshalJSON_BadString(t *testing.T) {
	var d Duration
	require.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(30 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"30s"`, string(out))
}
