package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			ServerAddress:  "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Storage: ClientStorage{DB: ClientDB{DSN: "daybook.db"}},
		Sync: ClientSync{
			Interval:      15 * time.Second,
			PushLimit:     100,
			PullLimit:     200,
			PullMaxPages:  50,
			ProbeInterval: 30 * time.Second,
		},
		App: ClientApp{UserID: 42, AuthToken: "dev-token"},
	}
}

func TestClientConfigValidate_Valid(t *testing.T) {
	require.NoError(t, validClientConfig().validate())
}

func TestClientConfigValidate_MissingDSN(t *testing.T) {
	cfg := validClientConfig()
	cfg.Storage.DB.DSN = ""

	err := cfg.validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStorageConfigs))
}

func TestClientConfigValidate_MissingServerAddress(t *testing.T) {
	cfg := validClientConfig()
	cfg.Adapter.ServerAddress = ""

	err := cfg.validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAdapterConfigs))
}

func TestClientConfigValidate_BadSyncLimits(t *testing.T) {
	cfg := validClientConfig()
	cfg.Sync.PushLimit = 0

	err := cfg.validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSyncConfigs))
}

func TestClientConfigValidate_MissingUserID(t *testing.T) {
	cfg := validClientConfig()
	cfg.App.UserID = 0

	err := cfg.validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAppConfigs))
}

func TestApplyDefaults_FillsUnsetFields(t *testing.T) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{ServerAddress: "localhost:8080"},
		Storage: ClientStorage{DB: ClientDB{DSN: "daybook.db"}},
		App:     ClientApp{UserID: 1},
	}
	cfg.applyDefaults()

	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultSyncInterval, cfg.Sync.Interval)
	assert.Equal(t, DefaultPushLimit, cfg.Sync.PushLimit)
	assert.Equal(t, DefaultPullLimit, cfg.Sync.PullLimit)
	assert.Equal(t, DefaultPullMaxPages, cfg.Sync.PullMaxPages)
	assert.Equal(t, DefaultProbeInterval, cfg.Sync.ProbeInterval)
	require.NoError(t, cfg.validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validClientConfig()
	cfg.Sync.Interval = time.Minute
	cfg.applyDefaults()

	assert.Equal(t, time.Minute, cfg.Sync.Interval)
}

func TestConfigBuilder_MergePriority(t *testing.T) {
	// first source wins for non-zero fields; later sources fill gaps
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{ServerAddress: "from-env"}},
		&StructuredConfig{
			Adapter: Adapter{ServerAddress: "from-flags", RequestTimeout: 3 * time.Second},
			Storage: Storage{DB: DB{DSN: "flags.db"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Adapter.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "flags.db", cfg.Storage.DB.DSN)
}
