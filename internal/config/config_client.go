package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] for fields left unset by every
// configuration source.
const (
	DefaultSyncInterval   = 15 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultProbeInterval  = 30 * time.Second
	DefaultPushLimit      = 100
	DefaultPullLimit      = 200
	DefaultPullMaxPages   = 50
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerAddress is the sync server endpoint used by the client.
	ServerAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains sync loop settings.
type ClientSync struct {
	// Interval defines how often the background sync cycle runs.
	Interval time.Duration
	// PushLimit caps one cycle's push batch size.
	PushLimit int
	// PullLimit is the change feed page size.
	PullLimit int
	// PullMaxPages bounds feed pages consumed per cycle.
	PullMaxPages int
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
}

// ClientApp identifies the account the client syncs for.
type ClientApp struct {
	// UserID keys every local cache and outbox row.
	UserID int64
	// AuthToken is the opaque bearer token sent with sync requests.
	AuthToken string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains background sync settings.
	Sync ClientSync
	// App contains the local user identity.
	App ClientApp
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults for unset tuning fields,
// and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Adapter.ServerAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Interval:      cfg.Sync.Interval,
			PushLimit:     cfg.Sync.PushLimit,
			PullLimit:     cfg.Sync.PullLimit,
			PullMaxPages:  cfg.Sync.PullMaxPages,
			ProbeInterval: cfg.Sync.ProbeInterval,
		},
		App: ClientApp{
			UserID:    cfg.App.UserID,
			AuthToken: cfg.App.AuthToken,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.PushLimit == 0 {
		cfg.Sync.PushLimit = DefaultPushLimit
	}
	if cfg.Sync.PullLimit == 0 {
		cfg.Sync.PullLimit = DefaultPullLimit
	}
	if cfg.Sync.PullMaxPages == 0 {
		cfg.Sync.PullMaxPages = DefaultPullMaxPages
	}
	if cfg.Sync.ProbeInterval == 0 {
		cfg.Sync.ProbeInterval = DefaultProbeInterval
	}
}
