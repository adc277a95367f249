package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the daybook
// sync client. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the remote sync server address and outbound request
	// timeout used by the protocol client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds sync loop tuning: interval, batch limits, probe cadence.
	Sync Sync `envPrefix:"SYNC_"`

	// App holds the local user identity and credentials.
	App App `envPrefix:"APP_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// ServerAddress is the base URL or host:port of the sync server
	// (e.g. "https://api.daybook.app" or "localhost:8080").
	// Env: ADAPTER_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (e.g. "10s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path used for the local cache and outbox
	// (e.g. "daybook.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Sync holds tuning for the background sync loop.
type Sync struct {
	// Interval is the fixed cadence of the timer-triggered sync cycle.
	// The fixed interval is also the retry policy after a failed cycle.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// PushLimit caps how many pending outbox rows are sent in one cycle.
	// Env: SYNC_PUSH_LIMIT
	PushLimit int `env:"PUSH_LIMIT"`

	// PullLimit is the page size requested from the change feed.
	// Env: SYNC_PULL_LIMIT
	PullLimit int `env:"PULL_LIMIT"`

	// PullMaxPages bounds how many feed pages one cycle may consume, so an
	// unbounded catch-up cannot block the loop.
	// Env: SYNC_PULL_MAX_PAGES
	PullMaxPages int `env:"PULL_MAX_PAGES"`

	// ProbeInterval is the cadence of the connectivity probe.
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// App identifies the local account the sync engine works on behalf of.
type App struct {
	// UserID is the account whose cache partition and outbox this client
	// owns. All local rows are keyed by it.
	// Env: APP_USER_ID
	UserID int64 `env:"USER_ID"`

	// AuthToken is the opaque bearer token attached to every sync request.
	// Env: APP_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
