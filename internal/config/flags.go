package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address (base URL or host:port)
//	-d local sqlite database path
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "10s", "1m")
//	-sync-interval sync cycle cadence (e.g., "15s")
//	-push-limit max outbox rows per push batch
//	-pull-limit change feed page size
//	-pull-max-pages max feed pages per cycle
//	-probe-interval connectivity probe cadence
//	-user account id the client syncs for
//	-token bearer token for sync requests
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var probeInterval time.Duration
	var pushLimit, pullLimit, pullMaxPages int
	var userID int64
	var authToken string

	flag.StringVar(&serverAddress, "a", "", "Sync server address")
	flag.StringVar(&databaseDSN, "d", "", "Local sqlite database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync cycle interval (e.g., 15s)")
	flag.IntVar(&pushLimit, "push-limit", 0, "Max outbox rows per push batch")
	flag.IntVar(&pullLimit, "pull-limit", 0, "Change feed page size")
	flag.IntVar(&pullMaxPages, "pull-max-pages", 0, "Max feed pages per cycle")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	flag.Int64Var(&userID, "user", 0, "Account id the client syncs for")
	flag.StringVar(&authToken, "token", "", "Bearer token for sync requests")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			ServerAddress:  serverAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Sync: Sync{
			Interval:      syncInterval,
			PushLimit:     pushLimit,
			PullLimit:     pullLimit,
			PullMaxPages:  pullMaxPages,
			ProbeInterval: probeInterval,
		},
		App: App{
			UserID:    userID,
			AuthToken: authToken,
		},
		JSONFilePath: jsonConfigPath,
	}
}
