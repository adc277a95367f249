package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; source-level validation happens on the
// derived [ClientConfig] view instead.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.ProbeInterval <= 0 ||
		cfg.Sync.PushLimit <= 0 || cfg.Sync.PullLimit <= 0 ||
		cfg.Sync.PullMaxPages <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.App.UserID <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
