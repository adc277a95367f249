package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or non-positive request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid sync loop settings
	// (for example, zero interval or non-positive batch limits).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidAppConfigs indicates a missing or non-positive user id.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
