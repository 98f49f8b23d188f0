package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing password hash key or hash key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidVaultConfigs indicates invalid master-key lifecycle settings
	// (for example, zero migration timeout or too little KDF memory).
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidTrackingConfigs indicates invalid login throttling settings.
	ErrInvalidTrackingConfigs = errors.New("invalid tracking configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero prune interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
