// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or the sentinel of the first
// invalid group otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.PasswordHashKey == "" || cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	v := cfg.Vault
	if v.MigrationTimeout <= 0 || v.MigrationBatchSize <= 0 || v.TempPassTTL <= 0 {
		return ErrInvalidVaultConfigs
	}
	// argon2 requires at least 8 KiB of memory per lane
	if v.KDF.Time == 0 || v.KDF.Threads == 0 || v.KDF.MemoryKiB < 8*uint32(v.KDF.Threads) {
		return ErrInvalidVaultConfigs
	}

	if cfg.Tracking.Window <= 0 || cfg.Tracking.MaxAttempts <= 0 {
		return ErrInvalidTrackingConfigs
	}

	if cfg.Workers.PruneInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
