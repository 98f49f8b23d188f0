package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses all configuration flags from args (without the program
// name) and returns the remaining positional arguments.
//
// Flags:
//
//	-d database DSN
//	-driver database driver (postgres, sqlite)
//	-c/-config json file path with configs
//	-password-hash-key master password pepper
//	-hash-key temporary key hash key
//	-migration-timeout migration timeout (e.g., "5m")
//	-migration-batch-size secrets per batch
//	-temp-pass-ttl temporary pass lifetime (e.g., "15m")
//	-kdf-time argon2id passes
//	-kdf-memory argon2id memory in KiB
//	-kdf-threads argon2id lanes
//	-tracking-window failed login window (e.g., "15m")
//	-tracking-max-attempts failed logins before lock
//	-prune-interval temporary pass prune interval (e.g., "10m")
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var passwordHashKey string
	var hashKey string
	var migrationTimeout time.Duration
	var migrationBatchSize int
	var tempPassTTL time.Duration
	var kdfTime, kdfMemory, kdfThreads uint
	var trackingWindow time.Duration
	var trackingMaxAttempts int
	var pruneInterval time.Duration

	fs := flag.NewFlagSet("vaultctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&passwordHashKey, "password-hash-key", "", "Master password pepper")
	fs.StringVar(&hashKey, "hash-key", "", "Temporary key hash key")
	fs.DurationVar(&migrationTimeout, "migration-timeout", 0, "Migration timeout (e.g., 5m)")
	fs.IntVar(&migrationBatchSize, "migration-batch-size", 0, "Secrets per migration batch")
	fs.DurationVar(&tempPassTTL, "temp-pass-ttl", 0, "Temporary pass lifetime (e.g., 15m)")
	fs.UintVar(&kdfTime, "kdf-time", 0, "Argon2id passes")
	fs.UintVar(&kdfMemory, "kdf-memory", 0, "Argon2id memory in KiB")
	fs.UintVar(&kdfThreads, "kdf-threads", 0, "Argon2id lanes")
	fs.DurationVar(&trackingWindow, "tracking-window", 0, "Failed login window (e.g., 15m)")
	fs.IntVar(&trackingMaxAttempts, "tracking-max-attempts", 0, "Failed logins before lock")
	fs.DurationVar(&pruneInterval, "prune-interval", 0, "Temporary pass prune interval (e.g., 10m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if kdfThreads > 255 {
		return nil, nil, fmt.Errorf("error parsing flags: kdf-threads must not exceed 255")
	}

	return &StructuredConfig{
		App: App{
			PasswordHashKey: passwordHashKey,
			HashKey:         hashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN:    databaseDSN,
				Driver: databaseDriver,
			},
		},
		Vault: Vault{
			MigrationTimeout:   migrationTimeout,
			MigrationBatchSize: migrationBatchSize,
			TempPassTTL:        tempPassTTL,
			KDF: KDF{
				Time:      uint32(kdfTime),
				MemoryKiB: uint32(kdfMemory),
				Threads:   uint8(kdfThreads),
			},
		},
		Tracking: Tracking{
			Window:      trackingWindow,
			MaxAttempts: trackingMaxAttempts,
		},
		Workers: Workers{
			PruneInterval: pruneInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
