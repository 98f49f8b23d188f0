package config

import (
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Vault: Vault{
			MigrationTimeout:   5 * time.Minute,
			MigrationBatchSize: 500,
			TempPassTTL:        15 * time.Minute,
			KDF: KDF{
				Time:      3,
				MemoryKiB: 64 * 1024,
				Threads:   4,
			},
		},
		Tracking: Tracking{
			Window:      15 * time.Minute,
			MaxAttempts: 5,
		},
		Workers: Workers{
			PruneInterval: 10 * time.Minute,
		},
	}
}

// inferDriver picks a backend from the shape of dsn. Anything that does not
// look like a PostgreSQL URL or keyword DSN is treated as a SQLite path.
func inferDriver(dsn string) string {
	switch {
	case dsn == "":
		return ""
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres
	case strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname="):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}
