package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

// Storages aggregates every repository over one database connection.
type Storages struct {
	DB                    *DB
	Transactor            Transactor
	ConfigRepository      ConfigRepository
	MasterPasswordStore   MasterPasswordStore
	KeyMaterialRepository KeyMaterialRepository
	SecretRepository      SecretRepository
	TempPassRepository    TempPassRepository
	TrackingRepository    TrackingRepository
}

// NewStorages connects to the configured backend, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return NewStoragesFromDB(db), nil
}

// NewStoragesFromDB builds the repositories over an already migrated db.
func NewStoragesFromDB(db *DB) *Storages {
	configRepo := NewConfigRepository(db)

	return &Storages{
		DB:                    db,
		Transactor:            db,
		ConfigRepository:      configRepo,
		MasterPasswordStore:   NewMasterPasswordStore(db, configRepo),
		KeyMaterialRepository: NewKeyMaterialRepository(db),
		SecretRepository:      NewSecretRepository(db),
		TempPassRepository:    NewTempPassRepository(db),
		TrackingRepository:    NewTrackingRepository(db),
	}
}

func (s *Storages) Close() error {
	return s.DB.Close()
}
