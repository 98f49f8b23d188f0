package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// Services aggregates the master-key lifecycle services over one set of
// storages and one vault gate.
type Services struct {
	Gate             *VaultGate
	Tracker          Tracker
	TempPassService  TempPassService
	MigrationService MigrationService
	LoginService     LoginService
	VaultService     VaultService
}

// NewServices builds the crypto primitives from cfg and wires every service.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	params := crypto.Argon2Params{
		Time:      cfg.Vault.KDF.Time,
		MemoryKiB: cfg.Vault.KDF.MemoryKiB,
		Threads:   cfg.Vault.KDF.Threads,
	}

	hasher, err := crypto.NewPasswordHasher(cfg.App.PasswordHashKey, params)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}
	wrapper, err := crypto.NewKeyWrapper(params)
	if err != nil {
		return nil, fmt.Errorf("error creating key wrapper: %w", err)
	}
	codec := crypto.NewSecretCodec()
	sealer := crypto.NewTokenSealer()
	ids := utils.NewUUIDGenerator()
	upgradePath := models.DefaultUpgradePath()
	gate := NewVaultGate()

	tracker := NewTracker(storages.TrackingRepository, cfg.Tracking, logger)

	tempPasses := NewTempPassService(TempPassDeps{
		Records:     storages.MasterPasswordStore,
		Passes:      storages.TempPassRepository,
		Hasher:      hasher,
		Sealer:      sealer,
		IDs:         ids,
		UpgradePath: upgradePath,
	}, cfg.App, cfg.Vault, logger)

	migrator := NewMigrationService(MigrationDeps{
		Transactor:  storages.Transactor,
		Records:     storages.MasterPasswordStore,
		Keys:        storages.KeyMaterialRepository,
		Secrets:     storages.SecretRepository,
		Hasher:      hasher,
		Wrapper:     wrapper,
		Codec:       codec,
		Gate:        gate,
		IDs:         ids,
		UpgradePath: upgradePath,
	}, cfg.Vault, logger)

	login := NewLoginService(LoginDeps{
		Records:     storages.MasterPasswordStore,
		Keys:        storages.KeyMaterialRepository,
		Hasher:      hasher,
		Wrapper:     wrapper,
		TempPasses:  tempPasses,
		Tracker:     tracker,
		Migrator:    migrator,
		Gate:        gate,
		UpgradePath: upgradePath,
	}, logger)

	vault := NewVaultService(VaultDeps{
		Transactor: storages.Transactor,
		Records:    storages.MasterPasswordStore,
		Keys:       storages.KeyMaterialRepository,
		Secrets:    storages.SecretRepository,
		Hasher:     hasher,
		Wrapper:    wrapper,
		Codec:      codec,
		Gate:       gate,
	}, logger)

	return &Services{
		Gate:             gate,
		Tracker:          tracker,
		TempPassService:  tempPasses,
		MigrationService: NewMigrationValidationService().Wrap(migrator),
		LoginService:     NewLoginValidationService().Wrap(login),
		VaultService:     NewVaultValidationService().Wrap(vault),
	}, nil
}
