package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// MigrationService upgrades the hash format and rotates the master password.
type MigrationService interface {
	Migrate(ctx context.Context, request models.MigrationRequest) (models.MigrationResult, error)
}

// LoginService resolves what a login has to do with the presented master
// password. Expected outcomes are reported in the status, never as errors.
type LoginService interface {
	Resolve(ctx context.Context, request models.LoginRequest) (models.LoginUnlockOutcome, error)
}

// TempPassService issues and redeems single-use temporary master passes.
type TempPassService interface {
	Issue(ctx context.Context, masterPassword string, ttl time.Duration) (string, error)
	CheckKey(ctx context.Context, key string) (bool, error)
	GetUsingKey(ctx context.Context, key string) (string, error)
	Prune(ctx context.Context) (int64, error)
}

// VaultService initializes the vault and gives access to secrets under an
// unlocked vault key.
type VaultService interface {
	Initialize(ctx context.Context, adminUserID int64, masterPassword string) error
	StoreSecret(ctx context.Context, vaultKey []byte, ref models.SecretRef, plaintext []byte) error
	RevealSecret(ctx context.Context, vaultKey []byte, ref models.SecretRef) ([]byte, error)
}

// Tracker records failed unlock attempts and reports whether a user or
// source is locked out.
type Tracker interface {
	Add(ctx context.Context, event models.TrackEvent) error
	CheckTracking(ctx context.Context, subject models.TrackSubject) (bool, error)
	Prune(ctx context.Context) (int64, error)
}

// VaultServiceWrapper defines middleware composition for VaultService.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

// LoginServiceWrapper defines middleware composition for LoginService.
type LoginServiceWrapper interface {
	Wrap(LoginService) LoginService
}

// MigrationServiceWrapper defines middleware composition for MigrationService.
type MigrationServiceWrapper interface {
	Wrap(MigrationService) MigrationService
}
