package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// VaultValidationService validates secret access before it reaches the
// wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultRequestValidator(),
	}
}

func (v *VaultValidationService) Initialize(ctx context.Context, adminUserID int64, masterPassword string) error {
	if err := v.validator.Validate(ctx, models.LoginRequest{UserID: adminUserID, MasterPassword: masterPassword}, validators.FieldUserID, validators.FieldMasterPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if masterPassword == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyMasterPassword)
	}

	return v.inner.Initialize(ctx, adminUserID, masterPassword)
}

func (v *VaultValidationService) StoreSecret(ctx context.Context, vaultKey []byte, ref models.SecretRef, plaintext []byte) error {
	access := validators.SecretAccess{VaultKey: vaultKey, Ref: ref, Plaintext: plaintext}
	if err := v.validator.Validate(ctx, access, validators.FieldVaultKey, validators.FieldKind, validators.FieldOwnerID, validators.FieldPlaintext); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.StoreSecret(ctx, vaultKey, ref, plaintext)
}

func (v *VaultValidationService) RevealSecret(ctx context.Context, vaultKey []byte, ref models.SecretRef) ([]byte, error) {
	if err := v.validator.Validate(ctx, validators.SecretAccess{VaultKey: vaultKey, Ref: ref}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RevealSecret(ctx, vaultKey, ref)
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

// LoginValidationService rejects malformed login requests before the state
// machine runs, so they are never counted as failed attempts.
type LoginValidationService struct {
	inner     LoginService
	validator validators.Validator
}

func NewLoginValidationService() LoginServiceWrapper {
	return &LoginValidationService{
		validator: validators.NewVaultRequestValidator(),
	}
}

func (v *LoginValidationService) Resolve(ctx context.Context, request models.LoginRequest) (models.LoginUnlockOutcome, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.LoginUnlockOutcome{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Resolve(ctx, request)
}

func (v *LoginValidationService) Wrap(inner LoginService) LoginService {
	v.inner = inner
	return v
}

// MigrationValidationService bounds migration passwords before any key
// derivation runs on them.
type MigrationValidationService struct {
	inner     MigrationService
	validator validators.Validator
}

func NewMigrationValidationService() MigrationServiceWrapper {
	return &MigrationValidationService{
		validator: validators.NewVaultRequestValidator(),
	}
}

func (v *MigrationValidationService) Migrate(ctx context.Context, request models.MigrationRequest) (models.MigrationResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.MigrationResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Migrate(ctx, request)
}

func (v *MigrationValidationService) Wrap(inner MigrationService) MigrationService {
	v.inner = inner
	return v
}
