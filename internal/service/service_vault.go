package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// vaultService creates the vault and reads and writes secrets through the
// codec.
type vaultService struct {
	transactor store.Transactor
	records    store.MasterPasswordStore
	keys       store.KeyMaterialRepository
	secrets    store.SecretRepository

	hasher  crypto.PasswordHasher
	wrapper crypto.KeyWrapper
	codec   crypto.SecretCodec

	gate *VaultGate

	logger *logger.Logger
	now    func() time.Time
}

// VaultDeps groups the collaborators of the vault service.
type VaultDeps struct {
	Transactor store.Transactor
	Records    store.MasterPasswordStore
	Keys       store.KeyMaterialRepository
	Secrets    store.SecretRepository
	Hasher     crypto.PasswordHasher
	Wrapper    crypto.KeyWrapper
	Codec      crypto.SecretCodec
	Gate       *VaultGate
}

func NewVaultService(deps VaultDeps, logger *logger.Logger) VaultService {
	return &vaultService{
		transactor: deps.Transactor,
		records:    deps.Records,
		keys:       deps.Keys,
		secrets:    deps.Secrets,
		hasher:     deps.Hasher,
		wrapper:    deps.Wrapper,
		codec:      deps.Codec,
		gate:       deps.Gate,
		logger:     logger,
		now:        time.Now,
	}
}

// Initialize creates the master password record and a fresh vault key
// wrapped for the admin user.
//
// Returns ErrVaultAlreadyInitialized when a record exists.
func (v *vaultService) Initialize(ctx context.Context, adminUserID int64, masterPassword string) error {
	log := logger.FromContext(ctx)

	if adminUserID <= 0 || masterPassword == "" {
		log.Error().Str("func", "vaultService.Initialize").Int64("user_id", adminUserID).Msg("invalid vault initialization data")
		return ErrInvalidDataProvided
	}

	release, err := v.gate.Exclusive()
	if err != nil {
		return err
	}
	defer release()

	digest, err := v.hasher.Hash(masterPassword)
	if err != nil {
		return fmt.Errorf("error hashing master password: %w", err)
	}
	vaultKey, err := v.wrapper.GenerateVaultKey()
	if err != nil {
		return fmt.Errorf("error generating vault key: %w", err)
	}
	wrapped, err := v.wrapper.Wrap(vaultKey, masterPassword)
	clear(vaultKey)
	if err != nil {
		return fmt.Errorf("error wrapping vault key: %w", err)
	}

	now := v.now().UTC()
	record := models.MasterPasswordRecord{
		Digest:    digest,
		Format:    models.FormatCurrent,
		Revision:  1,
		UpdatedAt: now,
	}

	err = v.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := v.records.Create(ctx, record); err != nil {
			return err
		}
		return v.keys.Upsert(ctx, models.UserKeyMaterial{
			UserID:      adminUserID,
			Key:         wrapped,
			KeyRevision: record.Revision,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrConfigExists) {
			return ErrVaultAlreadyInitialized
		}
		log.Err(err).Str("func", "vaultService.Initialize").Msg("failed to initialize vault")
		return storeErr("error initializing vault", err)
	}

	log.Info().Str("func", "vaultService.Initialize").Int64("user_id", adminUserID).Msg("vault initialized")
	return nil
}

// StoreSecret encrypts plaintext in the current format and saves it under
// ref.
func (v *vaultService) StoreSecret(ctx context.Context, vaultKey []byte, ref models.SecretRef, plaintext []byte) error {
	log := logger.FromContext(ctx)

	release, err := v.gate.Shared()
	if err != nil {
		return err
	}
	defer release()

	secret, err := v.codec.Encrypt(ref, plaintext, vaultKey)
	if err != nil {
		return fmt.Errorf("error encrypting secret: %w", err)
	}
	secret.UpdatedAt = v.now().UTC()

	if err := v.secrets.Save(ctx, secret); err != nil {
		log.Err(err).
			Str("func", "vaultService.StoreSecret").
			Str("kind", string(ref.Kind)).
			Int64("owner_id", ref.OwnerID).
			Msg("failed to save secret")
		return storeErr("error saving secret", err)
	}

	return nil
}

// RevealSecret loads and decrypts the secret under ref. Secrets in a legacy
// format are readable until the next migration rewrites them.
func (v *vaultService) RevealSecret(ctx context.Context, vaultKey []byte, ref models.SecretRef) ([]byte, error) {
	log := logger.FromContext(ctx)

	release, err := v.gate.Shared()
	if err != nil {
		return nil, err
	}
	defer release()

	secret, err := v.secrets.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, store.ErrSecretNotFound) {
			return nil, err
		}
		return nil, storeErr("error loading secret", err)
	}

	plaintext, err := v.codec.Decrypt(secret, vaultKey)
	if err != nil {
		log.Err(err).
			Str("func", "vaultService.RevealSecret").
			Str("kind", string(ref.Kind)).
			Int64("owner_id", ref.OwnerID).
			Stringer("format", secret.Format).
			Msg("failed to decrypt secret")
		return nil, err
	}

	return plaintext, nil
}
