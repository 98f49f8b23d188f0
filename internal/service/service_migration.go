package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// migrationService moves the whole vault to the current format and,
// optionally, to a new master password. Everything it writes happens in one
// transaction.
type migrationService struct {
	transactor store.Transactor
	records    store.MasterPasswordStore
	keys       store.KeyMaterialRepository
	secrets    store.SecretRepository

	hasher  crypto.PasswordHasher
	wrapper crypto.KeyWrapper
	codec   crypto.SecretCodec
	matcher passwordMatcher

	gate *VaultGate
	ids  utils.IDGenerator

	timeout   time.Duration
	batchSize int

	logger *logger.Logger
	now    func() time.Time
}

// MigrationDeps groups the collaborators of the migration engine.
type MigrationDeps struct {
	Transactor  store.Transactor
	Records     store.MasterPasswordStore
	Keys        store.KeyMaterialRepository
	Secrets     store.SecretRepository
	Hasher      crypto.PasswordHasher
	Wrapper     crypto.KeyWrapper
	Codec       crypto.SecretCodec
	Gate        *VaultGate
	IDs         utils.IDGenerator
	UpgradePath []models.FormatVersion
}

// NewMigrationService constructs the migration engine. The upgrade path is
// copied, later changes to the caller's slice have no effect.
func NewMigrationService(deps MigrationDeps, cfg config.Vault, logger *logger.Logger) MigrationService {
	batchSize := cfg.MigrationBatchSize
	if batchSize <= 0 {
		batchSize = defaultMigrationBatchSize
	}

	return &migrationService{
		transactor: deps.Transactor,
		records:    deps.Records,
		keys:       deps.Keys,
		secrets:    deps.Secrets,
		hasher:     deps.Hasher,
		wrapper:    deps.Wrapper,
		codec:      deps.Codec,
		matcher:    newPasswordMatcher(deps.Hasher, deps.UpgradePath),
		gate:       deps.Gate,
		ids:        deps.IDs,
		timeout:    cfg.MigrationTimeout,
		batchSize:  batchSize,
		logger:     logger,
		now:        time.Now,
	}
}

const defaultMigrationBatchSize = 500

// migrationRun is the mutable state of one Migrate call.
type migrationRun struct {
	result   models.MigrationResult
	vaultKey []byte
	now      time.Time
}

// Migrate verifies the old password, then rewrites the record, every user's
// key material and every secret in the current format. A vault already in the
// current format with no new password is left untouched.
//
// Returns:
//   - ErrInvalidDataProvided when no old password is given.
//   - ErrVaultBusy when another migration or a login holds the vault.
//   - ErrVaultNotInitialized when there is no master password record.
//   - ErrWrongMasterPassword when the old password matches no format.
//   - *MigrationError (matching ErrMigrationFailed) when the transaction
//     failed and was rolled back.
func (s *migrationService) Migrate(ctx context.Context, request models.MigrationRequest) (models.MigrationResult, error) {
	run := &migrationRun{
		result: models.MigrationResult{RunID: s.ids.Generate()},
		now:    s.now().UTC(),
	}
	log := logger.FromContext(ctx).With().Str("run_id", run.result.RunID).Logger()
	started := time.Now()

	if request.OldMasterPassword == "" {
		log.Error().Str("func", "migrationService.Migrate").Msg("no old master password provided")
		return run.result, ErrInvalidDataProvided
	}

	release, err := s.gate.Exclusive()
	if err != nil {
		log.Warn().Str("func", "migrationService.Migrate").Msg("vault is busy")
		return run.result, err
	}
	defer release()

	record, err := s.records.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrConfigNotFound) {
			return run.result, ErrVaultNotInitialized
		}
		log.Err(err).Str("func", "migrationService.Migrate").Msg("failed to load master password record")
		return run.result, storeErr("error loading master password record", err)
	}

	from, ok, err := s.matcher.match(record, request.OldMasterPassword)
	if err != nil {
		log.Err(err).Str("func", "migrationService.Migrate").Msg("failed to verify master password")
		return run.result, fmt.Errorf("error verifying master password: %w", err)
	}
	if !ok {
		log.Warn().Str("func", "migrationService.Migrate").Msg("old master password does not match")
		return run.result, ErrWrongMasterPassword
	}
	run.result.From = from

	// re-entering the old password as the new one is not a change
	changed := request.NewMasterPassword != "" && request.NewMasterPassword != request.OldMasterPassword
	if from == models.FormatCurrent && record.Format == models.FormatCurrent && !changed {
		run.result.Skipped = true
		run.result.Duration = time.Since(started)
		log.Info().Str("func", "migrationService.Migrate").Msg("vault already current, nothing to migrate")
		return run.result, nil
	}

	target := request.OldMasterPassword
	if changed {
		target = request.NewMasterPassword
	}

	txCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.timeout > 0 {
		txCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()

	err = s.transactor.WithinTx(txCtx, func(ctx context.Context) error {
		return s.migrate(ctx, run, record, request.OldMasterPassword, target, changed)
	})
	run.result.Duration = time.Since(started)
	if err != nil {
		log.Err(err).
			Str("func", "migrationService.Migrate").
			Int("secrets_attempted", run.result.SecretsAttempted).
			Int("secrets_migrated", run.result.SecretsMigrated).
			Msg("migration rolled back")

		if errors.Is(err, store.ErrStoreBusy) {
			err = fmt.Errorf("%w: %w", ErrVaultBusy, err)
		}
		return run.result, &MigrationError{
			RunID:            run.result.RunID,
			SecretsAttempted: run.result.SecretsAttempted,
			SecretsMigrated:  run.result.SecretsMigrated,
			Err:              err,
		}
	}

	run.result.Migrated = true
	log.Info().
		Str("func", "migrationService.Migrate").
		Stringer("from", from).
		Bool("password_changed", changed).
		Int("users_migrated", run.result.UsersMigrated).
		Int("users_skipped", run.result.UsersSkipped).
		Int("secrets_migrated", run.result.SecretsMigrated).
		Dur("duration", run.result.Duration).
		Msg("migration committed")

	return run.result, nil
}

func (s *migrationService) migrate(ctx context.Context, run *migrationRun, record models.MasterPasswordRecord, oldPassword, target string, changed bool) error {
	if err := s.records.Lock(ctx); err != nil {
		return fmt.Errorf("error locking vault: %w", err)
	}

	current, err := s.records.Load(ctx)
	if err != nil {
		return fmt.Errorf("error re-reading master password record: %w", err)
	}
	if current.Digest != record.Digest {
		return ErrVaultBusy
	}

	digest, err := s.hasher.Hash(target)
	if err != nil {
		return fmt.Errorf("error hashing master password: %w", err)
	}

	next := models.MasterPasswordRecord{
		Digest:    digest,
		Format:    models.FormatCurrent,
		Revision:  current.Revision,
		UpdatedAt: run.now,
	}
	if changed {
		next.Revision++
	}
	if err := s.records.Save(ctx, next); err != nil {
		return fmt.Errorf("error saving master password record: %w", err)
	}

	if err := s.migrateKeyMaterial(ctx, run, oldPassword, target, next.Revision); err != nil {
		return err
	}

	for _, kind := range models.SecretKinds() {
		if err := s.migrateSecrets(ctx, run, kind); err != nil {
			return err
		}
	}

	return nil
}

// migrateKeyMaterial re-wraps every user's vault key. Material that does not
// open under the old password is stale and stays as it is.
func (s *migrationService) migrateKeyMaterial(ctx context.Context, run *migrationRun, oldPassword, target string, revision int64) error {
	log := logger.FromContext(ctx)

	materials, err := s.keys.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("error listing key material: %w", err)
	}

	for _, m := range materials {
		vaultKey, err := s.wrapper.Unwrap(m.Key, oldPassword)
		if errors.Is(err, crypto.ErrWrongPassword) {
			run.result.UsersSkipped++
			log.Warn().
				Str("func", "migrationService.migrateKeyMaterial").
				Int64("user_id", m.UserID).
				Int64("key_revision", m.KeyRevision).
				Msg("stale key material left untouched")
			continue
		}
		if err != nil {
			return fmt.Errorf("error unwrapping key material of user %d: %w", m.UserID, err)
		}

		if run.vaultKey == nil {
			run.vaultKey = vaultKey
		} else if !bytes.Equal(run.vaultKey, vaultKey) {
			return fmt.Errorf("user %d: %w", m.UserID, errVaultKeyMismatch)
		}

		wrapped, err := s.wrapper.Wrap(vaultKey, target)
		if err != nil {
			return fmt.Errorf("error wrapping key material of user %d: %w", m.UserID, err)
		}
		if err := s.keys.Upsert(ctx, models.UserKeyMaterial{
			UserID:      m.UserID,
			Key:         wrapped,
			KeyRevision: revision,
			UpdatedAt:   run.now,
		}); err != nil {
			return fmt.Errorf("error saving key material of user %d: %w", m.UserID, err)
		}
		run.result.UsersMigrated++
	}

	return nil
}

// migrateSecrets re-encrypts secrets of one kind in owner id order, one batch
// at a time.
func (s *migrationService) migrateSecrets(ctx context.Context, run *migrationRun, kind models.SecretKind) error {
	var after int64
	for {
		batch, err := s.secrets.ListBatch(ctx, kind, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("error listing %s secrets: %w", kind, err)
		}
		if len(batch) > 0 && run.vaultKey == nil {
			return errVaultKeyUnavailable
		}

		for _, secret := range batch {
			run.result.SecretsAttempted++

			plaintext, err := s.codec.Decrypt(secret, run.vaultKey)
			if err != nil {
				return fmt.Errorf("error decrypting %s secret %d: %w", kind, secret.Ref.OwnerID, err)
			}
			encrypted, err := s.codec.Encrypt(secret.Ref, plaintext, run.vaultKey)
			clear(plaintext)
			if err != nil {
				return fmt.Errorf("error encrypting %s secret %d: %w", kind, secret.Ref.OwnerID, err)
			}
			encrypted.UpdatedAt = run.now

			if err := s.secrets.Save(ctx, encrypted); err != nil {
				return fmt.Errorf("error saving %s secret %d: %w", kind, secret.Ref.OwnerID, err)
			}
			run.result.SecretsMigrated++
			after = secret.Ref.OwnerID
		}

		if len(batch) < s.batchSize {
			return nil
		}
	}
}
