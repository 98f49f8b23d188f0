package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
)

func TestLogin_Legacy72VaultIsUpgradedOnLogin(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	v.seedLegacy(t, models.FormatLegacy72, []int64{1, 2}, 5, 2)

	outcome, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 1, MasterPassword: testPassword})
	require.NoError(t, err)
	require.Equal(t, models.UnlockOk, outcome.Status)
	assert.Equal(t, v.vaultKey, outcome.VaultKey)

	record, err := v.storages.MasterPasswordStore.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FormatCurrent, record.Format)
	assert.Equal(t, int64(1), record.Revision, "format upgrade keeps the revision")

	materials, err := v.storages.KeyMaterialRepository.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 2)
	for _, m := range materials {
		assert.Equal(t, models.FormatCurrent, m.Key.Format)
		key, err := v.wrapper.Unwrap(m.Key, testPassword)
		require.NoError(t, err)
		assert.Equal(t, v.vaultKey, key)
	}

	v.requireSecretsReadable(t, models.FormatCurrent)

	outcome, err = v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 2, MasterPassword: testPassword})
	require.NoError(t, err)
	assert.Equal(t, models.UnlockOk, outcome.Status)
}

func TestLogin_FirstUnlockForUserWithoutMaterial(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	admin, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 1, MasterPassword: testPassword})
	require.NoError(t, err)
	require.Equal(t, models.UnlockOk, admin.Status)

	outcome, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, models.UnlockNotSet, outcome.Status)

	outcome, err = v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 7, MasterPassword: testPassword})
	require.NoError(t, err)
	require.Equal(t, models.UnlockOk, outcome.Status)
	assert.Equal(t, admin.VaultKey, outcome.VaultKey)

	m, err := v.storages.KeyMaterialRepository.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, models.FormatCurrent, m.Key.Format)
}

func TestLogin_WrongPasswordIsTrackedAndLocksOut(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	request := models.LoginRequest{UserID: 1, Source: "10.0.0.1", MasterPassword: "wrong"}
	for i := 0; i < v.cfg.Tracking.MaxAttempts; i++ {
		outcome, err := v.services.LoginService.Resolve(ctx, request)
		require.NoError(t, err)
		require.Equal(t, models.UnlockInvalid, outcome.Status, "attempt %d", i)
	}

	n, err := v.storages.TrackingRepository.CountSince(ctx, models.TrackSubject{UserID: 1}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, v.cfg.Tracking.MaxAttempts, n)

	outcome, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 1, MasterPassword: testPassword})
	require.NoError(t, err)
	assert.Equal(t, models.UnlockLocked, outcome.Status, "the correct password is not tried while locked")
}

func TestMigrate_IsIdempotent(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	v.seedLegacy(t, models.FormatLegacy30, []int64{1}, 3, 1)

	request := models.MigrationRequest{OldMasterPassword: testPassword, NewMasterPassword: testPassword}

	first, err := v.services.MigrationService.Migrate(ctx, request)
	require.NoError(t, err)
	assert.True(t, first.Migrated)
	assert.Equal(t, models.FormatLegacy30, first.From)
	assert.Equal(t, 1, first.UsersMigrated)
	assert.Equal(t, 4, first.SecretsMigrated)
	assert.NotEmpty(t, first.RunID)

	second, err := v.services.MigrationService.Migrate(ctx, request)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.False(t, second.Migrated)
	assert.Equal(t, models.FormatCurrent, second.From)

	v.requireSecretsReadable(t, models.FormatCurrent)
}

// failingSecrets fails the n-th Save.
type failingSecrets struct {
	store.SecretRepository
	failAt int
	saves  int
}

func (f *failingSecrets) Save(ctx context.Context, secret models.EncryptedSecret) error {
	f.saves++
	if f.saves == f.failAt {
		return errors.New("disk full")
	}
	return f.SecretRepository.Save(ctx, secret)
}

func TestMigrate_RollsBackOnFailureAtSecretN(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	v.seedLegacy(t, models.FormatLegacy72, []int64{1, 2}, 5, 2)

	before, err := v.storages.MasterPasswordStore.Load(ctx)
	require.NoError(t, err)
	materialsBefore, err := v.storages.KeyMaterialRepository.ListAll(ctx)
	require.NoError(t, err)
	secretsBefore := v.allSecrets(t)
	require.Len(t, secretsBefore, 7)

	migrator := NewMigrationService(MigrationDeps{
		Transactor:  v.storages.Transactor,
		Records:     v.storages.MasterPasswordStore,
		Keys:        v.storages.KeyMaterialRepository,
		Secrets:     &failingSecrets{SecretRepository: v.storages.SecretRepository, failAt: 4},
		Hasher:      v.hasher,
		Wrapper:     v.wrapper,
		Codec:       v.codec,
		Gate:        NewVaultGate(),
		IDs:         utils.NewUUIDGenerator(),
		UpgradePath: models.DefaultUpgradePath(),
	}, v.cfg.Vault, logger.Nop())

	_, err = migrator.Migrate(ctx, models.MigrationRequest{OldMasterPassword: testPassword, NewMasterPassword: "new password"})
	require.ErrorIs(t, err, ErrMigrationFailed)

	var migrationErr *MigrationError
	require.ErrorAs(t, err, &migrationErr)
	assert.NotEmpty(t, migrationErr.RunID)
	assert.Equal(t, 4, migrationErr.SecretsAttempted)
	assert.Equal(t, 3, migrationErr.SecretsMigrated)

	after, err := v.storages.MasterPasswordStore.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	materials, err := v.storages.KeyMaterialRepository.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, materialsBefore, materials, "key material must be byte-identical after rollback")
	assert.Equal(t, secretsBefore, v.allSecrets(t), "secrets must be byte-identical after rollback")

	v.requireSecretsReadable(t, models.FormatLegacy72)
}

func TestMigrate_PasswordRotation(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	v.seedLegacy(t, models.FormatLegacy72, []int64{1, 2}, 2, 1)

	// user 3 holds a wrap made under a password that was retired long ago
	ancient, err := v.wrapper.Wrap(v.vaultKey, "ancient")
	require.NoError(t, err)
	require.NoError(t, v.storages.KeyMaterialRepository.Upsert(ctx, models.UserKeyMaterial{
		UserID: 3, Key: ancient, KeyRevision: 0, UpdatedAt: time.Unix(1, 0),
	}))

	const newPassword = "battery staple"
	result, err := v.services.MigrationService.Migrate(ctx, models.MigrationRequest{
		OldMasterPassword: testPassword,
		NewMasterPassword: newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.UsersMigrated)
	assert.Equal(t, 1, result.UsersSkipped)

	record, err := v.storages.MasterPasswordStore.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.Revision)

	resolve := func(req models.LoginRequest) models.LoginUnlockOutcome {
		t.Helper()
		outcome, err := v.services.LoginService.Resolve(ctx, req)
		require.NoError(t, err)
		return outcome
	}

	assert.Equal(t, models.UnlockOk, resolve(models.LoginRequest{UserID: 1, MasterPassword: newPassword}).Status)
	assert.Equal(t, models.UnlockInvalid, resolve(models.LoginRequest{UserID: 1, MasterPassword: testPassword}).Status)

	assert.Equal(t, models.UnlockChanged, resolve(models.LoginRequest{UserID: 3, MasterPassword: "ancient"}).Status)
	assert.Equal(t, models.UnlockCheckOldRequired, resolve(models.LoginRequest{UserID: 3, MasterPassword: newPassword}).Status)

	outcome := resolve(models.LoginRequest{UserID: 3, MasterPassword: newPassword, OldMasterPassword: "ancient"})
	require.Equal(t, models.UnlockOk, outcome.Status)
	assert.Equal(t, v.vaultKey, outcome.VaultKey)

	m, err := v.storages.KeyMaterialRepository.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.KeyRevision)
	assert.Equal(t, models.UnlockOk, resolve(models.LoginRequest{UserID: 3, MasterPassword: newPassword}).Status)
}

func TestMigrate_StaleLegacyWrapRecoversWithOldPassword(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	v.seedLegacy(t, models.FormatLegacy72, []int64{1, 2}, 2, 1)

	// user 3 never unlocked after an earlier rotation: legacy wrap, retired password
	ancient, err := crypto.SealLegacyKey(v.vaultKey, "ancient", models.FormatLegacy72)
	require.NoError(t, err)
	require.NoError(t, v.storages.KeyMaterialRepository.Upsert(ctx, models.UserKeyMaterial{
		UserID: 3, Key: ancient, KeyRevision: 0, UpdatedAt: time.Unix(1, 0),
	}))

	result, err := v.services.MigrationService.Migrate(ctx, models.MigrationRequest{OldMasterPassword: testPassword})
	require.NoError(t, err)
	assert.Equal(t, 2, result.UsersMigrated)
	assert.Equal(t, 1, result.UsersSkipped)

	stale, err := v.storages.KeyMaterialRepository.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, ancient, stale.Key, "skipped material is left untouched")

	resolve := func(req models.LoginRequest) models.LoginUnlockOutcome {
		t.Helper()
		outcome, err := v.services.LoginService.Resolve(ctx, req)
		require.NoError(t, err)
		return outcome
	}

	assert.Equal(t, models.UnlockCheckOldRequired, resolve(models.LoginRequest{UserID: 3, MasterPassword: testPassword}).Status)
	assert.Equal(t, models.UnlockChanged, resolve(models.LoginRequest{UserID: 3, MasterPassword: "ancient"}).Status)

	outcome := resolve(models.LoginRequest{UserID: 3, MasterPassword: testPassword, OldMasterPassword: "ancient"})
	require.Equal(t, models.UnlockOk, outcome.Status)
	assert.Equal(t, v.vaultKey, outcome.VaultKey)

	recovered, err := v.storages.KeyMaterialRepository.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.FormatCurrent, recovered.Key.Format)
	assert.Equal(t, int64(1), recovered.KeyRevision)
	assert.Equal(t, models.UnlockOk, resolve(models.LoginRequest{UserID: 3, MasterPassword: testPassword}).Status)
}

func TestTempPass_SingleUse(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	key, err := v.services.TempPassService.Issue(ctx, testPassword, 0)
	require.NoError(t, err)
	require.NotEmpty(t, key)

	ok, err := v.services.TempPassService.CheckKey(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	outcome, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 9, TemporaryKey: key})
	require.NoError(t, err)
	require.Equal(t, models.UnlockOk, outcome.Status)
	assert.Len(t, outcome.VaultKey, 32)

	ok, err = v.services.TempPassService.CheckKey(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.services.TempPassService.GetUsingKey(ctx, key)
	assert.ErrorIs(t, err, ErrAlreadyConsumed)

	outcome, err = v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 10, TemporaryKey: key})
	require.NoError(t, err)
	assert.Equal(t, models.UnlockInvalid, outcome.Status)

	_, err = v.services.TempPassService.GetUsingKey(ctx, "never-issued")
	assert.ErrorIs(t, err, ErrTempPassNotFound)
}

func TestTempPass_ReplayAfterPruneStillConsumed(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	key, err := v.services.TempPassService.Issue(ctx, testPassword, time.Hour)
	require.NoError(t, err)

	outcome, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 9, TemporaryKey: key})
	require.NoError(t, err)
	require.Equal(t, models.UnlockOk, outcome.Status)

	n, err := v.services.TempPassService.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a consumed pass within its ttl must survive pruning")

	_, err = v.services.TempPassService.GetUsingKey(ctx, key)
	assert.ErrorIs(t, err, ErrAlreadyConsumed)
}

func TestTempPass_Expiry(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	svc := v.services.TempPassService.(*tempPassService)
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	key, err := svc.Issue(ctx, testPassword, time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }

	ok, err := svc.CheckKey(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.GetUsingKey(ctx, key)
	assert.ErrorIs(t, err, ErrExpired)

	n, err := svc.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.GetUsingKey(ctx, key)
	assert.ErrorIs(t, err, ErrTempPassNotFound)
}

func TestTempPass_IssueRequiresMasterPassword(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()

	_, err := v.services.TempPassService.Issue(ctx, testPassword, 0)
	assert.ErrorIs(t, err, ErrVaultNotInitialized)

	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	_, err = v.services.TempPassService.Issue(ctx, "wrong", 0)
	assert.ErrorIs(t, err, ErrWrongMasterPassword)
}

func TestVault_InitializeAndSecrets(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()

	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))
	assert.ErrorIs(t, v.services.VaultService.Initialize(ctx, 2, testPassword), ErrVaultAlreadyInitialized)

	outcome, err := v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 1, MasterPassword: testPassword})
	require.NoError(t, err)
	require.Equal(t, models.UnlockOk, outcome.Status)

	ref := accountRef(42)
	require.NoError(t, v.services.VaultService.StoreSecret(ctx, outcome.VaultKey, ref, []byte("hunter2")))

	stored, err := v.storages.SecretRepository.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, models.FormatCurrent, stored.Format)

	plaintext, err := v.services.VaultService.RevealSecret(ctx, outcome.VaultKey, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), plaintext)

	_, err = v.services.VaultService.RevealSecret(ctx, outcome.VaultKey, accountRef(43))
	assert.ErrorIs(t, err, store.ErrSecretNotFound)

	err = v.services.VaultService.StoreSecret(ctx, []byte("short"), ref, []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestVault_SecretAccessFailsFastDuringMigration(t *testing.T) {
	v := newTestVault(t)
	ctx := testContext()
	require.NoError(t, v.services.VaultService.Initialize(ctx, 1, testPassword))

	release, err := v.services.Gate.Exclusive()
	require.NoError(t, err)
	defer release()

	err = v.services.VaultService.StoreSecret(ctx, v.vaultKey, accountRef(1), []byte("x"))
	assert.ErrorIs(t, err, ErrVaultBusy)

	_, err = v.services.LoginService.Resolve(ctx, models.LoginRequest{UserID: 1, MasterPassword: testPassword})
	assert.ErrorIs(t, err, ErrVaultBusy)

	_, err = v.services.MigrationService.Migrate(ctx, models.MigrationRequest{OldMasterPassword: testPassword})
	assert.ErrorIs(t, err, ErrVaultBusy)
}
