package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/mock"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type migrationMocks struct {
	transactor *mock.MockTransactor
	records    *mock.MockMasterPasswordStore
	keys       *mock.MockKeyMaterialRepository
	secrets    *mock.MockSecretRepository
	hasher     *mock.MockPasswordHasher
	wrapper    *mock.MockKeyWrapper
	codec      *mock.MockSecretCodec
}

func newTestMigrationSvc(t *testing.T, ctrl *gomock.Controller) (*migrationService, migrationMocks) {
	t.Helper()
	m := migrationMocks{
		transactor: mock.NewMockTransactor(ctrl),
		records:    mock.NewMockMasterPasswordStore(ctrl),
		keys:       mock.NewMockKeyMaterialRepository(ctrl),
		secrets:    mock.NewMockSecretRepository(ctrl),
		hasher:     mock.NewMockPasswordHasher(ctrl),
		wrapper:    mock.NewMockKeyWrapper(ctrl),
		codec:      mock.NewMockSecretCodec(ctrl),
	}

	svc := NewMigrationService(MigrationDeps{
		Transactor:  m.transactor,
		Records:     m.records,
		Keys:        m.keys,
		Secrets:     m.secrets,
		Hasher:      m.hasher,
		Wrapper:     m.wrapper,
		Codec:       m.codec,
		Gate:        NewVaultGate(),
		IDs:         fixedID("run-1"),
		UpgradePath: models.DefaultUpgradePath(),
	}, config.Vault{MigrationTimeout: time.Minute, MigrationBatchSize: 10}, logger.Nop()).(*migrationService)

	return svc, m
}

// passThroughTx runs fn with the context it was given.
func passThroughTx(m migrationMocks) {
	m.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestMigrationService_UpgradePathIsCopied(t *testing.T) {
	path := []models.FormatVersion{models.FormatCurrent, models.FormatLegacy72}
	svc := NewMigrationService(MigrationDeps{UpgradePath: path}, config.Vault{}, logger.Nop()).(*migrationService)

	path[1] = models.FormatLegacy30
	assert.Equal(t, []models.FormatVersion{models.FormatCurrent, models.FormatLegacy72}, svc.matcher.upgradePath)
	assert.Equal(t, defaultMigrationBatchSize, svc.batchSize)
}

func TestMigrationService_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestMigrationSvc(t, ctrl)
	ctx := context.Background()

	m.records.EXPECT().Load(ctx).Return(currentRecord, nil)
	m.hasher.EXPECT().Verify("nope", currentRecord.Digest, gomock.Any()).Return(false, nil).Times(4)

	result, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "nope"})
	require.ErrorIs(t, err, ErrWrongMasterPassword)
	assert.Equal(t, "run-1", result.RunID)
	assert.False(t, result.Migrated)
}

func TestMigrationService_MalformedDigestSkipsFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestMigrationSvc(t, ctrl)
	ctx := context.Background()
	record := models.MasterPasswordRecord{Digest: "d", Format: models.FormatUnknown}

	m.records.EXPECT().Load(ctx).Return(record, nil)
	gomock.InOrder(
		m.hasher.EXPECT().Verify("pw", "d", models.FormatCurrent).Return(false, crypto.ErrMalformedDigest),
		m.hasher.EXPECT().Verify("pw", "d", models.FormatLegacySha256x128).Return(false, crypto.ErrMalformedDigest),
		m.hasher.EXPECT().Verify("pw", "d", models.FormatLegacy72).Return(false, nil),
		m.hasher.EXPECT().Verify("pw", "d", models.FormatLegacy30).Return(false, nil),
	)

	_, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "pw"})
	assert.ErrorIs(t, err, ErrWrongMasterPassword)
}

func TestMigrationService_CurrentVaultIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestMigrationSvc(t, ctrl)
	ctx := context.Background()

	m.records.EXPECT().Load(ctx).Return(currentRecord, nil)
	m.hasher.EXPECT().Verify("pw", currentRecord.Digest, models.FormatCurrent).Return(true, nil)

	result, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "pw", NewMasterPassword: "pw"})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, models.FormatCurrent, result.From)
}

func TestMigrationValidationService(t *testing.T) {
	ctx := context.Background()
	oversized := strings.Repeat("p", validators.MaxMasterPasswordLen+1)

	tests := []struct {
		name    string
		request models.MigrationRequest
		wantErr error
	}{
		{
			name:    "oversized new password",
			request: models.MigrationRequest{OldMasterPassword: "pw", NewMasterPassword: oversized},
			wantErr: validators.ErrMasterPasswordTooLong,
		},
		{
			name:    "oversized old password",
			request: models.MigrationRequest{OldMasterPassword: oversized},
			wantErr: validators.ErrMasterPasswordTooLong,
		},
		{
			name:    "missing old password",
			request: models.MigrationRequest{NewMasterPassword: "next"},
			wantErr: validators.ErrEmptyOldPassword,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := mock.NewMockMigrationService(gomock.NewController(t))

			_, err := NewMigrationValidationService().Wrap(inner).Migrate(ctx, tt.request)
			require.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("valid request reaches the engine", func(t *testing.T) {
		inner := mock.NewMockMigrationService(gomock.NewController(t))
		request := models.MigrationRequest{OldMasterPassword: "pw", NewMasterPassword: "next"}
		inner.EXPECT().Migrate(ctx, request).Return(models.MigrationResult{RunID: "run"}, nil)

		result, err := NewMigrationValidationService().Wrap(inner).Migrate(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, "run", result.RunID)
	})
}

func TestMigrationService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no old password", func(t *testing.T) {
		svc, _ := newTestMigrationSvc(t, gomock.NewController(t))
		_, err := svc.Migrate(ctx, models.MigrationRequest{NewMasterPassword: "x"})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("not initialized", func(t *testing.T) {
		svc, m := newTestMigrationSvc(t, gomock.NewController(t))
		m.records.EXPECT().Load(ctx).Return(models.MasterPasswordRecord{}, store.ErrConfigNotFound)

		_, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "pw"})
		assert.ErrorIs(t, err, ErrVaultNotInitialized)
	})

	t.Run("busy store", func(t *testing.T) {
		svc, m := newTestMigrationSvc(t, gomock.NewController(t))
		m.records.EXPECT().Load(ctx).Return(models.MasterPasswordRecord{}, store.ErrStoreBusy)

		_, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "pw"})
		assert.ErrorIs(t, err, ErrVaultBusy)
	})
}

func TestMigrationService_ConcurrentDigestChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestMigrationSvc(t, ctrl)
	ctx := context.Background()
	legacy := models.MasterPasswordRecord{Digest: "legacy", Format: models.FormatLegacy72, Revision: 1}

	m.hasher.EXPECT().Verify("pw", "legacy", models.FormatLegacy72).Return(true, nil)
	passThroughTx(m)
	gomock.InOrder(
		m.records.EXPECT().Load(gomock.Any()).Return(legacy, nil),
		m.records.EXPECT().Lock(gomock.Any()).Return(nil),
		m.records.EXPECT().Load(gomock.Any()).Return(currentRecord, nil),
	)

	_, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "pw"})
	require.ErrorIs(t, err, ErrMigrationFailed)
	assert.ErrorIs(t, err, ErrVaultBusy)
}

func TestMigrationService_FullRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestMigrationSvc(t, ctrl)
	ctx := context.Background()
	legacy := models.MasterPasswordRecord{Digest: "legacy", Format: models.FormatLegacy72, Revision: 4}
	vaultKey := []byte("0123456789abcdef0123456789abcdef")

	m.hasher.EXPECT().Verify("old", "legacy", models.FormatLegacy72).Return(true, nil)
	passThroughTx(m)
	m.records.EXPECT().Load(gomock.Any()).Return(legacy, nil).Times(2)
	m.records.EXPECT().Lock(gomock.Any()).Return(nil)
	m.hasher.EXPECT().Hash("new").Return("$vk1$new", nil)
	m.records.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r models.MasterPasswordRecord) error {
		assert.Equal(t, "$vk1$new", r.Digest)
		assert.Equal(t, models.FormatCurrent, r.Format)
		assert.Equal(t, int64(5), r.Revision)
		return nil
	})

	m.keys.EXPECT().ListAll(gomock.Any()).Return([]models.UserKeyMaterial{
		{UserID: 1, Key: models.WrappedKey{Ciphertext: []byte("1")}},
		{UserID: 2, Key: models.WrappedKey{Ciphertext: []byte("2")}},
	}, nil)
	m.wrapper.EXPECT().Unwrap(models.WrappedKey{Ciphertext: []byte("1")}, "old").Return(vaultKey, nil)
	m.wrapper.EXPECT().Unwrap(models.WrappedKey{Ciphertext: []byte("2")}, "old").Return(nil, crypto.ErrWrongPassword)
	m.wrapper.EXPECT().Wrap(vaultKey, "new").Return(models.WrappedKey{Format: models.FormatCurrent}, nil)
	m.keys.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u models.UserKeyMaterial) error {
		assert.Equal(t, int64(1), u.UserID)
		assert.Equal(t, int64(5), u.KeyRevision)
		return nil
	})

	account := models.EncryptedSecret{Ref: accountRef(3), Format: models.FormatLegacy72}
	m.secrets.EXPECT().ListBatch(gomock.Any(), models.SecretAccountPassword, int64(0), 10).Return([]models.EncryptedSecret{account}, nil)
	m.secrets.EXPECT().ListBatch(gomock.Any(), models.SecretCustomField, int64(0), 10).Return(nil, nil)
	m.codec.EXPECT().Decrypt(account, vaultKey).Return([]byte("pt"), nil)
	m.codec.EXPECT().Encrypt(account.Ref, []byte("pt"), vaultKey).Return(models.EncryptedSecret{Ref: account.Ref, Format: models.FormatCurrent}, nil)
	m.secrets.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "old", NewMasterPassword: "new"})
	require.NoError(t, err)
	assert.True(t, result.Migrated)
	assert.Equal(t, models.FormatLegacy72, result.From)
	assert.Equal(t, 1, result.UsersMigrated)
	assert.Equal(t, 1, result.UsersSkipped)
	assert.Equal(t, 1, result.SecretsAttempted)
	assert.Equal(t, 1, result.SecretsMigrated)
}

func TestMigrationService_VaultKeyMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestMigrationSvc(t, ctrl)
	ctx := context.Background()
	legacy := models.MasterPasswordRecord{Digest: "legacy", Format: models.FormatLegacy72, Revision: 1}

	m.hasher.EXPECT().Verify("pw", "legacy", models.FormatLegacy72).Return(true, nil)
	passThroughTx(m)
	m.records.EXPECT().Load(gomock.Any()).Return(legacy, nil).Times(2)
	m.records.EXPECT().Lock(gomock.Any()).Return(nil)
	m.hasher.EXPECT().Hash("pw").Return("$vk1$", nil)
	m.records.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	m.keys.EXPECT().ListAll(gomock.Any()).Return([]models.UserKeyMaterial{{UserID: 1}, {UserID: 2, KeyRevision: 1}}, nil)
	m.wrapper.EXPECT().Unwrap(gomock.Any(), "pw").Return([]byte("key-a"), nil)
	m.wrapper.EXPECT().Wrap([]byte("key-a"), "pw").Return(models.WrappedKey{}, nil)
	m.keys.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	m.wrapper.EXPECT().Unwrap(gomock.Any(), "pw").Return([]byte("key-b"), nil)

	_, err := svc.Migrate(ctx, models.MigrationRequest{OldMasterPassword: "pw"})
	require.ErrorIs(t, err, ErrMigrationFailed)
	assert.ErrorIs(t, err, errVaultKeyMismatch)
}

func TestMigrationError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&MigrationError{RunID: "r", SecretsAttempted: 3, SecretsMigrated: 2, Err: cause})

	assert.ErrorIs(t, err, ErrMigrationFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "migration r failed after 2/3 secrets: boom", err.Error())
}
