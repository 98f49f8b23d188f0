package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/models"
)

const (
	testPassword = "correct horse"
	testPepper   = "pepper"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func testConfig(dsn string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{PasswordHashKey: testPepper, HashKey: "temp-pass-key"},
		Storage: config.Storage{DB: config.DB{
			DSN:    dsn,
			Driver: config.DriverSQLite,
		}},
		Vault: config.Vault{
			MigrationTimeout:   time.Minute,
			MigrationBatchSize: 2,
			TempPassTTL:        15 * time.Minute,
			KDF:                config.KDF{Time: 1, MemoryKiB: 64, Threads: 1},
		},
		Tracking: config.Tracking{Window: 15 * time.Minute, MaxAttempts: 5},
		Workers:  config.Workers{PruneInterval: time.Minute},
	}
}

// testVault is a migrated SQLite database with the services built over it.
type testVault struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *Services
	hasher   crypto.PasswordHasher
	wrapper  crypto.KeyWrapper
	codec    crypto.SecretCodec
	vaultKey []byte
}

func newTestVault(t *testing.T) *testVault {
	t.Helper()
	ctx := testContext()

	cfg := testConfig(filepath.Join(t.TempDir(), "vault.db"))
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	services, err := NewServices(storages, cfg, logger.Nop())
	require.NoError(t, err)

	params := crypto.Argon2Params{Time: cfg.Vault.KDF.Time, MemoryKiB: cfg.Vault.KDF.MemoryKiB, Threads: cfg.Vault.KDF.Threads}
	hasher, err := crypto.NewPasswordHasher(testPepper, params)
	require.NoError(t, err)
	wrapper, err := crypto.NewKeyWrapper(params)
	require.NoError(t, err)

	vaultKey := make([]byte, crypto.VaultKeyLen)
	_, err = rand.Read(vaultKey)
	require.NoError(t, err)

	return &testVault{
		cfg:      cfg,
		storages: storages,
		services: services,
		hasher:   hasher,
		wrapper:  wrapper,
		codec:    crypto.NewSecretCodec(),
		vaultKey: vaultKey,
	}
}

func accountRef(id int64) models.SecretRef {
	return models.SecretRef{Kind: models.SecretAccountPassword, OwnerID: id}
}

func fieldRef(id int64) models.SecretRef {
	return models.SecretRef{Kind: models.SecretCustomField, OwnerID: id}
}

func plaintextFor(ref models.SecretRef) []byte {
	return []byte(fmt.Sprintf("secret-%s-%d", ref.Kind, ref.OwnerID))
}

// seedLegacy writes a vault created by an older release: a legacy digest,
// legacy key material for users and legacy secrets.
func (v *testVault) seedLegacy(t *testing.T, format models.FormatVersion, users []int64, accounts, fields int) {
	t.Helper()
	ctx := testContext()

	digest, err := v.hasher.Encode(testPassword, format)
	require.NoError(t, err)
	require.NoError(t, v.storages.MasterPasswordStore.Create(ctx, models.MasterPasswordRecord{
		Digest:    digest,
		Format:    format,
		Revision:  1,
		UpdatedAt: time.Unix(1_600_000_000, 0),
	}))

	for _, id := range users {
		key, err := crypto.SealLegacyKey(v.vaultKey, testPassword, format)
		require.NoError(t, err)
		require.NoError(t, v.storages.KeyMaterialRepository.Upsert(ctx, models.UserKeyMaterial{
			UserID:      id,
			Key:         key,
			KeyRevision: 1,
			UpdatedAt:   time.Unix(1_600_000_000, 0),
		}))
	}

	seed := func(ref models.SecretRef) {
		secret, err := crypto.SealLegacySecret(ref, plaintextFor(ref), v.vaultKey, format)
		require.NoError(t, err)
		require.NoError(t, v.storages.SecretRepository.Save(ctx, secret))
	}
	for i := 1; i <= accounts; i++ {
		seed(accountRef(int64(i)))
	}
	for i := 1; i <= fields; i++ {
		seed(fieldRef(int64(i)))
	}
}

// allSecrets returns every stored secret of both kinds.
func (v *testVault) allSecrets(t *testing.T) []models.EncryptedSecret {
	t.Helper()
	ctx := testContext()

	var result []models.EncryptedSecret
	for _, kind := range models.SecretKinds() {
		batch, err := v.storages.SecretRepository.ListBatch(ctx, kind, 0, 1000)
		require.NoError(t, err)
		result = append(result, batch...)
	}
	return result
}

// requireSecretsReadable checks that every secret decrypts to its original
// plaintext under the vault key and is stored in format.
func (v *testVault) requireSecretsReadable(t *testing.T, format models.FormatVersion) {
	t.Helper()

	for _, s := range v.allSecrets(t) {
		require.Equal(t, format, s.Format, "secret %s/%d", s.Ref.Kind, s.Ref.OwnerID)
		plaintext, err := v.codec.Decrypt(s, v.vaultKey)
		require.NoError(t, err)
		require.Equal(t, plaintextFor(s.Ref), plaintext)
	}
}
