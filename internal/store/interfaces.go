package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Transactor runs a function inside a transaction carried by the context.
// Nested calls join the outer transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConfigRepository is the key-value config table.
type ConfigRepository interface {
	Get(ctx context.Context, parameter string) (string, error)
	// Set inserts or replaces the value.
	Set(ctx context.Context, parameter, value string) error
	// Create inserts the value and fails with [ErrConfigExists] when the
	// parameter is present.
	Create(ctx context.Context, parameter, value string) error
}

// MasterPasswordStore persists the single master password record.
type MasterPasswordStore interface {
	// Load returns [ErrConfigNotFound] when the vault was never initialized.
	Load(ctx context.Context) (models.MasterPasswordRecord, error)
	// Create writes the first record and fails with [ErrConfigExists] when
	// one is already present.
	Create(ctx context.Context, record models.MasterPasswordRecord) error
	Save(ctx context.Context, record models.MasterPasswordRecord) error
	// Lock takes the vault-wide write lock for the current transaction.
	Lock(ctx context.Context) error
}

type KeyMaterialRepository interface {
	Get(ctx context.Context, userID int64) (models.UserKeyMaterial, error)
	Upsert(ctx context.Context, material models.UserKeyMaterial) error
	ListAll(ctx context.Context) ([]models.UserKeyMaterial, error)
	// ListByRevision returns material wrapped under revision, excluding
	// excludeUserID.
	ListByRevision(ctx context.Context, revision int64, excludeUserID int64) ([]models.UserKeyMaterial, error)
}

type SecretRepository interface {
	// ListBatch returns up to limit secrets of kind with owner ids greater
	// than afterOwnerID, ordered by owner id.
	ListBatch(ctx context.Context, kind models.SecretKind, afterOwnerID int64, limit int) ([]models.EncryptedSecret, error)
	Get(ctx context.Context, ref models.SecretRef) (models.EncryptedSecret, error)
	Save(ctx context.Context, secret models.EncryptedSecret) error
	Count(ctx context.Context, kind models.SecretKind) (int, error)
}

type TempPassRepository interface {
	Create(ctx context.Context, pass models.TemporaryMasterPass) error
	// Consume marks the active pass with keyHash as consumed and returns it.
	// [ErrTempPassNotFound] means no active pass matched.
	Consume(ctx context.Context, keyHash string, now time.Time) (models.TemporaryMasterPass, error)
	GetByKeyHash(ctx context.Context, keyHash string) (models.TemporaryMasterPass, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type TrackingRepository interface {
	Add(ctx context.Context, event models.TrackEvent) error
	// CountSince returns the larger of the per-user and per-source counts of
	// events recorded at or after since.
	CountSince(ctx context.Context, subject models.TrackSubject, since time.Time) (int, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
