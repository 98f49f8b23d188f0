package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongMasterPassword is returned when the presented master password
	// matches the stored digest in none of the known formats.
	ErrWrongMasterPassword = errors.New("wrong master password")

	ErrTempPassNotFound = errors.New("temporary master pass not found")
	ErrAlreadyConsumed  = errors.New("temporary master pass already consumed")
	ErrExpired          = errors.New("temporary master pass expired")

	ErrMigrationFailed = errors.New("master key migration failed")

	// ErrVaultBusy is retryable: a migration holds the vault or the store
	// reported lock contention.
	ErrVaultBusy = errors.New("vault is busy")

	ErrVaultNotInitialized     = errors.New("vault is not initialized")
	ErrVaultAlreadyInitialized = errors.New("vault is already initialized")

	errVaultKeyMismatch    = errors.New("users hold different vault keys")
	errVaultKeyUnavailable = errors.New("no key material opens under the master password")
)

// MigrationError reports a failed migration run. It matches
// [ErrMigrationFailed] and unwraps to the underlying cause.
type MigrationError struct {
	RunID            string
	SecretsAttempted int
	SecretsMigrated  int
	Err              error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %s failed after %d/%d secrets: %v",
		e.RunID, e.SecretsMigrated, e.SecretsAttempted, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

func (e *MigrationError) Is(target error) bool {
	return target == ErrMigrationFailed
}
