package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/store"
)

// storeErr adds [ErrVaultBusy] to transient store failures so callers can
// retry without knowing about the store package.
func storeErr(msg string, err error) error {
	if errors.Is(err, store.ErrStoreBusy) {
		return fmt.Errorf("%s: %w: %w", msg, ErrVaultBusy, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
