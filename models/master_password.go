// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MasterPasswordRecord is the single vault-wide digest of the master password.
// Exactly one record is authoritative; it is created at vault initialization
// and changed only by the migration engine.
type MasterPasswordRecord struct {
	// Digest is the encoded hash in the layout dictated by Format.
	Digest string `json:"-"`

	// Format tells which hasher case verifies Digest.
	Format FormatVersion `json:"format"`

	// Revision increases every time the master password itself changes.
	// Key material wrapped under an older revision predates the change.
	Revision int64 `json:"revision"`

	// UpdatedAt is the moment the record was last written.
	UpdatedAt time.Time `json:"updated_at"`
}
