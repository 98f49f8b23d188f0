// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// WrappedKey is an opaque "secured key" blob: the vault key encrypted under a
// password-derived key. It is independent of any secret ciphertext.
type WrappedKey struct {
	// Ciphertext is the encrypted vault key (including the AEAD tag for
	// the current format).
	Ciphertext []byte

	// Nonce is the AEAD nonce, or the CBC IV for legacy material.
	Nonce []byte

	// Salt is the KDF salt used to derive the wrapping key. For the current
	// format it is prefixed with the Argon2id cost it was derived with.
	Salt []byte

	// Format selects the unwrap scheme.
	Format FormatVersion
}

// UserKeyMaterial is a user's personal copy of the wrapped vault key.
// There is exactly one per user.
type UserKeyMaterial struct {
	UserID int64

	// Key is the wrapped vault key.
	Key WrappedKey

	// KeyRevision is the MasterPasswordRecord revision the key was wrapped
	// under.
	KeyRevision int64

	UpdatedAt time.Time
}
