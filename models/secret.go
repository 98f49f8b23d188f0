// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"time"
)

// SecretKind distinguishes the two families of encrypted payloads kept in
// the vault.
type SecretKind string

const (
	// SecretAccountPassword is the password of a stored account.
	SecretAccountPassword SecretKind = "account"
	// SecretCustomField is the value of an encrypted custom field.
	SecretCustomField SecretKind = "custom_field"
)

// SecretKinds lists every kind in the order the migration engine walks them.
func SecretKinds() []SecretKind {
	return []SecretKind{SecretAccountPassword, SecretCustomField}
}

// SecretRef identifies the entity that owns an encrypted secret.
type SecretRef struct {
	Kind    SecretKind
	OwnerID int64
}

// AssociatedData returns the bytes bound into the AEAD tag so that a
// ciphertext cannot be moved to another row.
func (r SecretRef) AssociatedData() []byte {
	return []byte(string(r.Kind) + ":" + strconv.FormatInt(r.OwnerID, 10))
}

// EncryptedSecret is one encrypted account password or custom-field value.
type EncryptedSecret struct {
	Ref SecretRef

	Ciphertext []byte

	// Nonce is the AEAD nonce for the current format and the external IV
	// for legacy formats.
	Nonce []byte

	Format FormatVersion

	UpdatedAt time.Time
}
