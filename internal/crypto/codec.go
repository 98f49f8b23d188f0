// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/models"
)

// secretCodec is the private implementation of [SecretCodec].
type secretCodec struct{}

// NewSecretCodec constructs a [SecretCodec].
func NewSecretCodec() SecretCodec {
	return &secretCodec{}
}

// Encrypt seals plaintext with AES-256-GCM under vaultKey. The owner
// reference is the associated data.
func (c *secretCodec) Encrypt(ref models.SecretRef, plaintext, vaultKey []byte) (models.EncryptedSecret, error) {
	if len(vaultKey) != VaultKeyLen {
		return models.EncryptedSecret{}, fmt.Errorf("%w: vault key has length %d", ErrCorruptKeyMaterial, len(vaultKey))
	}

	gcm, err := newGCM(vaultKey)
	if err != nil {
		return models.EncryptedSecret{}, err
	}
	nonce, err := randomBytes(gcm.NonceSize())
	if err != nil {
		return models.EncryptedSecret{}, err
	}

	return models.EncryptedSecret{
		Ref:        ref,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, ref.AssociatedData()),
		Nonce:      nonce,
		Format:     models.FormatCurrent,
	}, nil
}

func (c *secretCodec) Decrypt(secret models.EncryptedSecret, vaultKey []byte) ([]byte, error) {
	if len(vaultKey) != VaultKeyLen {
		return nil, fmt.Errorf("%w: vault key has length %d", ErrDecryptFailed, len(vaultKey))
	}

	switch {
	case secret.Format == models.FormatCurrent:
		gcm, err := newGCM(vaultKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecryptFailed, err)
		}
		if len(secret.Nonce) != gcm.NonceSize() {
			return nil, fmt.Errorf("%w: nonce has length %d", ErrDecryptFailed, len(secret.Nonce))
		}
		plaintext, err := gcm.Open(nil, secret.Nonce, secret.Ciphertext, secret.Ref.AssociatedData())
		if err != nil {
			return nil, ErrDecryptFailed
		}
		return plaintext, nil

	case secret.Format.IsLegacy():
		plaintext, err := cbcDecrypt(vaultKey, secret.Nonce, secret.Ciphertext)
		if err != nil {
			return nil, ErrDecryptFailed
		}
		return plaintext, nil

	default:
		return nil, fmt.Errorf("%w: unknown format %s", ErrDecryptFailed, secret.Format)
	}
}
