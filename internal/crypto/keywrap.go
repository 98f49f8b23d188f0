// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/models"
	"golang.org/x/crypto/argon2"
)

// keyWrapAAD binds the format tag into the GCM tag of a wrapped vault key.
var keyWrapAAD = []byte("vault-key:" + models.FormatCurrent.String())

// keyWrapper is the private implementation of [KeyWrapper].
type keyWrapper struct {
	params Argon2Params
}

// NewKeyWrapper constructs a [KeyWrapper] that derives wrapping keys with
// Argon2id using params. The cost is recorded alongside each wrapped key, so
// changing params later does not break existing material.
func NewKeyWrapper(params Argon2Params) (KeyWrapper, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &keyWrapper{params: params}, nil
}

func (w *keyWrapper) GenerateVaultKey() ([]byte, error) {
	return randomBytes(VaultKeyLen)
}

// Wrap derives a KEK with Argon2id over a fresh 16-byte salt and seals
// vaultKey with AES-256-GCM under a separate random nonce.
func (w *keyWrapper) Wrap(vaultKey []byte, password string) (models.WrappedKey, error) {
	if len(vaultKey) != VaultKeyLen {
		return models.WrappedKey{}, fmt.Errorf("%w: vault key has length %d", ErrCorruptKeyMaterial, len(vaultKey))
	}

	salt, err := randomBytes(saltLen)
	if err != nil {
		return models.WrappedKey{}, err
	}

	gcm, err := newGCM(w.deriveKEK(password, salt, w.params))
	if err != nil {
		return models.WrappedKey{}, err
	}

	nonce, err := randomBytes(gcm.NonceSize())
	if err != nil {
		return models.WrappedKey{}, err
	}

	return models.WrappedKey{
		Ciphertext: gcm.Seal(nil, nonce, vaultKey, keyWrapAAD),
		Nonce:      nonce,
		Salt:       encodeKDFSalt(w.params, salt),
		Format:     models.FormatCurrent,
	}, nil
}

func (w *keyWrapper) Unwrap(key models.WrappedKey, password string) ([]byte, error) {
	switch {
	case key.Format == models.FormatCurrent:
		return w.unwrapCurrent(key, password)
	case key.Format.IsLegacy():
		return unwrapLegacyKey(key, password)
	default:
		return nil, fmt.Errorf("%w: unknown format %s", ErrCorruptKeyMaterial, key.Format)
	}
}

func (w *keyWrapper) unwrapCurrent(key models.WrappedKey, password string) ([]byte, error) {
	params, salt, err := decodeKDFSalt(key.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptKeyMaterial, err)
	}

	gcm, err := newGCM(w.deriveKEK(password, salt, params))
	if err != nil {
		return nil, err
	}
	if len(key.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: nonce has length %d", ErrCorruptKeyMaterial, len(key.Nonce))
	}
	if len(key.Ciphertext) != VaultKeyLen+gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext has length %d", ErrCorruptKeyMaterial, len(key.Ciphertext))
	}

	// a tag mismatch on well-formed material means the KEK is wrong
	vaultKey, err := gcm.Open(nil, key.Nonce, key.Ciphertext, keyWrapAAD)
	if err != nil {
		return nil, ErrWrongPassword
	}

	return vaultKey, nil
}

func (w *keyWrapper) deriveKEK(password string, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, VaultKeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
