package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"github.com/MKhiriev/go-vault-keeper/models"
	"golang.org/x/crypto/pbkdf2"
)

// Pre-AEAD key material and secrets use AES-256-CBC with PKCS#7 padding and
// an external IV. They are readable forever but only produced by
// SealLegacyKey and SealLegacySecret.

const legacyKEKIter = 10000

var errBadPadding = errors.New("bad padding")

func legacyKEKHash(format models.FormatVersion) func() hash.Hash {
	if format == models.FormatLegacy30 {
		return sha1.New
	}
	return sha256.New
}

func deriveLegacyKEK(password string, salt []byte, format models.FormatVersion) []byte {
	return pbkdf2.Key([]byte(password), salt, legacyKEKIter, VaultKeyLen, legacyKEKHash(format))
}

// SealLegacyKey wraps vaultKey in one of the legacy formats. The result is
// what a vault created by an older release would contain.
func SealLegacyKey(vaultKey []byte, password string, format models.FormatVersion) (models.WrappedKey, error) {
	if !format.IsLegacy() {
		return models.WrappedKey{}, fmt.Errorf("%w: %s is not a legacy format", ErrUnsupportedFormat, format)
	}
	if len(vaultKey) != VaultKeyLen {
		return models.WrappedKey{}, fmt.Errorf("%w: vault key has length %d", ErrCorruptKeyMaterial, len(vaultKey))
	}

	salt, err := randomBytes(saltLen)
	if err != nil {
		return models.WrappedKey{}, err
	}
	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return models.WrappedKey{}, err
	}

	ciphertext, err := cbcEncrypt(deriveLegacyKEK(password, salt, format), iv, vaultKey)
	if err != nil {
		return models.WrappedKey{}, err
	}

	return models.WrappedKey{
		Ciphertext: ciphertext,
		Nonce:      iv,
		Salt:       salt,
		Format:     format,
	}, nil
}

func unwrapLegacyKey(key models.WrappedKey, password string) ([]byte, error) {
	if len(key.Salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrCorruptKeyMaterial)
	}
	if len(key.Nonce) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv has length %d", ErrCorruptKeyMaterial, len(key.Nonce))
	}
	if len(key.Ciphertext) == 0 || len(key.Ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext has length %d", ErrCorruptKeyMaterial, len(key.Ciphertext))
	}

	plaintext, err := cbcDecrypt(deriveLegacyKEK(password, key.Salt, key.Format), key.Nonce, key.Ciphertext)
	if err != nil {
		if errors.Is(err, errBadPadding) {
			return nil, ErrWrongPassword
		}
		return nil, err
	}
	// no tag: a wrong key surfaces as garbage of the wrong length
	if len(plaintext) != VaultKeyLen {
		return nil, ErrWrongPassword
	}

	return plaintext, nil
}

// SealLegacySecret encrypts plaintext the way older releases stored secrets.
func SealLegacySecret(ref models.SecretRef, plaintext, vaultKey []byte, format models.FormatVersion) (models.EncryptedSecret, error) {
	if !format.IsLegacy() {
		return models.EncryptedSecret{}, fmt.Errorf("%w: %s is not a legacy format", ErrUnsupportedFormat, format)
	}

	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return models.EncryptedSecret{}, err
	}
	ciphertext, err := cbcEncrypt(vaultKey, iv, plaintext)
	if err != nil {
		return models.EncryptedSecret{}, err
	}

	return models.EncryptedSecret{
		Ref:        ref,
		Ciphertext: ciphertext,
		Nonce:      iv,
		Format:     format,
	}, nil
}

func cbcEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func cbcDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	if len(iv) != aes.BlockSize || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errBadPadding
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, aes.BlockSize)
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, errBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, errBadPadding
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, errBadPadding
		}
	}
	return b[:len(b)-n], nil
}
