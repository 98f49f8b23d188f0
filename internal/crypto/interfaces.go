package crypto

import "github.com/MKhiriev/go-vault-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher computes and verifies master password digests.
//
// Every historical digest layout can be verified; new digests are always
// produced in [models.FormatCurrent] by Hash. Implementations are pure and
// safe for concurrent use.
type PasswordHasher interface {
	// Hash returns a fresh current-format digest of password.
	Hash(password string) (string, error)

	// Encode returns a digest of password in the given format. Legacy
	// formats are supported so that historical vaults can be reproduced.
	Encode(password string, format models.FormatVersion) (string, error)

	// Verify reports whether password matches digest interpreted as format.
	// An unknown format yields (false, nil). A digest that cannot be parsed
	// as format yields [ErrMalformedDigest].
	Verify(password, digest string, format models.FormatVersion) (bool, error)
}

// KeyWrapper protects the vault key under a password-derived key.
type KeyWrapper interface {
	// GenerateVaultKey returns 32 random bytes.
	GenerateVaultKey() ([]byte, error)

	// Wrap encrypts vaultKey under password in the current format.
	Wrap(vaultKey []byte, password string) (models.WrappedKey, error)

	// Unwrap recovers the vault key from key. A wrong password yields
	// [ErrWrongPassword]; structurally broken material yields
	// [ErrCorruptKeyMaterial].
	Unwrap(key models.WrappedKey, password string) ([]byte, error)
}

// SecretCodec encrypts and decrypts secret payloads under the vault key.
type SecretCodec interface {
	// Encrypt always produces the current format, bound to ref.
	Encrypt(ref models.SecretRef, plaintext, vaultKey []byte) (models.EncryptedSecret, error)

	// Decrypt dispatches on secret.Format. Any failure is reported as
	// [ErrDecryptFailed].
	Decrypt(secret models.EncryptedSecret, vaultKey []byte) ([]byte, error)
}

// TokenSealer seals short payloads under a key derived from a random token.
type TokenSealer interface {
	Seal(token string, plaintext []byte) (sealed, nonce []byte, err error)
	Open(token string, sealed, nonce []byte) ([]byte, error)
}
