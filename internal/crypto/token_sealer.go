package crypto

import (
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var (
	tokenKeyInfo = []byte("go-vault-keeper temporary master pass")
	tokenAAD     = []byte("temp-pass")
)

// tokenSealer is the private implementation of [TokenSealer]. The sealing
// key is HKDF-SHA256 of the token; the cipher is XChaCha20-Poly1305.
type tokenSealer struct{}

func NewTokenSealer() TokenSealer {
	return &tokenSealer{}
}

func (s *tokenSealer) Seal(token string, plaintext []byte) ([]byte, []byte, error) {
	aead, err := tokenAEAD(token)
	if err != nil {
		return nil, nil, err
	}
	nonce, err := randomBytes(aead.NonceSize())
	if err != nil {
		return nil, nil, err
	}
	return aead.Seal(nil, nonce, plaintext, tokenAAD), nonce, nil
}

func (s *tokenSealer) Open(token string, sealed, nonce []byte) ([]byte, error) {
	aead, err := tokenAEAD(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce has length %d", ErrDecryptFailed, len(nonce))
	}
	plaintext, err := aead.Open(nil, nonce, sealed, tokenAAD)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

func tokenAEAD(token string) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(token), nil, tokenKeyInfo), key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
