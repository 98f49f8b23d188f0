// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-keeper/models"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	currentDigestPrefix = "$vk1$"
	currentMACLen       = sha256.Size

	legacy72HashLen = 72
	legacy72KeyLen  = 54
	legacy30HashLen = 30
	legacy30KeyLen  = 22
	legacyCryptIter = 1024
	legacyCryptSalt = 12

	sha256x128SaltLen = 64
	sha256x128Len     = 128
)

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	// pepper keys the HMAC applied over the Argon2id output.
	pepper []byte
	params Argon2Params
}

// NewPasswordHasher constructs a [PasswordHasher]. pepper is the
// application-wide secret mixed into current-format digests; params is the
// Argon2id cost used for new digests. Existing digests are verified with the
// cost recorded inside them.
func NewPasswordHasher(pepper string, params Argon2Params) (PasswordHasher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &passwordHasher{
		pepper: []byte(pepper),
		params: params,
	}, nil
}

func (h *passwordHasher) Hash(password string) (string, error) {
	return h.Encode(password, models.FormatCurrent)
}

func (h *passwordHasher) Encode(password string, format models.FormatVersion) (string, error) {
	switch format {
	case models.FormatCurrent:
		salt, err := randomBytes(saltLen)
		if err != nil {
			return "", err
		}
		mac := h.currentMAC(password, salt, h.params)
		return fmt.Sprintf("%st=%d,m=%d,p=%d$%s$%s",
			currentDigestPrefix,
			h.params.Time, h.params.MemoryKiB, h.params.Threads,
			base64.RawStdEncoding.EncodeToString(salt),
			base64.RawStdEncoding.EncodeToString(mac),
		), nil

	case models.FormatLegacySha256x128:
		raw, err := randomBytes(sha256x128SaltLen / 2)
		if err != nil {
			return "", err
		}
		salt := hex.EncodeToString(raw)
		return salt + sha256x128Hash(salt, password), nil

	case models.FormatLegacy72, models.FormatLegacy30:
		raw, err := randomBytes(legacyCryptSalt)
		if err != nil {
			return "", err
		}
		salt := base64.RawURLEncoding.EncodeToString(raw)
		return legacyCryptHash(password, salt, format) + salt, nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (h *passwordHasher) Verify(password, digest string, format models.FormatVersion) (bool, error) {
	switch format {
	case models.FormatCurrent:
		params, salt, mac, err := parseCurrentDigest(digest)
		if err != nil {
			return false, err
		}
		return hmac.Equal(h.currentMAC(password, salt, params), mac), nil

	case models.FormatLegacySha256x128:
		if len(digest) != sha256x128Len {
			return false, fmt.Errorf("%w: expected %d characters", ErrMalformedDigest, sha256x128Len)
		}
		salt, want := digest[:sha256x128SaltLen], digest[sha256x128SaltLen:]
		got := sha256x128Hash(salt, password)
		return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1, nil

	case models.FormatLegacy72, models.FormatLegacy30:
		split := legacySplit(format)
		if len(digest) <= split {
			return false, fmt.Errorf("%w: expected more than %d characters", ErrMalformedDigest, split)
		}
		want, salt := digest[:split], digest[split:]
		got := legacyCryptHash(password, salt, format)
		return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1, nil

	default:
		return false, nil
	}
}

func (h *passwordHasher) currentMAC(password string, salt []byte, p Argon2Params) []byte {
	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, VaultKeyLen)
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write(key)
	return mac.Sum(nil)
}

// parseCurrentDigest splits "$vk1$t=..,m=..,p=..$salt$mac".
func parseCurrentDigest(digest string) (Argon2Params, []byte, []byte, error) {
	if !strings.HasPrefix(digest, currentDigestPrefix) {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: missing prefix", ErrMalformedDigest)
	}
	parts := strings.Split(strings.TrimPrefix(digest, currentDigestPrefix), "$")
	if len(parts) != 3 {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: expected 3 sections", ErrMalformedDigest)
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[0], "t=%d,m=%d,p=%d", &p.Time, &p.MemoryKiB, &p.Threads); err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: %w", ErrMalformedDigest, err)
	}
	if err := p.validate(); err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: %w", ErrMalformedDigest, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: bad salt", ErrMalformedDigest)
	}
	mac, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(mac) != currentMACLen {
		return Argon2Params{}, nil, nil, fmt.Errorf("%w: bad mac", ErrMalformedDigest)
	}

	return p, salt, mac, nil
}

func sha256x128Hash(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

func legacySplit(format models.FormatVersion) int {
	if format == models.FormatLegacy30 {
		return legacy30HashLen
	}
	return legacy72HashLen
}

// legacyCryptHash returns the hash part of a crypt-style digest. Legacy72 is
// padded standard base64 of a 54-byte PBKDF2-SHA256 output (72 chars);
// Legacy30 is unpadded base64 of a 22-byte PBKDF2-SHA1 output (30 chars).
func legacyCryptHash(password, salt string, format models.FormatVersion) string {
	if format == models.FormatLegacy30 {
		key := pbkdf2.Key([]byte(password), []byte(salt), legacyCryptIter, legacy30KeyLen, sha1.New)
		return base64.RawStdEncoding.EncodeToString(key)
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), legacyCryptIter, legacy72KeyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}
