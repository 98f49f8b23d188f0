// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// FormatVersion tags the historical scheme that produced a digest, a wrapped
// vault key or a secret ciphertext. The same enum is consumed by the password
// hasher, the key wrapper and the secret codec.
//
// The numeric values are persisted; never renumber them.
type FormatVersion int16

const (
	// FormatUnknown is the zero value and never verifies anything.
	FormatUnknown FormatVersion = iota
	// FormatLegacy30 is the oldest crypt-style digest, split at offset 30.
	FormatLegacy30
	// FormatLegacy72 is the crypt-style digest split at offset 72.
	FormatLegacy72
	// FormatLegacySha256x128 is a 64-char salt followed by a 64-char
	// hex SHA-256 of salt‖password.
	FormatLegacySha256x128
	// FormatCurrent is the keyed Argon2id digest and the AEAD schemes.
	FormatCurrent
)

var formatNames = map[FormatVersion]string{
	FormatUnknown:          "unknown",
	FormatLegacy30:         "legacy30",
	FormatLegacy72:         "legacy72",
	FormatLegacySha256x128: "legacy_sha256x128",
	FormatCurrent:          "current",
}

// String implements [fmt.Stringer].
func (f FormatVersion) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int16(f))
}

// IsLegacy reports whether f is one of the pre-AEAD formats.
func (f FormatVersion) IsLegacy() bool {
	return f == FormatLegacy30 || f == FormatLegacy72 || f == FormatLegacySha256x128
}

// IsKnown reports whether f is a supported format.
func (f FormatVersion) IsKnown() bool {
	return f.IsLegacy() || f == FormatCurrent
}

// ParseFormatVersion converts the textual name produced by
// [FormatVersion.String] back into a FormatVersion.
func ParseFormatVersion(s string) (FormatVersion, error) {
	for f, name := range formatNames {
		if name == s && f != FormatUnknown {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown format version %q", s)
}

// DefaultUpgradePath is the order in which a presented master password is
// tried against the historical digest formats, newest first.
func DefaultUpgradePath() []FormatVersion {
	return []FormatVersion{
		FormatCurrent,
		FormatLegacySha256x128,
		FormatLegacy72,
		FormatLegacy30,
	}
}
