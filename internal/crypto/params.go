// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// VaultKeyLen is the length of the vault key and of every derived
	// AES-256 key.
	VaultKeyLen = 32

	saltLen = 16

	// upper bounds accepted from stored digests and descriptors
	maxArgonTime     = 64
	maxArgonMemory   = 4 * 1024 * 1024
	minArgonMemory   = 8
	kdfDescriptorLen = 4 + 4 + 1
)

// Argon2Params holds the Argon2id cost parameters.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultArgon2Params returns the parameters recommended by OWASP:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:      3,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

func (p Argon2Params) validate() error {
	if p.Time == 0 || p.Time > maxArgonTime {
		return fmt.Errorf("argon2 time %d out of range", p.Time)
	}
	if p.Threads == 0 {
		return fmt.Errorf("argon2 threads must be positive")
	}
	if p.MemoryKiB < minArgonMemory*uint32(p.Threads) || p.MemoryKiB > maxArgonMemory {
		return fmt.Errorf("argon2 memory %d KiB out of range", p.MemoryKiB)
	}
	return nil
}

// encodeKDFSalt prefixes salt with the big-endian cost parameters so that a
// wrapped key stays openable after the configured cost changes.
func encodeKDFSalt(p Argon2Params, salt []byte) []byte {
	out := make([]byte, kdfDescriptorLen, kdfDescriptorLen+len(salt))
	binary.BigEndian.PutUint32(out[0:4], p.Time)
	binary.BigEndian.PutUint32(out[4:8], p.MemoryKiB)
	out[8] = p.Threads
	return append(out, salt...)
}

func decodeKDFSalt(b []byte) (Argon2Params, []byte, error) {
	if len(b) != kdfDescriptorLen+saltLen {
		return Argon2Params{}, nil, fmt.Errorf("kdf salt has length %d", len(b))
	}
	p := Argon2Params{
		Time:      binary.BigEndian.Uint32(b[0:4]),
		MemoryKiB: binary.BigEndian.Uint32(b[4:8]),
		Threads:   b[8],
	}
	if err := p.validate(); err != nil {
		return Argon2Params{}, nil, err
	}
	return p, b[kdfDescriptorLen:], nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}
