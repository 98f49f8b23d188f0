// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TemporaryMasterPass is a short-lived, single-use alternate unlock key.
// The key itself is never stored; only its keyed hash is.
type TemporaryMasterPass struct {
	ID string

	// KeyHash is the hex HMAC-SHA256 of the issued key.
	KeyHash string

	// WrappedPass is the master password sealed under a key derived from
	// the issued key.
	WrappedPass []byte
	Nonce       []byte

	ExpiresAt time.Time
	Consumed  bool
	CreatedAt time.Time
}

// Expired reports whether the pass is no longer usable at now.
func (p TemporaryMasterPass) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
