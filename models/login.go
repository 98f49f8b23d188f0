// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UnlockStatus is the coarse result of a login unlock attempt.
type UnlockStatus int

const (
	// UnlockOk means the vault key was recovered.
	UnlockOk UnlockStatus = iota + 1
	// UnlockNotSet means the user has no key material yet.
	UnlockNotSet
	// UnlockInvalid means the supplied password(s) did not unlock anything.
	UnlockInvalid
	// UnlockChanged means the vault master password changed since the
	// user's key material was wrapped.
	UnlockChanged
	// UnlockCheckOldRequired means the user must resupply the previous
	// master password.
	UnlockCheckOldRequired
	// UnlockLocked means too many failed attempts were tracked.
	UnlockLocked
)

var unlockStatusNames = map[UnlockStatus]string{
	UnlockOk:               "ok",
	UnlockNotSet:           "not_set",
	UnlockInvalid:          "invalid",
	UnlockChanged:          "changed",
	UnlockCheckOldRequired: "check_old_required",
	UnlockLocked:           "locked",
}

func (s UnlockStatus) String() string {
	if name, ok := unlockStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// LoginUnlockOutcome is produced fresh for each login attempt and never
// persisted. VaultKey is set only when Status is UnlockOk.
type LoginUnlockOutcome struct {
	Status   UnlockStatus
	VaultKey []byte
}

// LoginRequest carries the already authenticated user and the optional
// fields of the login form (mpass, oldpass and the temporary key).
type LoginRequest struct {
	UserID int64

	// Source identifies the client (usually the remote IP) for tracking.
	Source string

	MasterPassword    string
	OldMasterPassword string
	TemporaryKey      string
}
