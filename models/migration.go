// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MigrationRequest asks the migration engine to upgrade the digest format
// and, when NewMasterPassword is non-empty, to rotate the master password.
type MigrationRequest struct {
	OldMasterPassword string
	NewMasterPassword string
}

// MigrationResult reports what a migration run did. It never contains key
// material.
type MigrationResult struct {
	RunID string `json:"run_id"`

	// From is the digest format the old password matched.
	From FormatVersion `json:"from"`

	// Migrated is true when the transaction committed.
	Migrated bool `json:"migrated"`
	// Skipped is true when nothing needed migrating.
	Skipped bool `json:"skipped"`

	UsersMigrated    int `json:"users_migrated"`
	UsersSkipped     int `json:"users_skipped"`
	SecretsAttempted int `json:"secrets_attempted"`
	SecretsMigrated  int `json:"secrets_migrated"`

	Duration time.Duration `json:"duration"`
}
