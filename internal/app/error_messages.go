// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

const (
	// MsgCurrentMasterPassword prompts for the master password the vault is
	// unlocked with today.
	MsgCurrentMasterPassword = "current master password: "

	// MsgNewMasterPassword prompts for an optional replacement password.
	// Leaving it empty keeps the current one.
	MsgNewMasterPassword = "new master password (empty to keep): "

	// MsgMasterPassword prompts for the master password of a new vault.
	MsgMasterPassword = "master password: "

	// MsgRepeatMasterPassword asks the operator to confirm a new password.
	MsgRepeatMasterPassword = "repeat master password: "

	// MsgUsage is printed for a missing or unknown command.
	MsgUsage = `usage: vaultctl [flags] <command>

commands:
  migrate                  re-key the vault to the current format
  init <admin-user-id>     initialize an empty vault
  temp-pass [ttl]          issue a temporary master pass
  prune                    delete expired passes and old tracking events
  run-workers              run background workers until interrupted
`
)

var (
	// ErrUnknownCommand is returned when the first argument names no command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command receives malformed arguments.
	ErrUsage = errors.New("invalid arguments")

	// ErrPasswordMismatch is returned when a new password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)
