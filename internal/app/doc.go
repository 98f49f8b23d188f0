// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app implements the operator command runtime behind vaultctl.
//
// It maps subcommands onto the master-key lifecycle services, prompts for
// master passwords without echo and renders results for the operator.
package app
