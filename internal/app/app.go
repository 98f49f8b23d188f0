// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// Runner is a long-running process bound to ctx.
type Runner interface {
	Run(ctx context.Context)
}

// App runs one operator command against the vault services.
type App struct {
	services *service.Services
	workers  Runner
	prompt   PasswordPrompter
	out      io.Writer
	logger   *logger.Logger
}

func NewApp(services *service.Services, workers Runner, prompt PasswordPrompter, out io.Writer, logger *logger.Logger) *App {
	return &App{
		services: services,
		workers:  workers,
		prompt:   prompt,
		out:      out,
		logger:   logger,
	}
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, MsgUsage)
		return ErrUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "migrate":
		return a.migrate(ctx, rest)
	case "init":
		return a.initVault(ctx, rest)
	case "temp-pass":
		return a.issueTempPass(ctx, rest)
	case "prune":
		return a.prune(ctx, rest)
	case "run-workers":
		return a.runWorkers(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, MsgUsage)
		return nil
	default:
		fmt.Fprint(a.out, MsgUsage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) migrate(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: migrate takes no arguments", ErrUsage)
	}

	current, err := a.prompt(MsgCurrentMasterPassword)
	if err != nil {
		return err
	}
	next, err := a.prompt(MsgNewMasterPassword)
	if err != nil {
		return err
	}
	if next != "" {
		if err = a.confirm(next); err != nil {
			return err
		}
	}

	result, err := a.services.MigrationService.Migrate(ctx, models.MigrationRequest{
		OldMasterPassword: current,
		NewMasterPassword: next,
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	a.logger.Info().
		Str("run_id", result.RunID).
		Bool("skipped", result.Skipped).
		Msg("migration finished")

	return a.printJSON(result)
}

func (a *App) initVault(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: init expects <admin-user-id>", ErrUsage)
	}
	adminUserID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || adminUserID <= 0 {
		return fmt.Errorf("%w: admin user id must be a positive integer", ErrUsage)
	}

	password, err := a.prompt(MsgMasterPassword)
	if err != nil {
		return err
	}
	if err = a.confirm(password); err != nil {
		return err
	}

	if err = a.services.VaultService.Initialize(ctx, adminUserID, password); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	fmt.Fprintf(a.out, "vault initialized for user %d\n", adminUserID)
	return nil
}

func (a *App) issueTempPass(ctx context.Context, args []string) error {
	var ttl time.Duration
	switch len(args) {
	case 0:
	case 1:
		parsed, err := time.ParseDuration(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%w: ttl must be a positive duration", ErrUsage)
		}
		ttl = parsed
	default:
		return fmt.Errorf("%w: temp-pass expects at most one ttl", ErrUsage)
	}

	password, err := a.prompt(MsgCurrentMasterPassword)
	if err != nil {
		return err
	}

	key, err := a.services.TempPassService.Issue(ctx, password, ttl)
	if err != nil {
		return fmt.Errorf("issuing temporary master pass failed: %w", err)
	}

	fmt.Fprintln(a.out, key)
	return nil
}

func (a *App) prune(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: prune takes no arguments", ErrUsage)
	}

	passes, err := a.services.TempPassService.Prune(ctx)
	if err != nil {
		return fmt.Errorf("pruning temporary master passes failed: %w", err)
	}
	events, err := a.services.Tracker.Prune(ctx)
	if err != nil {
		return fmt.Errorf("pruning tracking events failed: %w", err)
	}

	fmt.Fprintf(a.out, "temporary master passes deleted: %d\ntracking events deleted: %d\n", passes, events)
	return nil
}

func (a *App) runWorkers(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: run-workers takes no arguments", ErrUsage)
	}

	a.logger.Info().Msg("workers started")
	a.workers.Run(ctx)
	a.logger.Info().Msg("workers stopped")
	return nil
}

func (a *App) confirm(password string) error {
	repeated, err := a.prompt(MsgRepeatMasterPassword)
	if err != nil {
		return err
	}
	if repeated != password {
		return ErrPasswordMismatch
	}
	return nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error writing result: %w", err)
	}
	return nil
}
