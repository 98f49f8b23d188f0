package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// loginService is the per-login state machine. It decides whether the
// presented master password unlocks the vault for the user and keeps the
// user's wrapped key up to date on the way.
type loginService struct {
	records store.MasterPasswordStore
	keys    store.KeyMaterialRepository

	wrapper crypto.KeyWrapper
	matcher passwordMatcher

	tempPasses TempPassService
	tracker    Tracker
	migrator   MigrationService
	gate       *VaultGate

	logger *logger.Logger
	now    func() time.Time
}

// LoginDeps groups the collaborators of the login resolver.
type LoginDeps struct {
	Records     store.MasterPasswordStore
	Keys        store.KeyMaterialRepository
	Hasher      crypto.PasswordHasher
	Wrapper     crypto.KeyWrapper
	TempPasses  TempPassService
	Tracker     Tracker
	Migrator    MigrationService
	Gate        *VaultGate
	UpgradePath []models.FormatVersion
}

func NewLoginService(deps LoginDeps, logger *logger.Logger) LoginService {
	return &loginService{
		records:    deps.Records,
		keys:       deps.Keys,
		wrapper:    deps.Wrapper,
		matcher:    newPasswordMatcher(deps.Hasher, deps.UpgradePath),
		tempPasses: deps.TempPasses,
		tracker:    deps.Tracker,
		migrator:   deps.Migrator,
		gate:       deps.Gate,
		logger:     logger,
		now:        time.Now,
	}
}

// loginState is what one resolution step learned.
type loginState struct {
	request  models.LoginRequest
	record   models.MasterPasswordRecord
	material models.UserKeyMaterial
	hasKey   bool

	// password is the master password that unlocked the vault.
	password string
}

// Resolve runs the login state machine. Wrong passwords, lockouts and
// missing setup are reported in the outcome status; errors are reserved for
// store and corruption failures.
func (s *loginService) Resolve(ctx context.Context, request models.LoginRequest) (models.LoginUnlockOutcome, error) {
	log := logger.FromContext(ctx)

	if request.UserID <= 0 {
		log.Error().Str("func", "loginService.Resolve").Msg("no user id provided")
		return models.LoginUnlockOutcome{}, ErrInvalidDataProvided
	}

	subject := models.TrackSubject{UserID: request.UserID, Source: request.Source}
	locked, err := s.tracker.CheckTracking(ctx, subject)
	if err != nil {
		log.Err(err).Str("func", "loginService.Resolve").Int64("user_id", request.UserID).Msg("failed to check tracking")
		return models.LoginUnlockOutcome{}, err
	}
	if locked {
		return models.LoginUnlockOutcome{Status: models.UnlockLocked}, nil
	}

	outcome, state, err := s.resolveShared(ctx, request)
	if err != nil {
		return models.LoginUnlockOutcome{}, err
	}

	switch outcome.Status {
	case models.UnlockOk, models.UnlockNotSet, models.UnlockLocked:
	default:
		if err := s.tracker.Add(ctx, models.TrackEvent{
			UserID: request.UserID,
			Source: request.Source,
			Kind:   outcome.Status.String(),
			At:     s.now().UTC(),
		}); err != nil {
			log.Err(err).Str("func", "loginService.Resolve").Int64("user_id", request.UserID).Msg("failed to record failed login")
			return models.LoginUnlockOutcome{}, err
		}
	}

	log.Info().
		Str("func", "loginService.Resolve").
		Int64("user_id", request.UserID).
		Stringer("status", outcome.Status).
		Msg("login resolved")

	if outcome.Status == models.UnlockOk && state.record.Format != models.FormatCurrent {
		s.upgradeVault(ctx, state.password)
	}

	return outcome, nil
}

// resolveShared holds the gate in shared mode for the whole resolution so
// that a migration cannot start underneath it.
func (s *loginService) resolveShared(ctx context.Context, request models.LoginRequest) (models.LoginUnlockOutcome, loginState, error) {
	release, err := s.gate.Shared()
	if err != nil {
		return models.LoginUnlockOutcome{}, loginState{}, err
	}
	defer release()

	state := loginState{request: request}

	state.record, err = s.records.Load(ctx)
	if errors.Is(err, store.ErrConfigNotFound) {
		return models.LoginUnlockOutcome{Status: models.UnlockNotSet}, state, nil
	}
	if err != nil {
		return models.LoginUnlockOutcome{}, state, storeErr("error loading master password record", err)
	}

	state.material, err = s.keys.Get(ctx, request.UserID)
	switch {
	case err == nil:
		state.hasKey = true
	case errors.Is(err, store.ErrKeyMaterialNotFound):
	default:
		return models.LoginUnlockOutcome{}, state, storeErr("error loading key material", err)
	}

	var outcome models.LoginUnlockOutcome
	switch {
	case request.TemporaryKey != "":
		outcome, err = s.resolveTemporaryKey(ctx, &state)
	case request.OldMasterPassword != "":
		outcome, err = s.resolveOldPassword(ctx, &state)
	default:
		outcome, err = s.resolvePassword(ctx, &state)
	}
	return outcome, state, err
}

// resolveTemporaryKey redeems a temporary pass. The recovered master
// password must still match the record.
func (s *loginService) resolveTemporaryKey(ctx context.Context, state *loginState) (models.LoginUnlockOutcome, error) {
	log := logger.FromContext(ctx)

	password, err := s.tempPasses.GetUsingKey(ctx, state.request.TemporaryKey)
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyConsumed):
		log.Warn().Str("func", "loginService.resolveTemporaryKey").Int64("user_id", state.request.UserID).Msg("temporary master pass already consumed")
		return invalid(), nil
	case errors.Is(err, ErrExpired):
		log.Warn().Str("func", "loginService.resolveTemporaryKey").Int64("user_id", state.request.UserID).Msg("temporary master pass expired")
		return invalid(), nil
	case errors.Is(err, ErrTempPassNotFound), errors.Is(err, crypto.ErrDecryptFailed):
		log.Warn().Str("func", "loginService.resolveTemporaryKey").Int64("user_id", state.request.UserID).Msg("unknown temporary master pass")
		return invalid(), nil
	default:
		return models.LoginUnlockOutcome{}, err
	}

	ok, err := s.verify(state.record, password)
	if err != nil || !ok {
		return invalid(), err
	}

	vaultKey, err := s.vaultKeyFor(ctx, state, password)
	if err != nil || vaultKey == nil {
		return invalid(), err
	}

	state.password = password
	return s.unlock(ctx, state, vaultKey, true)
}

// resolveOldPassword handles a login after the master password was changed:
// the user's wrap opens under the old password and the new one matches the
// record.
func (s *loginService) resolveOldPassword(ctx context.Context, state *loginState) (models.LoginUnlockOutcome, error) {
	if !state.hasKey {
		return invalid(), nil
	}

	vaultKey, err := s.unwrap(state.material, state.request.OldMasterPassword)
	if err != nil || vaultKey == nil {
		return invalid(), err
	}

	ok, err := s.verify(state.record, state.request.MasterPassword)
	if err != nil || !ok {
		return invalid(), err
	}

	state.password = state.request.MasterPassword
	return s.unlock(ctx, state, vaultKey, true)
}

func (s *loginService) resolvePassword(ctx context.Context, state *loginState) (models.LoginUnlockOutcome, error) {
	password := state.request.MasterPassword

	if !state.hasKey {
		if password == "" {
			return models.LoginUnlockOutcome{Status: models.UnlockNotSet}, nil
		}

		ok, err := s.verify(state.record, password)
		if err != nil || !ok {
			return invalid(), err
		}

		vaultKey, err := s.vaultKeyFor(ctx, state, password)
		if err != nil || vaultKey == nil {
			return invalid(), err
		}

		state.password = password
		return s.unlock(ctx, state, vaultKey, true)
	}

	vaultKey, err := s.unwrap(state.material, password)
	if err != nil {
		return models.LoginUnlockOutcome{}, err
	}
	verified, err := s.verify(state.record, password)
	if err != nil {
		return models.LoginUnlockOutcome{}, err
	}

	switch {
	case vaultKey != nil && verified:
		state.password = password
		stale := state.material.Key.Format != models.FormatCurrent || state.material.KeyRevision != state.record.Revision
		return s.unlock(ctx, state, vaultKey, stale)
	case vaultKey != nil && state.material.KeyRevision != state.record.Revision:
		return models.LoginUnlockOutcome{Status: models.UnlockChanged}, nil
	case vaultKey == nil && verified:
		return models.LoginUnlockOutcome{Status: models.UnlockCheckOldRequired}, nil
	default:
		return invalid(), nil
	}
}

// unlock returns Ok with the vault key, re-wrapping it for the user under
// the effective password first when rewrap is set.
func (s *loginService) unlock(ctx context.Context, state *loginState, vaultKey []byte, rewrap bool) (models.LoginUnlockOutcome, error) {
	if rewrap {
		wrapped, err := s.wrapper.Wrap(vaultKey, state.password)
		if err != nil {
			return models.LoginUnlockOutcome{}, fmt.Errorf("error wrapping vault key: %w", err)
		}
		if err := s.keys.Upsert(ctx, models.UserKeyMaterial{
			UserID:      state.request.UserID,
			Key:         wrapped,
			KeyRevision: state.record.Revision,
			UpdatedAt:   s.now().UTC(),
		}); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "loginService.unlock").
				Int64("user_id", state.request.UserID).
				Msg("failed to save re-wrapped key material")
			return models.LoginUnlockOutcome{}, storeErr("error saving key material", err)
		}
	}

	return models.LoginUnlockOutcome{Status: models.UnlockOk, VaultKey: vaultKey}, nil
}

// vaultKeyFor finds the vault key for a user whose own wrap is missing or
// does not open: first the user's material, then any other user's material
// wrapped under the current revision. A nil key means none opened.
func (s *loginService) vaultKeyFor(ctx context.Context, state *loginState, password string) ([]byte, error) {
	if state.hasKey {
		vaultKey, err := s.unwrap(state.material, password)
		if err != nil || vaultKey != nil {
			return vaultKey, err
		}
	}

	others, err := s.keys.ListByRevision(ctx, state.record.Revision, state.request.UserID)
	if err != nil {
		return nil, storeErr("error listing key material", err)
	}
	for _, m := range others {
		vaultKey, err := s.unwrap(m, password)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "loginService.vaultKeyFor").
				Int64("user_id", m.UserID).
				Msg("skipping unreadable key material")
			continue
		}
		if vaultKey != nil {
			return vaultKey, nil
		}
	}

	return nil, nil
}

// unwrap returns a nil key when the password does not open the material.
// Corrupt material is an error.
func (s *loginService) unwrap(m models.UserKeyMaterial, password string) ([]byte, error) {
	if password == "" {
		return nil, nil
	}

	vaultKey, err := s.wrapper.Unwrap(m.Key, password)
	if errors.Is(err, crypto.ErrWrongPassword) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error unwrapping key material of user %d: %w", m.UserID, err)
	}
	return vaultKey, nil
}

func (s *loginService) verify(record models.MasterPasswordRecord, password string) (bool, error) {
	_, ok, err := s.matcher.match(record, password)
	if err != nil {
		return false, fmt.Errorf("error verifying master password: %w", err)
	}
	return ok, nil
}

// upgradeVault migrates a legacy vault after a successful login. The login
// already succeeded, so a failure is only logged.
func (s *loginService) upgradeVault(ctx context.Context, password string) {
	log := logger.FromContext(ctx)

	result, err := s.migrator.Migrate(ctx, models.MigrationRequest{OldMasterPassword: password})
	if err != nil {
		log.Err(err).Str("func", "loginService.upgradeVault").Msg("vault upgrade after login failed")
		return
	}

	log.Info().
		Str("func", "loginService.upgradeVault").
		Str("run_id", result.RunID).
		Bool("skipped", result.Skipped).
		Msg("vault upgraded after login")
}

func invalid() models.LoginUnlockOutcome {
	return models.LoginUnlockOutcome{Status: models.UnlockInvalid}
}
