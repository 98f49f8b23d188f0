package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
)

const tempKeyLen = 32

// tempPassService issues temporary master passes. Only the HMAC of a key is
// stored; the master password is sealed under a key derived from the key
// itself.
type tempPassService struct {
	records store.MasterPasswordStore
	passes  store.TempPassRepository

	matcher passwordMatcher
	sealer  crypto.TokenSealer
	ids     utils.IDGenerator

	hashKey    string
	defaultTTL time.Duration

	logger *logger.Logger
	now    func() time.Time
}

// TempPassDeps groups the collaborators of the temporary pass service.
type TempPassDeps struct {
	Records     store.MasterPasswordStore
	Passes      store.TempPassRepository
	Hasher      crypto.PasswordHasher
	Sealer      crypto.TokenSealer
	IDs         utils.IDGenerator
	UpgradePath []models.FormatVersion
}

func NewTempPassService(deps TempPassDeps, app config.App, vault config.Vault, logger *logger.Logger) TempPassService {
	return &tempPassService{
		records:    deps.Records,
		passes:     deps.Passes,
		matcher:    newPasswordMatcher(deps.Hasher, deps.UpgradePath),
		sealer:     deps.Sealer,
		ids:        deps.IDs,
		hashKey:    app.HashKey,
		defaultTTL: vault.TempPassTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue stores a new temporary pass for masterPassword and returns its key.
// The key is shown once and cannot be recovered from the store.
func (s *tempPassService) Issue(ctx context.Context, masterPassword string, ttl time.Duration) (string, error) {
	log := logger.FromContext(ctx)

	if masterPassword == "" {
		log.Error().Str("func", "tempPassService.Issue").Msg("no master password provided")
		return "", ErrInvalidDataProvided
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	record, err := s.records.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrConfigNotFound) {
			return "", ErrVaultNotInitialized
		}
		log.Err(err).Str("func", "tempPassService.Issue").Msg("failed to load master password record")
		return "", storeErr("error loading master password record", err)
	}

	_, ok, err := s.matcher.match(record, masterPassword)
	if err != nil {
		return "", fmt.Errorf("error verifying master password: %w", err)
	}
	if !ok {
		log.Warn().Str("func", "tempPassService.Issue").Msg("master password does not match")
		return "", ErrWrongMasterPassword
	}

	raw := make([]byte, tempKeyLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("error generating temporary key: %w", err)
	}
	key := base64.RawURLEncoding.EncodeToString(raw)

	sealed, nonce, err := s.sealer.Seal(key, []byte(masterPassword))
	if err != nil {
		return "", fmt.Errorf("error sealing master password: %w", err)
	}

	now := s.now().UTC()
	pass := models.TemporaryMasterPass{
		ID:          s.ids.Generate(),
		KeyHash:     utils.HashString(key, s.hashKey),
		WrappedPass: sealed,
		Nonce:       nonce,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}
	if err := s.passes.Create(ctx, pass); err != nil {
		log.Err(err).Str("func", "tempPassService.Issue").Msg("failed to save temporary master pass")
		return "", storeErr("error saving temporary master pass", err)
	}

	log.Info().
		Str("func", "tempPassService.Issue").
		Str("id", pass.ID).
		Time("expires_at", pass.ExpiresAt).
		Msg("temporary master pass issued")

	return key, nil
}

// CheckKey reports whether key is known, unused and not expired. It does not
// consume the pass.
func (s *tempPassService) CheckKey(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	pass, err := s.passes.GetByKeyHash(ctx, utils.HashString(key, s.hashKey))
	if err != nil {
		if errors.Is(err, store.ErrTempPassNotFound) {
			return false, nil
		}
		return false, storeErr("error reading temporary master pass", err)
	}

	return !pass.Consumed && !pass.Expired(s.now()), nil
}

// GetUsingKey consumes the pass and returns the master password sealed in
// it. A second call with the same key fails with ErrAlreadyConsumed.
func (s *tempPassService) GetUsingKey(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return "", ErrTempPassNotFound
	}

	keyHash := utils.HashString(key, s.hashKey)
	now := s.now().UTC()

	pass, err := s.passes.Consume(ctx, keyHash, now)
	if err != nil {
		if errors.Is(err, store.ErrTempPassNotFound) {
			return "", s.diagnose(ctx, keyHash, now)
		}
		log.Err(err).Str("func", "tempPassService.GetUsingKey").Msg("failed to consume temporary master pass")
		return "", storeErr("error consuming temporary master pass", err)
	}

	password, err := s.sealer.Open(key, pass.WrappedPass, pass.Nonce)
	if err != nil {
		log.Err(err).
			Str("func", "tempPassService.GetUsingKey").
			Str("id", pass.ID).
			Msg("failed to open temporary master pass")
		return "", fmt.Errorf("error opening temporary master pass: %w", err)
	}

	log.Info().Str("func", "tempPassService.GetUsingKey").Str("id", pass.ID).Msg("temporary master pass consumed")

	return string(password), nil
}

// diagnose explains why the conditional consume matched no row.
func (s *tempPassService) diagnose(ctx context.Context, keyHash string, now time.Time) error {
	pass, err := s.passes.GetByKeyHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, store.ErrTempPassNotFound) {
			return ErrTempPassNotFound
		}
		return storeErr("error reading temporary master pass", err)
	}

	switch {
	case pass.Consumed:
		return ErrAlreadyConsumed
	case pass.Expired(now):
		return ErrExpired
	default:
		return ErrTempPassNotFound
	}
}

// Prune deletes expired passes. Consumed passes are kept until they expire so
// that a replayed key is still reported as already consumed.
func (s *tempPassService) Prune(ctx context.Context) (int64, error) {
	n, err := s.passes.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tempPassService.Prune").Msg("failed to prune temporary master passes")
		return 0, storeErr("error pruning temporary master passes", err)
	}
	return n, nil
}
