// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// Config parameters holding the master password record.
const (
	ConfigMasterPassword          = "masterPwd"
	ConfigMasterPasswordFormat    = "masterPwdFormat"
	ConfigMasterPasswordRevision  = "masterPwdRevision"
	ConfigMasterPasswordUpdatedAt = "masterPwdUpdatedAt"
)

// masterPasswordStore maps [models.MasterPasswordRecord] onto four config
// parameters. Writes outside a transaction open one so the record is never
// half written.
type masterPasswordStore struct {
	db     *DB
	config ConfigRepository
}

func NewMasterPasswordStore(db *DB, config ConfigRepository) MasterPasswordStore {
	return &masterPasswordStore{db: db, config: config}
}

// Load reads the record in one query. Vaults written before the format
// parameter existed load with [models.FormatUnknown], which makes the
// migration engine probe every format.
func (s *masterPasswordStore) Load(ctx context.Context) (models.MasterPasswordRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetConfigManyQuery(s.db.builder, []string{
		ConfigMasterPassword,
		ConfigMasterPasswordFormat,
		ConfigMasterPasswordRevision,
		ConfigMasterPasswordUpdatedAt,
	})
	if err != nil {
		return models.MasterPasswordRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "masterPasswordStore.Load").Msg("failed to query master password record")
		return models.MasterPasswordRecord{}, s.db.wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string, 4)
	for rows.Next() {
		var parameter, value string
		if err := rows.Scan(&parameter, &value); err != nil {
			log.Err(err).Str("func", "masterPasswordStore.Load").Msg("failed to scan config row")
			return models.MasterPasswordRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		values[parameter] = value
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "masterPasswordStore.Load").Msg("error occurred during rows iteration")
		return models.MasterPasswordRecord{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	digest, ok := values[ConfigMasterPassword]
	if !ok || digest == "" {
		return models.MasterPasswordRecord{}, ErrConfigNotFound
	}

	record := models.MasterPasswordRecord{Digest: digest}
	if format, err := models.ParseFormatVersion(values[ConfigMasterPasswordFormat]); err == nil {
		record.Format = format
	}
	if v, ok := values[ConfigMasterPasswordRevision]; ok {
		revision, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.MasterPasswordRecord{}, fmt.Errorf("%w: bad revision %q", ErrScanningRow, v)
		}
		record.Revision = revision
	}
	if v, ok := values[ConfigMasterPasswordUpdatedAt]; ok {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.MasterPasswordRecord{}, fmt.Errorf("%w: bad timestamp %q", ErrScanningRow, v)
		}
		record.UpdatedAt = time.Unix(ts, 0).UTC()
	}

	return record, nil
}

func (s *masterPasswordStore) Create(ctx context.Context, record models.MasterPasswordRecord) error {
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.config.Create(ctx, ConfigMasterPassword, record.Digest); err != nil {
			return err
		}
		return s.saveMeta(ctx, record)
	})
}

func (s *masterPasswordStore) Save(ctx context.Context, record models.MasterPasswordRecord) error {
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.config.Set(ctx, ConfigMasterPassword, record.Digest); err != nil {
			return err
		}
		return s.saveMeta(ctx, record)
	})
}

func (s *masterPasswordStore) saveMeta(ctx context.Context, record models.MasterPasswordRecord) error {
	if err := s.config.Set(ctx, ConfigMasterPasswordFormat, record.Format.String()); err != nil {
		return err
	}
	if err := s.config.Set(ctx, ConfigMasterPasswordRevision, strconv.FormatInt(record.Revision, 10)); err != nil {
		return err
	}
	return s.config.Set(ctx, ConfigMasterPasswordUpdatedAt, strconv.FormatInt(record.UpdatedAt.Unix(), 10))
}

// Lock must run inside a transaction; outside one the lock would be released
// immediately.
func (s *masterPasswordStore) Lock(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if !InTransaction(ctx) {
		return fmt.Errorf("%w: vault lock requires a transaction", ErrExecutingStatement)
	}

	query, args, err := buildLockVaultQuery(s.db.builder)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "masterPasswordStore.Lock").Msg("failed to lock vault")
		return s.db.wrapErr(ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrConfigNotFound
	}

	return nil
}
