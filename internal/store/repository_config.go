package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

// configRepository implements [ConfigRepository] over the config(parameter,
// value) table.
type configRepository struct {
	db *DB
}

func NewConfigRepository(db *DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context, parameter string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetConfigQuery(r.db.builder, parameter)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrConfigNotFound
		}
		log.Err(err).
			Str("func", "configRepository.Get").
			Str("parameter", parameter).
			Msg("failed to read config parameter")
		return "", r.db.wrapErr(ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *configRepository) Set(ctx context.Context, parameter, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetConfigQuery(r.db.builder, parameter, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "configRepository.Set").
			Str("parameter", parameter).
			Msg("failed to write config parameter")
		return r.db.wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

func (r *configRepository) Create(ctx context.Context, parameter, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateConfigQuery(r.db.builder, parameter, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConfigExists
		}
		log.Err(err).
			Str("func", "configRepository.Create").
			Str("parameter", parameter).
			Msg("failed to insert config parameter")
		return r.db.wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
