package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// keyMaterialRepository implements [KeyMaterialRepository] over the
// user_key_material table.
type keyMaterialRepository struct {
	db *DB
}

func NewKeyMaterialRepository(db *DB) KeyMaterialRepository {
	return &keyMaterialRepository{db: db}
}

func (r *keyMaterialRepository) Get(ctx context.Context, userID int64) (models.UserKeyMaterial, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetKeyMaterialQuery(r.db.builder, userID)
	if err != nil {
		return models.UserKeyMaterial{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	m, err := scanKeyMaterial(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserKeyMaterial{}, ErrKeyMaterialNotFound
		}
		log.Err(err).
			Str("func", "keyMaterialRepository.Get").
			Int64("user_id", userID).
			Msg("failed to read key material")
		return models.UserKeyMaterial{}, r.db.wrapErr(ErrExecutingQuery, err)
	}

	return m, nil
}

func (r *keyMaterialRepository) Upsert(ctx context.Context, material models.UserKeyMaterial) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertKeyMaterialQuery(r.db.builder, material)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "keyMaterialRepository.Upsert").
			Int64("user_id", material.UserID).
			Msg("failed to save key material")
		return r.db.wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

func (r *keyMaterialRepository) ListAll(ctx context.Context) ([]models.UserKeyMaterial, error) {
	query, args, err := buildListKeyMaterialQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "keyMaterialRepository.ListAll", query, args)
}

func (r *keyMaterialRepository) ListByRevision(ctx context.Context, revision int64, excludeUserID int64) ([]models.UserKeyMaterial, error) {
	query, args, err := buildListKeyMaterialByRevisionQuery(r.db.builder, revision, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "keyMaterialRepository.ListByRevision", query, args)
}

func (r *keyMaterialRepository) list(ctx context.Context, funcName, query string, args []any) ([]models.UserKeyMaterial, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query key material")
		return nil, r.db.wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.UserKeyMaterial, 0)
	for rows.Next() {
		m, err := scanKeyMaterial(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan key material row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKeyMaterial(row rowScanner) (models.UserKeyMaterial, error) {
	var (
		m         models.UserKeyMaterial
		format    int16
		updatedAt int64
	)
	if err := row.Scan(&m.UserID, &m.Key.Ciphertext, &m.Key.Nonce, &m.Key.Salt, &format, &m.KeyRevision, &updatedAt); err != nil {
		return models.UserKeyMaterial{}, err
	}
	m.Key.Format = models.FormatVersion(format)
	m.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return m, nil
}
