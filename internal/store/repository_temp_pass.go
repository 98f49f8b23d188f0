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

// tempPassRepository implements [TempPassRepository] over the
// temporary_master_passes table. Only key hashes are stored.
type tempPassRepository struct {
	db *DB
}

func NewTempPassRepository(db *DB) TempPassRepository {
	return &tempPassRepository{db: db}
}

func (r *tempPassRepository) Create(ctx context.Context, pass models.TemporaryMasterPass) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateTempPassQuery(r.db.builder, pass)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "tempPassRepository.Create").
			Str("id", pass.ID).
			Msg("failed to save temporary master pass")
		return r.db.wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

// Consume is a single conditional UPDATE ... RETURNING. Of two concurrent
// callers presenting the same key only one gets a row back.
func (r *tempPassRepository) Consume(ctx context.Context, keyHash string, now time.Time) (models.TemporaryMasterPass, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeTempPassQuery(r.db.builder, keyHash, now)
	if err != nil {
		return models.TemporaryMasterPass{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	pass, err := scanTempPass(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TemporaryMasterPass{}, ErrTempPassNotFound
		}
		log.Err(err).Str("func", "tempPassRepository.Consume").Msg("failed to consume temporary master pass")
		return models.TemporaryMasterPass{}, r.db.wrapErr(ErrExecutingStatement, err)
	}

	return pass, nil
}

func (r *tempPassRepository) GetByKeyHash(ctx context.Context, keyHash string) (models.TemporaryMasterPass, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetTempPassQuery(r.db.builder, keyHash)
	if err != nil {
		return models.TemporaryMasterPass{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	pass, err := scanTempPass(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TemporaryMasterPass{}, ErrTempPassNotFound
		}
		log.Err(err).Str("func", "tempPassRepository.GetByKeyHash").Msg("failed to read temporary master pass")
		return models.TemporaryMasterPass{}, r.db.wrapErr(ErrExecutingQuery, err)
	}

	return pass, nil
}

func (r *tempPassRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredTempPassQuery(r.db.builder, now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "tempPassRepository.DeleteExpired").Msg("failed to delete temporary master passes")
		return 0, r.db.wrapErr(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

func scanTempPass(row rowScanner) (models.TemporaryMasterPass, error) {
	var (
		p                    models.TemporaryMasterPass
		expiresAt, createdAt int64
	)
	if err := row.Scan(&p.ID, &p.KeyHash, &p.WrappedPass, &p.Nonce, &expiresAt, &p.Consumed, &createdAt); err != nil {
		return models.TemporaryMasterPass{}, err
	}
	p.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return p, nil
}
