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

// secretRepository implements [SecretRepository] over account_secrets and
// custom_field_secrets. The secret kind selects the table.
type secretRepository struct {
	db *DB
}

func NewSecretRepository(db *DB) SecretRepository {
	return &secretRepository{db: db}
}

func (r *secretRepository) ListBatch(ctx context.Context, kind models.SecretKind, afterOwnerID int64, limit int) ([]models.EncryptedSecret, error) {
	log := logger.FromContext(ctx)

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query, args, err := buildListSecretsQuery(r.db.builder, t, afterOwnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "secretRepository.ListBatch").
			Str("kind", string(kind)).
			Int64("after", afterOwnerID).
			Msg("failed to query secrets")
		return nil, r.db.wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.EncryptedSecret, 0, limit)
	for rows.Next() {
		s, err := scanSecret(rows, kind)
		if err != nil {
			log.Err(err).Str("func", "secretRepository.ListBatch").Msg("failed to scan secret row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "secretRepository.ListBatch").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func (r *secretRepository) Get(ctx context.Context, ref models.SecretRef) (models.EncryptedSecret, error) {
	log := logger.FromContext(ctx)

	t, err := tableFor(ref.Kind)
	if err != nil {
		return models.EncryptedSecret{}, err
	}
	query, args, err := buildGetSecretQuery(r.db.builder, t, ref.OwnerID)
	if err != nil {
		return models.EncryptedSecret{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	s, err := scanSecret(r.db.conn(ctx).QueryRowContext(ctx, query, args...), ref.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedSecret{}, ErrSecretNotFound
		}
		log.Err(err).
			Str("func", "secretRepository.Get").
			Str("kind", string(ref.Kind)).
			Int64("owner_id", ref.OwnerID).
			Msg("failed to read secret")
		return models.EncryptedSecret{}, r.db.wrapErr(ErrExecutingQuery, err)
	}

	return s, nil
}

func (r *secretRepository) Save(ctx context.Context, secret models.EncryptedSecret) error {
	log := logger.FromContext(ctx)

	t, err := tableFor(secret.Ref.Kind)
	if err != nil {
		return err
	}
	query, args, err := buildSaveSecretQuery(r.db.builder, t, secret)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "secretRepository.Save").
			Str("kind", string(secret.Ref.Kind)).
			Int64("owner_id", secret.Ref.OwnerID).
			Msg("failed to save secret")
		return r.db.wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

func (r *secretRepository) Count(ctx context.Context, kind models.SecretKind) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query, args, err := buildCountSecretsQuery(r.db.builder, t)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "secretRepository.Count").
			Str("kind", string(kind)).
			Msg("failed to count secrets")
		return 0, r.db.wrapErr(ErrExecutingQuery, err)
	}

	return n, nil
}

func scanSecret(row rowScanner, kind models.SecretKind) (models.EncryptedSecret, error) {
	var (
		s         models.EncryptedSecret
		format    int16
		updatedAt int64
	)
	if err := row.Scan(&s.Ref.OwnerID, &s.Ciphertext, &s.Nonce, &format, &updatedAt); err != nil {
		return models.EncryptedSecret{}, err
	}
	s.Ref.Kind = kind
	s.Format = models.FormatVersion(format)
	s.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return s, nil
}
