package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

type trackingRepository struct {
	db *DB
}

func NewTrackingRepository(db *DB) TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) Add(ctx context.Context, event models.TrackEvent) error {
	log := logger.FromContext(ctx)

	query, args, err := buildAddTrackingQuery(r.db.builder, event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "trackingRepository.Add").
			Int64("user_id", event.UserID).
			Str("kind", event.Kind).
			Msg("failed to add tracking event")
		return r.db.wrapErr(ErrExecutingStatement, err)
	}

	return nil
}

func (r *trackingRepository) CountSince(ctx context.Context, subject models.TrackSubject, since time.Time) (int, error) {
	highest := 0

	if subject.UserID != 0 {
		n, err := r.count(ctx, "user_id", subject.UserID, since)
		if err != nil {
			return 0, err
		}
		highest = max(highest, n)
	}
	if subject.Source != "" {
		n, err := r.count(ctx, "source", subject.Source, since)
		if err != nil {
			return 0, err
		}
		highest = max(highest, n)
	}

	return highest, nil
}

func (r *trackingRepository) count(ctx context.Context, column string, value any, since time.Time) (int, error) {
	query, args, err := buildCountTrackingQuery(r.db.builder, column, value, since)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "trackingRepository.CountSince").
			Str("column", column).
			Msg("failed to count tracking events")
		return 0, r.db.wrapErr(ErrExecutingQuery, err)
	}

	return n, nil
}

func (r *trackingRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteTrackingQuery(r.db.builder, before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "trackingRepository.DeleteBefore").Msg("failed to delete tracking events")
		return 0, r.db.wrapErr(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}
