package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// tracker locks a user or source out once maxAttempts failures were
// recorded within window.
type tracker struct {
	repository  store.TrackingRepository
	window      time.Duration
	maxAttempts int
	logger      *logger.Logger
	now         func() time.Time
}

func NewTracker(repository store.TrackingRepository, cfg config.Tracking, logger *logger.Logger) Tracker {
	return &tracker{
		repository:  repository,
		window:      cfg.Window,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

func (t *tracker) Add(ctx context.Context, event models.TrackEvent) error {
	if event.At.IsZero() {
		event.At = t.now().UTC()
	}

	if err := t.repository.Add(ctx, event); err != nil {
		return storeErr("error recording tracking event", err)
	}
	return nil
}

func (t *tracker) CheckTracking(ctx context.Context, subject models.TrackSubject) (bool, error) {
	if t.maxAttempts <= 0 {
		return false, nil
	}

	n, err := t.repository.CountSince(ctx, subject, t.now().UTC().Add(-t.window))
	if err != nil {
		return false, storeErr("error counting tracking events", err)
	}

	if n >= t.maxAttempts {
		logger.FromContext(ctx).Warn().
			Str("func", "tracker.CheckTracking").
			Int64("user_id", subject.UserID).
			Str("source", subject.Source).
			Int("attempts", n).
			Msg("subject is locked out")
		return true, nil
	}
	return false, nil
}

// Prune drops events that can no longer count towards a lockout.
func (t *tracker) Prune(ctx context.Context) (int64, error) {
	n, err := t.repository.DeleteBefore(ctx, t.now().UTC().Add(-t.window))
	if err != nil {
		return 0, storeErr("error pruning tracking events", err)
	}
	return n, nil
}
