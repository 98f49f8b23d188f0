// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

// NamedPruner labels a [Pruner] in logs.
type NamedPruner struct {
	Name string
	Pruner
}

// PruneWorker periodically deletes expired temporary master passes and
// tracking events that fell out of the lockout window.
type PruneWorker struct {
	interval time.Duration
	pruners  []NamedPruner
	logger   *logger.Logger
}

func NewPruneWorker(interval time.Duration, log *logger.Logger, pruners ...NamedPruner) *PruneWorker {
	return &PruneWorker{
		interval: interval,
		pruners:  pruners,
		logger:   log,
	}
}

// Run prunes once immediately and then every interval until ctx is done.
func (w *PruneWorker) Run(ctx context.Context) {
	w.logger.Info().Str("func", "PruneWorker.Run").Dur("interval", w.interval).Msg("prune worker started")

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("func", "PruneWorker.Run").Msg("prune worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce runs every pruner once. A failing pruner does not stop the others.
// It returns the number of deleted rows.
func (w *PruneWorker) RunOnce(ctx context.Context) int64 {
	var total int64
	for _, p := range w.pruners {
		n, err := p.Prune(ctx)
		if err != nil {
			w.logger.Err(err).Str("func", "PruneWorker.RunOnce").Str("pruner", p.Name).Msg("prune failed")
			continue
		}
		if n > 0 {
			w.logger.Info().Str("func", "PruneWorker.RunOnce").Str("pruner", p.Name).Int64("deleted", n).Msg("pruned rows")
		}
		total += n
	}
	return total
}
