package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the vault.
func NewWorkers(services *service.Services, cfg config.Workers, log *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewPruneWorker(cfg.PruneInterval, log,
			NamedPruner{Name: "temporary_master_passes", Pruner: services.TempPassService},
			NamedPruner{Name: "tracking", Pruner: services.Tracker},
		),
	}}
}

// Run starts every worker and blocks until all of them returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
