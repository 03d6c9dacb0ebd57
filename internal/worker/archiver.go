package worker

import (
	"context"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/rs/zerolog/log"
)

// Archiver is the background job that moves COMPLETADO pedidos older than the
// retention window to ARCHIVADO, keeping the default listing lean without
// deleting anything.
type Archiver struct {
	pedidos   repository.PedidoRepository
	interval  time.Duration
	afterDays int
}

func NewArchiver(pedidos repository.PedidoRepository, interval time.Duration, afterDays int) *Archiver {
	if afterDays < 1 {
		afterDays = 30
	}
	return &Archiver{pedidos: pedidos, interval: interval, afterDays: afterDays}
}

// Start runs the archive loop until ctx is cancelled. One pass runs
// immediately so a restart never postpones overdue archiving by a full
// interval.
func (a *Archiver) Start(ctx context.Context) {
	go func() {
		a.run(ctx)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("archivador: deteniendo")
				return
			case <-ticker.C:
				a.run(ctx)
			}
		}
	}()
}

func (a *Archiver) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -a.afterDays)
	n, err := a.pedidos.ArchivarCompletados(runCtx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("archivador: fallo archivando pedidos completados")
		return
	}
	if n > 0 {
		log.Info().Int64("archivados", n).Time("cutoff", cutoff).
			Msg("archivador: pedidos completados archivados")
	}
}
