package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/rs/zerolog/log"
)

// AuditRecorder persists audit events without ever making the request path
// wait. Record enqueues onto a bounded channel and returns immediately; a
// single consumer goroutine writes the rows. A full queue drops the event
// with a warning, a failed insert is logged and forgotten. The trail is
// best-effort on purpose: losing an audit row must never cost a request.
type AuditRecorder struct {
	repo   repository.AuditRepository
	queue  chan model.AuditLog
	quit   chan struct{}
	closed atomic.Bool
	wg     sync.WaitGroup
}

func NewAuditRecorder(repo repository.AuditRepository, queueSize int) *AuditRecorder {
	if queueSize < 1 {
		queueSize = 256
	}
	r := &AuditRecorder{
		repo:  repo,
		queue: make(chan model.AuditLog, queueSize),
		quit:  make(chan struct{}),
	}
	r.wg.Add(1)
	go r.consume()
	return r
}

// Record enqueues an event. Never blocks, never returns an error.
func (r *AuditRecorder) Record(ev model.AuditLog) {
	if r.closed.Load() {
		return
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	select {
	case r.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Str("module", ev.Module).
			Msg("auditoria: cola llena, evento descartado")
	}
}

// Close stops accepting events and drains what is already queued.
func (r *AuditRecorder) Close() {
	if r.closed.Swap(true) {
		return
	}
	close(r.quit)
	r.wg.Wait()
}

func (r *AuditRecorder) consume() {
	defer r.wg.Done()
	for {
		select {
		case ev := <-r.queue:
			r.persist(ev)
		case <-r.quit:
			for {
				select {
				case ev := <-r.queue:
					r.persist(ev)
				default:
					return
				}
			}
		}
	}
}

func (r *AuditRecorder) persist(ev model.AuditLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.repo.Create(ctx, &ev); err != nil {
		log.Error().Err(err).Str("action", ev.Action).Str("module", ev.Module).
			Msg("auditoria: fallo persistiendo evento")
	}
}
