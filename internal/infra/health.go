package infra

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HealthState is the shared degraded-store flag. The background checker is
// the single writer; request-handling goroutines only read, so an atomic
// flag with a few seconds of staleness tolerance is enough, no lock.
type HealthState struct {
	degraded  atomic.Bool
	lastCheck atomic.Int64 // unix millis
}

func NewHealthState() *HealthState { return &HealthState{} }

// Degraded reports whether the backing store was unreachable at the last
// check. Mutating endpoints refuse to run while this is set.
func (h *HealthState) Degraded() bool { return h.degraded.Load() }

// SetDegraded is exposed for the checker and for tests.
func (h *HealthState) SetDegraded(v bool) {
	h.degraded.Store(v)
	h.lastCheck.Store(time.Now().UnixMilli())
}

// LastCheck returns when the flag was last refreshed.
func (h *HealthState) LastCheck() time.Time {
	return time.UnixMilli(h.lastCheck.Load())
}

// StartHealthChecker launches the periodic store probe. The minimum interval
// caps the probe rate regardless of how often anything else would like a
// fresh answer; a timed-out ping is a hard failure for that tick, not
// retried until the next one.
func StartHealthChecker(ctx context.Context, db *gorm.DB, rdb *redis.Client, state *HealthState, interval time.Duration) {
	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		degraded := false
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(probeCtx) != nil {
			degraded = true
		}
		if rdb != nil && rdb.Ping(probeCtx).Err() != nil {
			log.Warn().Msg("health: redis unreachable")
		}

		prev := state.Degraded()
		state.SetDegraded(degraded)
		if degraded != prev {
			log.Warn().Bool("degraded", degraded).Msg("health: store availability changed")
		}
	}

	go func() {
		probe()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("health checker: shutting down")
				return
			case <-ticker.C:
				probe()
			}
		}
	}()
}
