package workers

import (
	"context"
	"time"

	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/models/entities"
)

// Snapshotter is the part of the health aggregator the refresher drives.
type Snapshotter interface {
	Snapshot(ctx context.Context, now time.Time) *entities.HealthStatus
}

// HealthRefresher recomputes the health snapshot on a fixed interval so the
// component gauges stay current between /health requests.
type HealthRefresher struct {
	health   Snapshotter
	interval time.Duration
	now      func() time.Time
}

// NewHealthRefresher creates a new refresher
func NewHealthRefresher(health Snapshotter, interval time.Duration) *HealthRefresher {
	return &HealthRefresher{
		health:   health,
		interval: interval,
		now:      time.Now,
	}
}

// Start refreshes immediately, then on every tick until ctx is cancelled.
func (w *HealthRefresher) Start(ctx context.Context) {
	logging.Info("Health refresher starting", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Health refresher shutting down")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *HealthRefresher) refresh(ctx context.Context) {
	snap := w.health.Snapshot(ctx, w.now())
	if snap.Status != constants.HealthHealthy {
		logging.Warn("System health is not healthy", "status", snap.Status)
	}
}
