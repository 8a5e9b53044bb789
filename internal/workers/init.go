package workers

import (
	"context"
	"time"
)

type WorkersContainer struct {
	HealthRefresher *HealthRefresher
}

// InitWorkers starts the background workers. They stop when ctx is cancelled.
// A zero refresh interval leaves the refresher off.
func InitWorkers(ctx context.Context, health Snapshotter, refreshInterval time.Duration) *WorkersContainer {
	container := &WorkersContainer{}

	if refreshInterval > 0 {
		container.HealthRefresher = NewHealthRefresher(health, refreshInterval)
		go container.HealthRefresher.Start(ctx)
	}

	return container
}
