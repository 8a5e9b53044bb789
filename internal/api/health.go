package api

import (
	"net/http"
	"runtime"
	"time"

	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/models/dtos"
)

// Health handles GET /health with the cached component snapshot.
func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := h.deps.Services.Health.Snapshot(r.Context(), time.Now())
		common.RespondJSON(w, http.StatusOK, snapshot)
	}
}

// HealthCheck handles GET /health/check. It only shows the process is serving.
func (h *Handlers) HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondJSON(w, http.StatusOK, dtos.HealthCheckResponse{
			Status:    string(constants.HealthHealthy),
			Version:   h.deps.Config.Version,
			Timestamp: time.Now().UTC(),
		})
	}
}

// DetailedHealth handles GET /health/detailed with live host figures.
func (h *Handlers) DetailedHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := constants.HealthHealthy
		stats, err := h.readHost(r.Context())
		if err != nil {
			logging.Warn("Failed to read host stats", "error", err)
			status = constants.HealthDegraded
		}

		common.RespondJSON(w, http.StatusOK, dtos.DetailedHealthResponse{
			Status:    string(status),
			Timestamp: float64(time.Now().UnixNano()) / 1e9,
			System: dtos.SystemResource{
				CPU: dtos.CPUUsage{Percent: stats.CPUPercent},
				Memory: dtos.MemoryUsage{
					Total:     stats.MemoryTotal,
					Available: stats.MemoryAvailable,
					Percent:   stats.MemoryPercent,
				},
				Disk: dtos.DiskUsage{
					Total:   stats.DiskTotal,
					Free:    stats.DiskFree,
					Percent: stats.DiskPercent,
				},
			},
			Runtime: dtos.RuntimeInfo{
				GoVersion:  runtime.Version(),
				Goroutines: runtime.NumGoroutine(),
			},
		})
	}
}
