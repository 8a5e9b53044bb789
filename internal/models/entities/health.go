package entities

import (
	"time"

	"global-healthops/nexus/internal/constants"
)

// ComponentStatus is the outcome of one component check.
type ComponentStatus struct {
	Status      constants.HealthState  `json:"status"`
	LatencyMs   float64                `json:"latency_ms"`
	LastChecked time.Time              `json:"last_checked"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

// HealthStatus is a system health snapshot, valid only within its cache window.
type HealthStatus struct {
	Status        constants.HealthState      `json:"status"`
	Version       string                     `json:"version"`
	Environment   string                     `json:"environment"`
	Timestamp     time.Time                  `json:"timestamp"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Components    map[string]ComponentStatus `json:"components"`
}
