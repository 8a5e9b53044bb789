package dtos

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type DetailedHealthResponse struct {
	Status    string         `json:"status"`
	Timestamp float64        `json:"timestamp"`
	System    SystemResource `json:"system"`
	Runtime   RuntimeInfo    `json:"runtime"`
}

type SystemResource struct {
	CPU    CPUUsage    `json:"cpu"`
	Memory MemoryUsage `json:"memory"`
	Disk   DiskUsage   `json:"disk"`
}

type CPUUsage struct {
	Percent float64 `json:"percent"`
}

type MemoryUsage struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Percent   float64 `json:"percent"`
}

type DiskUsage struct {
	Total   uint64  `json:"total"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
}

type MessageResponse struct {
	Detail string `json:"detail"`
}
