package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"global-healthops/nexus/internal/config"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/health"
	"global-healthops/nexus/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"validation", &dtos.ValidationError{Field: "search", Message: "too short"}, http.StatusUnprocessableEntity, "search: too short"},
		{"not found", fmt.Errorf("wrapped: %w", constants.ErrNotFound), http.StatusNotFound, "missing"},
		{"conflict", constants.ErrConflict, http.StatusBadRequest, "taken"},
		{"inactive", constants.ErrInactiveUser, http.StatusBadRequest, constants.MsgInactiveUser},
		{"unauthorized", constants.ErrUnauthorized, http.StatusUnauthorized, constants.MsgIncorrectCredentials},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, constants.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondServiceError(rr, httptest.NewRequest(http.MethodGet, "/x", nil), tt.err, "missing", "taken")

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body dtos.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)
			assert.NotContains(t, rr.Body.String(), "disk on fire")
		})
	}
}

func TestDetailedHealth_DegradedWhenHostStatsFail(t *testing.T) {
	h := &Handlers{
		deps: &Dependencies{Config: &config.Config{Version: "0.1.0"}},
		readHost: func(context.Context) (health.HostStats, error) {
			return health.HostStats{}, errors.New("no procfs")
		},
	}

	rr := httptest.NewRecorder()
	h.DetailedHealth()(rr, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body dtos.DetailedHealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, string(constants.HealthDegraded), body.Status)
	assert.NotEmpty(t, body.Runtime.GoVersion)
}

func TestDetailedHealth_ReportsHostStats(t *testing.T) {
	h := &Handlers{
		deps: &Dependencies{Config: &config.Config{Version: "0.1.0"}},
		readHost: func(context.Context) (health.HostStats, error) {
			return health.HostStats{CPUPercent: 12.5, MemoryTotal: 100, MemoryPercent: 40, DiskPercent: 70}, nil
		},
	}

	rr := httptest.NewRecorder()
	h.DetailedHealth()(rr, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

	var body dtos.DetailedHealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, string(constants.HealthHealthy), body.Status)
	assert.Equal(t, 12.5, body.System.CPU.Percent)
	assert.Equal(t, uint64(100), body.System.Memory.Total)
}

func TestHealthCheck_ReportsVersion(t *testing.T) {
	h := &Handlers{deps: &Dependencies{Config: &config.Config{Version: "2.0.0"}}}

	rr := httptest.NewRecorder()
	h.HealthCheck()(rr, httptest.NewRequest(http.MethodGet, "/health/check", nil))

	var body dtos.HealthCheckResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "2.0.0", body.Version)
}
