package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"global-healthops/nexus/internal/api"
	"global-healthops/nexus/internal/config"
	database "global-healthops/nexus/internal/db"
	"global-healthops/nexus/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:      "test",
		Version:     "0.1.0",
		ProjectName: "Nexus",
		APIPrefix:   "/api/v1",
		Database: config.Database{
			Driver:       "sqlite",
			DSN:          "file::memory:?_foreign_keys=on",
			MaxOpenConns: 1,
		},
		Auth: config.Auth{
			SecretKey:      "test-secret",
			AccessTokenTTL: 30 * time.Minute,
			BcryptCost:     4,
		},
		CORS:       config.CORS{AllowedOrigins: []string{"*"}},
		Health:     config.Health{CacheTTL: 30 * time.Second, ComponentTimeout: time.Second},
		Pagination: config.Pagination{DefaultLimit: 100, MaxLimit: 1000, SearchMinLength: 3},
		RateLimit:  config.RateLimit{RPS: 1000, Burst: 1000},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	orm, err := database.OpenORM(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(orm))
	probe, err := database.OpenProbe(cfg.Database, orm)
	require.NoError(t, err)

	deps, err := api.InitDependencies(cfg, api.Infra{ORM: orm, Probe: probe}, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)

	srv := httptest.NewServer(RegisterRoutes(deps))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := orm.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.send(req)
}

func (c *client) login(email, password string) (int, []byte) {
	c.t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req, err := http.NewRequest(http.MethodPost, c.base+"/api/v1/auth/login", strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req)
}

func (c *client) send(req *http.Request) (int, []byte) {
	c.t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, raw
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// authenticated registers and logs in alice.
func authenticated(t *testing.T, srv *httptest.Server) *client {
	c := &client{t: t, base: srv.URL}
	status, _ := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "alice@example.com", "full_name": "Alice", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw := c.login("alice@example.com", "password123")
	require.Equal(t, http.StatusOK, status)
	c.token = decode(t, raw)["access_token"].(string)
	return c
}

func TestScenario_RegisterLoginPatientRecordCascade(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := &client{t: t, base: srv.URL}

	status, raw := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "alice@example.com", "full_name": "Alice", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	user := decode(t, raw)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, string(raw), "password")

	status, raw = c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "alice@example.com", "full_name": "Alice", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", decode(t, raw)["detail"])

	status, raw = c.login("alice@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect email or password", decode(t, raw)["detail"])

	status, raw = c.login("alice@example.com", "password123")
	require.Equal(t, http.StatusOK, status)
	token := decode(t, raw)
	assert.Equal(t, "bearer", token["token_type"])
	c.token = token["access_token"].(string)

	status, raw = c.do(http.MethodPost, "/api/v1/patients/", map[string]any{
		"first_name": "Jane", "last_name": "Doe", "date_of_birth": "1990-01-01", "gender": "female",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	patient := decode(t, raw)
	patientID := int(patient["id"].(float64))
	assert.NotZero(t, patientID)
	assert.Equal(t, "1990-01-01", patient["date_of_birth"])

	status, raw = c.do(http.MethodPost, fmt.Sprintf("/api/v1/patients/%d/records/", patientID), map[string]any{
		"record_type":    "diagnosis",
		"title":          "Seasonal flu",
		"description":    "Fever and cough",
		"date_of_record": "2024-01-10T09:00:00Z",
		"treatments": []map[string]any{
			{"name": "Rest", "provider_name": "Dr. Smith", "start_date": "2024-01-10T09:00:00Z"},
			{"name": "Fluids", "provider_name": "Dr. Smith", "start_date": "2024-01-10T09:00:00Z", "status": "in_progress"},
		},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	record := decode(t, raw)
	recordID := record["id"].(float64)
	treatments := record["treatments"].([]any)
	require.Len(t, treatments, 2)
	for _, tr := range treatments {
		assert.Equal(t, recordID, tr.(map[string]any)["health_record_id"])
	}
	assert.Equal(t, "planned", treatments[0].(map[string]any)["status"])

	status, _ = c.do(http.MethodGet, fmt.Sprintf("/api/v1/records/%d", int(recordID)), nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/patients/%d", patientID), nil)
	require.Equal(t, http.StatusOK, status)

	status, raw = c.do(http.MethodGet, fmt.Sprintf("/api/v1/records/%d", int(recordID)), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Health record not found", decode(t, raw)["detail"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := &client{t: t, base: srv.URL}

	status, raw := c.do(http.MethodGet, "/api/v1/patients/", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authenticated", decode(t, raw)["detail"])

	c.token = "not-a-jwt"
	status, raw = c.do(http.MethodGet, "/api/v1/patients/", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Could not validate credentials", decode(t, raw)["detail"])
}

func TestPatients_CRUDAndErrors(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := authenticated(t, srv)

	status, raw := c.do(http.MethodGet, "/api/v1/patients/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Patient not found", decode(t, raw)["detail"])

	status, _ = c.do(http.MethodPost, "/api/v1/patients/", map[string]any{
		"first_name": "Jane", "last_name": "Doe", "date_of_birth": "1990-01-01", "gender": "robot",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, raw = c.do(http.MethodPost, "/api/v1/patients/", map[string]any{
		"first_name": "Jane", "last_name": "Doe", "date_of_birth": "1990-01-01", "gender": "female",
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	id := int(decode(t, raw)["id"].(float64))

	status, raw = c.do(http.MethodPost, "/api/v1/patients/", map[string]any{
		"first_name": "Janet", "last_name": "Doe", "date_of_birth": "1991-01-01", "gender": "female",
		"email": "jane@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "A patient with this email already exists.", decode(t, raw)["detail"])

	status, raw = c.do(http.MethodPut, fmt.Sprintf("/api/v1/patients/%d", id), map[string]any{
		"contact_number": "555-0100", "last_name": nil,
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode(t, raw)
	assert.Equal(t, "555-0100", updated["contact_number"])
	assert.Equal(t, "Doe", updated["last_name"])

	status, raw = c.do(http.MethodGet, "/api/v1/patients/?search=JAN", nil)
	require.Equal(t, http.StatusOK, status)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(raw, &found))
	assert.Len(t, found, 1)

	status, _ = c.do(http.MethodGet, "/api/v1/patients/?search=ja", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = c.do(http.MethodGet, "/api/v1/patients/?skip=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, raw = c.do(http.MethodGet, "/api/v1/patients/?skip=0&limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &found))
	assert.Len(t, found, 1)

	status, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/patients/%d", id), nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/patients/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecords_NotFoundVariants(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := authenticated(t, srv)

	status, raw := c.do(http.MethodGet, "/api/v1/patients/42/records/", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Patient not found", decode(t, raw)["detail"])

	status, raw = c.do(http.MethodPut, "/api/v1/records/42", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Health record not found", decode(t, raw)["detail"])

	status, _ = c.do(http.MethodDelete, "/api/v1/records/42", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuth_MeAndLogout(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := authenticated(t, srv)

	status, raw := c.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	me := decode(t, raw)
	assert.Equal(t, "alice@example.com", me["email"])
	assert.NotNil(t, me["last_login"])

	status, _ = c.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_RegisterValidation(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := &client{t: t, base: srv.URL}

	status, _ := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "bob@example.com", "full_name": "Bob", "password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "not-an-email", "full_name": "Bob", "password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestAuth_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{RPS: 0.001, Burst: 2}
	srv := newTestServer(t, cfg)
	c := &client{t: t, base: srv.URL}

	var last int
	for i := 0; i < 3; i++ {
		last, _ = c.login("nobody@example.com", "password123")
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t, testConfig())
	c := &client{t: t, base: srv.URL}

	status, raw := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	snap := decode(t, raw)
	assert.Equal(t, "0.1.0", snap["version"])
	components := snap["components"].(map[string]any)
	assert.Contains(t, components, "database")
	assert.Contains(t, components, "system")
	assert.Equal(t, "healthy", components["database"].(map[string]any)["status"])

	status, raw = c.do(http.MethodGet, "/health/check", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", decode(t, raw)["status"])

	status, raw = c.do(http.MethodGet, "/health/detailed", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, decode(t, raw), "runtime")

	status, raw = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "nexus_http_requests_total")
}
