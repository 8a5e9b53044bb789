package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsRegistry holds all Prometheus metrics for the Nexus API
type MetricsRegistry struct {
	gatherer prometheus.Gatherer

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	PatientsCreatedTotal      prometheus.Counter
	HealthRecordsCreatedTotal prometheus.Counter
	LoginAttemptsTotal        *prometheus.CounterVec
	ComponentHealth           *prometheus.GaugeVec
}

// NewMetricsRegistry registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry(); the server passes prometheus.NewRegistry() too and
// adds the Go and process collectors.
func NewMetricsRegistry(reg *prometheus.Registry) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		gatherer: reg,

		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nexus_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Database Metrics
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_db_queries_total",
				Help: "Total repository operations by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_db_query_duration_seconds",
				Help:    "Repository operation time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"entity", "operation"},
		),
		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nexus_db_connections",
				Help: "Current number of database connections",
			},
			[]string{"state"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_cache_hits_total",
				Help: "Total cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_cache_misses_total",
				Help: "Total cache misses by cache name",
			},
			[]string{"cache"},
		),

		// Business Metrics
		PatientsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_patients_created_total",
				Help: "Total patients created",
			},
		),
		HealthRecordsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_health_records_created_total",
				Help: "Total health records created",
			},
		),
		LoginAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_login_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		ComponentHealth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nexus_component_healthy",
				Help: "1 if the component was healthy at the last health computation, 0 otherwise",
			},
			[]string{"component"},
		),
	}
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors.
func RegisterRuntimeCollectors(reg *prometheus.Registry) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveDBOperation is the hook repositories call after each operation.
func (m *MetricsRegistry) ObserveDBOperation(entity, operation string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.DBQueriesTotal.WithLabelValues(entity, operation, outcome).Inc()
	m.DBQueryDuration.WithLabelValues(entity, operation).Observe(seconds)
}
