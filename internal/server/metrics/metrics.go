// Package metrics holds the Prometheus instruments of the report API.
package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultSuccess    = "success"
	ResultRejected   = "rejected"
	ResultMismatch   = "mismatch"
	ResultRestricted = "restricted"
	ResultDenied     = "denied"
	ResultExpired    = "expired"
	ResultInvalid    = "invalid"
	ResultError      = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Session metrics
	LoginAttemptsTotal *prometheus.CounterVec
	TokenRefreshTotal  *prometheus.CounterVec

	// Store metrics
	StoreCallDuration *prometheus.HistogramVec
	StoreCallErrors   *prometheus.CounterVec
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escc_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escc_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escc_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"result"},
		),
		TokenRefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escc_token_refresh_total",
				Help: "Refresh token exchanges by outcome",
			},
			[]string{"result"},
		),
		StoreCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escc_store_call_duration_seconds",
				Help:    "Stored procedure round trip duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"procedure"},
		),
		StoreCallErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escc_store_call_errors_total",
				Help: "Failed stored procedure calls",
			},
			[]string{"procedure"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginAttemptsTotal,
		m.TokenRefreshTotal,
		m.StoreCallDuration,
		m.StoreCallErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// WatchDB exports connection pool statistics of db.
func (m *Metrics) WatchDB(db *sql.DB, name string) {
	m.registry.MustRegister(collectors.NewDBStatsCollector(db, name))
}

// ObserveStoreCall records the duration and outcome of one procedure call.
func (m *Metrics) ObserveStoreCall(procedure string, started time.Time, err error) {
	m.StoreCallDuration.WithLabelValues(procedure).Observe(time.Since(started).Seconds())
	if err != nil {
		m.StoreCallErrors.WithLabelValues(procedure).Inc()
	}
}

func (m *Metrics) LoginAttempt(result string) {
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) TokenRefresh(result string) {
	m.TokenRefreshTotal.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
