package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics exposes Prometheus observability primitives for wattsplit.
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	statementsComputed prometheus.Counter
	exports            *prometheus.CounterVec
	tenantCount        prometheus.Gauge
}

// NewMetrics registers and returns Prometheus metrics for telemetry.
func NewMetrics() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wattsplit_http_requests_total",
		Help: "Counts HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wattsplit_http_request_duration_seconds",
		Help:    "HTTP request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	statementsComputed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wattsplit_statements_computed_total",
		Help: "Counts allocation statements computed.",
	})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wattsplit_exports_total",
		Help: "Counts export attempts by format and outcome.",
	}, []string{"format", "status"})

	tenantCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wattsplit_tenants",
		Help: "Number of tenant readings currently held in the store.",
	})

	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		statementsComputed,
		exports,
		tenantCount,
	)

	return &Metrics{
		httpRequests:       httpRequests,
		httpDuration:       httpDuration,
		statementsComputed: statementsComputed,
		exports:            exports,
		tenantCount:        tenantCount,
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// StatementComputed records one allocation run.
func (m *Metrics) StatementComputed() {
	if m == nil {
		return
	}
	m.statementsComputed.Inc()
}

// ExportAttempt records an export outcome ("ok" or "error") per format.
func (m *Metrics) ExportAttempt(format, status string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, status).Inc()
}

// SetTenantCount tracks the store size.
func (m *Metrics) SetTenantCount(n int) {
	if m == nil {
		return
	}
	m.tenantCount.Set(float64(n))
}

var Module = fx.Module("telemetry",
	fx.Provide(NewMetrics),
)
