// Package metrics wires cloudpulse's Prometheus collectors, following the
// pack's infrastructure/metrics constructor-with-registry shape but scoped
// to the handful of series an audit/telemetry service actually emits.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every Prometheus collector cloudpulse registers.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuditRunsTotal      *prometheus.CounterVec
	AuditDuration       *prometheus.HistogramVec
	AuditFindingsTotal  *prometheus.GaugeVec
	TelemetrySamples    prometheus.Counter
	VisitorsTotal       prometheus.Gauge
}

// New registers every collector against the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers every collector against registerer, used by
// tests to avoid colliding with the global default registry.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudpulse_http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloudpulse_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"path"},
		),
		AuditRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudpulse_audit_runs_total",
				Help: "Total number of audit orchestrator runs, by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		AuditDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloudpulse_audit_duration_seconds",
				Help:    "Audit orchestrator run duration in seconds.",
				Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"mode"},
		),
		AuditFindingsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudpulse_audit_findings",
				Help: "Findings in the most recent audit run, by severity.",
			},
			[]string{"severity"},
		),
		TelemetrySamples: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cloudpulse_telemetry_samples_total",
				Help: "Total number of telemetry sampling ticks taken.",
			},
		),
		VisitorsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cloudpulse_visitors_total",
				Help: "Current visitor_count value.",
			},
		),
	}

	registerer.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuditRunsTotal,
		m.AuditDuration,
		m.AuditFindingsTotal,
		m.TelemetrySamples,
		m.VisitorsTotal,
	)

	return m
}
