// Package httpapi implements the gorilla/mux router exposing cloudpulse's
// dashboard, telemetry, visitor, and audit endpoints, with handlers as
// methods on one Service struct.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nimbusaudit/cloudpulse/internal/audit"
	"github.com/nimbusaudit/cloudpulse/internal/config"
	"github.com/nimbusaudit/cloudpulse/internal/httputil"
	"github.com/nimbusaudit/cloudpulse/internal/logging"
	cpmetrics "github.com/nimbusaudit/cloudpulse/internal/metrics"
	"github.com/nimbusaudit/cloudpulse/internal/telemetry"
	"github.com/nimbusaudit/cloudpulse/internal/visitors"
)

// Service holds every dependency cloudpulse's HTTP handlers need. All
// fields are injected at construction; there is no package-level state.
type Service struct {
	cfg       config.Config
	log       *logging.Logger
	metrics   *cpmetrics.Metrics
	sampler   *telemetry.Sampler
	orch      *audit.Orchestrator
	visitors  *visitors.Tracker
	startedAt time.Time
}

// New builds a Service. orch may be nil when no AWS account was configured
// at startup — audit endpoints then respond 503 rather than panicking.
func New(cfg config.Config, log *logging.Logger, m *cpmetrics.Metrics, sampler *telemetry.Sampler, orch *audit.Orchestrator, tracker *visitors.Tracker) *Service {
	return &Service{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		sampler:   sampler,
		orch:      orch,
		visitors:  tracker,
		startedAt: time.Now().UTC(),
	}
}

// Router builds the complete mux.Router for every endpoint this service exposes.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/real-metrics", s.handleRealMetrics).Methods(http.MethodGet)
	r.HandleFunc("/api/metrics/history", s.handleMetricsHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/metrics/live", s.handleMetricsLive).Methods(http.MethodGet)
	r.HandleFunc("/api/system/alerts", s.handleSystemAlerts).Methods(http.MethodGet)
	r.HandleFunc("/api/cost", s.handleCost).Methods(http.MethodGet)
	r.HandleFunc("/api/visitors", s.handleVisitors).Methods(http.MethodGet)
	r.HandleFunc("/api/aws/audit", s.handleAuditFull).Methods(http.MethodGet)
	r.HandleFunc("/api/aws/audit/structured", s.handleAuditStructured).Methods(http.MethodGet)
	r.HandleFunc("/api/aws/audit/quick", s.handleAuditQuick).Methods(http.MethodGet)
	r.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// instrument records per-path request counts and latency. It wraps every
// route; the write status is captured via a small ResponseWriter shim.
func (s *Service) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := r.URL.Path
		s.metrics.HTTPRequestsTotal.WithLabelValues(path, strconv.Itoa(sw.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush passes through to the wrapped writer so streaming handlers keep
// working behind instrument.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Service) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	return r.RemoteAddr
}

// writeJSON is a thin alias kept local to httpapi for readability at call sites.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	httputil.WriteJSON(w, status, v)
}
