package httpapi

import (
	"net/http"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// handleIndex renders the dashboard shell and records a visit.
func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.visitors != nil {
		s.visitors.RecordVisit(r.Context(), s.clientIP(r), r.UserAgent())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head><title>cloudpulse</title></head>
<body>
<h1>cloudpulse</h1>
<p>Live host telemetry and AWS cost/security audit dashboard.</p>
<ul>
<li><a href="/api/real-metrics">/api/real-metrics</a></li>
<li><a href="/api/system/alerts">/api/system/alerts</a></li>
<li><a href="/api/aws/audit/quick">/api/aws/audit/quick</a></li>
<li><a href="/health">/health</a></li>
</ul>
</body>
</html>`

// handleHealth reports aggregate health: healthy/degraded/critical based on
// the sampler's active alerts, plus the current snapshot and per-check booleans.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	type checks struct {
		TelemetryRunning bool `json:"telemetry_running"`
		RedisConnected   bool `json:"redis_connected"`
		AWSConfigured    bool `json:"aws_audit_available"`
	}

	var snap models.Snapshot
	var alerts []models.Alert
	if s.sampler != nil {
		snap = s.sampler.Snapshot()
		alerts = s.sampler.Alerts()
	}

	status := "healthy"
	for _, a := range alerts {
		if a.Level == "CRITICAL" {
			status = "critical"
			break
		}
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"metrics": snap,
		"checks": checks{
			TelemetryRunning: s.sampler != nil,
			RedisConnected:   s.visitors != nil && s.visitors.RedisConnected(),
			AWSConfigured:    s.orch != nil,
		},
		"alerts":    alerts,
		"timestamp": time.Now().UTC(),
	})
}

// handleRealMetrics returns the current telemetry snapshot augmented with
// backend availability flags.
func (s *Service) handleRealMetrics(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if s.sampler != nil {
		snap = s.sampler.Snapshot()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":            snap,
		"redis_connected":     s.visitors != nil && s.visitors.RedisConnected(),
		"aws_audit_available": s.orch != nil,
	})
}

// handleMetricsHistory returns the last-60 tail of each ring buffer.
func (s *Service) handleMetricsHistory(w http.ResponseWriter, r *http.Request) {
	var history models.History
	if s.sampler != nil {
		history = s.sampler.History(0)
	}
	writeJSON(w, http.StatusOK, history)
}

// handleSystemAlerts returns the current alert list plus the thresholds
// that produced it.
func (s *Service) handleSystemAlerts(w http.ResponseWriter, r *http.Request) {
	var alerts []models.Alert
	var thresholds models.AlertThresholds
	if s.sampler != nil {
		alerts = s.sampler.Alerts()
		thresholds = s.sampler.Snapshot().Thresholds
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp":  time.Now().UTC(),
		"alerts":     alerts,
		"count":      len(alerts),
		"thresholds": thresholds,
	})
}
