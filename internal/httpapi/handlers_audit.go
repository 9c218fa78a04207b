package httpapi

import (
	"net/http"

	"github.com/nimbusaudit/cloudpulse/internal/httputil"
)

// handleAuditFull returns the complete Report. No caching: each request
// invokes a fresh RunFull.
func (s *Service) handleAuditFull(w http.ResponseWriter, r *http.Request) {
	if s.orch == nil {
		httputil.ServiceUnavailable(w, "aws account not configured")
		return
	}
	s.recordAudit("full", func() { writeJSON(w, http.StatusOK, s.orch.RunFull(r.Context())) })
}

// handleAuditStructured returns the dashboard-feed StructuredReport.
// Concurrent requests may be coalesced onto a single in-flight run but
// never served a stale completed one — RunStructured already enforces that.
func (s *Service) handleAuditStructured(w http.ResponseWriter, r *http.Request) {
	if s.orch == nil {
		httputil.ServiceUnavailable(w, "aws account not configured")
		return
	}
	s.recordAudit("structured", func() { writeJSON(w, http.StatusOK, s.orch.RunStructured(r.Context())) })
}

// handleAuditQuick returns the cost-only QuickReport.
func (s *Service) handleAuditQuick(w http.ResponseWriter, r *http.Request) {
	if s.orch == nil {
		httputil.ServiceUnavailable(w, "aws account not configured")
		return
	}
	s.recordAudit("quick", func() { writeJSON(w, http.StatusOK, s.orch.RunQuick(r.Context())) })
}

// recordAudit times run and records it against the audit metrics before
// returning; run is expected to write its own response.
func (s *Service) recordAudit(mode string, run func()) {
	if s.metrics == nil {
		run()
		return
	}
	timer := newTimer()
	run()
	s.metrics.AuditDuration.WithLabelValues(mode).Observe(timer.elapsed())
	s.metrics.AuditRunsTotal.WithLabelValues(mode, "completed").Inc()
}
