package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/httputil"
)

// costBreakdown is the deterministic Fargate cost projection /api/cost returns.
type costBreakdown struct {
	Hourly  float64 `json:"hourly"`
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// handleCost computes hourly = cpu*CPU_PRICE + memory*MEM_PRICE and its
// daily/monthly/yearly multiples.
func (s *Service) handleCost(w http.ResponseWriter, r *http.Request) {
	cpu, err := parseFloatParam(r, "cpu")
	if err != nil {
		httputil.BadRequest(w, "cpu must be a number")
		return
	}
	memory, err := parseFloatParam(r, "memory")
	if err != nil {
		httputil.BadRequest(w, "memory must be a number")
		return
	}

	hourly := cpu*s.cfg.FargateCPUPrice + memory*s.cfg.FargateMemoryPrice
	writeJSON(w, http.StatusOK, costBreakdown{
		Hourly:  hourly,
		Daily:   hourly * 24,
		Monthly: hourly * 24 * 30,
		Yearly:  hourly * 24 * 365,
	})
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// handleVisitors returns the running visit total and the last 10 visits,
// regardless of which counter backend is active.
func (s *Service) handleVisitors(w http.ResponseWriter, r *http.Request) {
	if s.visitors == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"total": 0, "recent": []interface{}{}})
		return
	}

	total, err := s.visitors.Count(r.Context())
	if err != nil {
		httputil.InternalError(w, "failed to read visitor count")
		return
	}
	if s.metrics != nil {
		s.metrics.VisitorsTotal.Set(float64(total))
	}

	recent := s.visitors.RecentVisits()
	if len(recent) > 10 {
		recent = recent[:10]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":           total,
		"recent":          recent,
		"redis_connected": s.visitors.RedisConnected(),
	})
}

// handleInfo is read-only process introspection: version, uptime, region.
func (s *Service) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":    "cloudpulse",
		"env":        s.cfg.Env,
		"aws_region": s.cfg.AWSRegion,
		"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleStatus summarizes backend availability for the dashboard's
// degraded-mode banner.
func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"aws_audit_available": s.orch != nil,
		"redis_connected":     s.visitors != nil && s.visitors.RedisConnected(),
		"telemetry_running":   s.sampler != nil,
		"started_at":          s.startedAt,
	})
}
