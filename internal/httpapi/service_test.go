package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/config"
	"github.com/nimbusaudit/cloudpulse/internal/models"
	"github.com/nimbusaudit/cloudpulse/internal/telemetry"
	"github.com/nimbusaudit/cloudpulse/internal/visitors"
)

func newTestService() *Service {
	cfg := config.Config{
		Env:                "development",
		AWSRegion:          "us-east-1",
		FargateCPUPrice:    0.04048,
		FargateMemoryPrice: 0.00445,
	}
	sampler := telemetry.New(5*time.Second, models.AlertThresholds{CPUPercent: 80, MemoryPercent: 85, DiskPercent: 90}, nil)
	tracker := visitors.NewTracker(visitors.NewMemoryCounter(), false)
	return New(cfg, nil, nil, sampler, nil, tracker)
}

func TestHandleCostIsDeterministic(t *testing.T) {
	s := newTestService()
	req := httptest.NewRequest(http.MethodGet, "/api/cost?cpu=2&memory=4", nil)
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); !strings.Contains(got, "\"hourly\":") {
		t.Fatalf("body = %s, want hourly field", got)
	}
}

func TestHandleCostRejectsMalformedParam(t *testing.T) {
	s := newTestService()
	req := httptest.NewRequest(http.MethodGet, "/api/cost?cpu=notanumber", nil)
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAuditEndpointsReturn503WithoutOrchestrator(t *testing.T) {
	s := newTestService()

	for _, path := range []string{"/api/aws/audit", "/api/aws/audit/structured", "/api/aws/audit/quick"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, rec.Code)
		}
	}
}

func TestHandleHealthAlwaysReturns200(t *testing.T) {
	s := newTestService()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleVisitorsIncrementsOnIndexVisit(t *testing.T) {
	s := newTestService()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	req2 := httptest.NewRequest(http.MethodGet, "/api/visitors", nil)
	rec2 := httptest.NewRecorder()
	s.Router().ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec2.Code)
	}
	if !strings.Contains(rec2.Body.String(), "\"total\":1") {
		t.Fatalf("body = %s, want total:1", rec2.Body.String())
	}
}

func TestHandleStatusReportsBackendAvailability(t *testing.T) {
	s := newTestService()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "\"aws_audit_available\":false") {
		t.Fatalf("body = %s, want aws_audit_available:false", rec.Body.String())
	}
}
