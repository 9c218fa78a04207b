package telemetry

import (
	"testing"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

func TestRingTailReturnsChronologicalOrder(t *testing.T) {
	r := newRing(4)
	base := time.Now()
	for i := 0; i < 4; i++ {
		r.append(base.Add(time.Duration(i)*time.Second), float64(i))
	}

	tail := r.tail(4)
	if len(tail) != 4 {
		t.Fatalf("len(tail) = %d, want 4", len(tail))
	}
	for i, p := range tail {
		if p.Value != float64(i) {
			t.Errorf("tail[%d].Value = %v, want %v", i, p.Value, i)
		}
	}
}

func TestRingWrapsAtCapacity(t *testing.T) {
	r := newRing(3)
	base := time.Now()
	for i := 0; i < 5; i++ {
		r.append(base.Add(time.Duration(i)*time.Second), float64(i))
	}

	tail := r.tail(3)
	want := []float64{2, 3, 4}
	if len(tail) != 3 {
		t.Fatalf("len(tail) = %d, want 3", len(tail))
	}
	for i, p := range tail {
		if p.Value != want[i] {
			t.Errorf("tail[%d].Value = %v, want %v", i, p.Value, want[i])
		}
	}
}

func TestRingTailClampsToAvailableSamples(t *testing.T) {
	r := newRing(720)
	r.append(time.Now(), 1)
	r.append(time.Now(), 2)

	tail := r.tail(60)
	if len(tail) != 2 {
		t.Fatalf("len(tail) = %d, want 2", len(tail))
	}
}

func TestAlertsBelowThresholdsIsEmpty(t *testing.T) {
	s := New(5*time.Second, models.AlertThresholds{CPUPercent: 80, MemoryPercent: 85, DiskPercent: 90}, nil)
	s.current = models.MetricsSample{CPUPercent: 10, MemoryPercent: 20, DiskPercent: 30}

	if alerts := s.Alerts(); len(alerts) != 0 {
		t.Fatalf("Alerts = %+v, want none", alerts)
	}
}

func TestAlertsWarningBelowHardCutoff(t *testing.T) {
	s := New(5*time.Second, models.AlertThresholds{CPUPercent: 80, MemoryPercent: 85, DiskPercent: 90}, nil)
	s.current = models.MetricsSample{CPUPercent: 85, MemoryPercent: 20, DiskPercent: 20}

	alerts := s.Alerts()
	if len(alerts) != 1 || alerts[0].Level != "WARNING" || alerts[0].Metric != "cpu_percent" {
		t.Fatalf("alerts = %+v", alerts)
	}
}

func TestAlertsCriticalAboveHardCutoff(t *testing.T) {
	s := New(5*time.Second, models.AlertThresholds{CPUPercent: 80, MemoryPercent: 85, DiskPercent: 90}, nil)
	s.current = models.MetricsSample{CPUPercent: 95, MemoryPercent: 97, DiskPercent: 91}

	alerts := s.Alerts()
	if len(alerts) != 3 {
		t.Fatalf("alerts = %+v, want 3", alerts)
	}
	for _, a := range alerts {
		if a.Level != "CRITICAL" {
			t.Errorf("alert %s level = %s, want CRITICAL", a.Metric, a.Level)
		}
	}
}

func TestAlertsDiskIsAlwaysCritical(t *testing.T) {
	s := New(5*time.Second, models.AlertThresholds{CPUPercent: 80, MemoryPercent: 85, DiskPercent: 90}, nil)
	s.current = models.MetricsSample{CPUPercent: 10, MemoryPercent: 10, DiskPercent: 91}

	alerts := s.Alerts()
	if len(alerts) != 1 || alerts[0].Level != "CRITICAL" || alerts[0].Metric != "disk_percent" {
		t.Fatalf("alerts = %+v", alerts)
	}
}

func TestSnapshotReflectsCurrent(t *testing.T) {
	s := New(5*time.Second, models.AlertThresholds{CPUPercent: 80, MemoryPercent: 85, DiskPercent: 90}, nil)
	s.current = models.MetricsSample{CPUPercent: 42}

	snap := s.Snapshot()
	if snap.CPUPercent != 42 {
		t.Fatalf("CPUPercent = %v, want 42", snap.CPUPercent)
	}
	if snap.Thresholds.CPUPercent != 80 {
		t.Fatalf("Thresholds.CPUPercent = %v, want 80", snap.Thresholds.CPUPercent)
	}
}

func TestHistoryDefaultsWindowSize(t *testing.T) {
	s := New(5*time.Second, models.AlertThresholds{}, nil)
	for i := 0; i < 100; i++ {
		s.cpuRing.append(time.Now(), float64(i))
	}

	h := s.History(0)
	if len(h.CPU) != defaultHistoryWindow {
		t.Fatalf("len(h.CPU) = %d, want %d", len(h.CPU), defaultHistoryWindow)
	}
}
