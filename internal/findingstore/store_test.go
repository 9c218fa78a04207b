package findingstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

func newFinding(id, code string) models.Finding {
	return models.Finding{
		Kind:        models.ResourceEBSVolume,
		ResourceID:  id,
		Region:      "us-east-1",
		FindingCode: code,
		Severity:    models.SeverityHigh,
		ObservedAt:  time.Now().UTC(),
	}
}

func TestAdd_Deduplicates(t *testing.T) {
	s := New()
	s.Add(newFinding("vol-1", "UNATTACHED_EBS"))
	s.Add(newFinding("vol-1", "UNATTACHED_EBS"))

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("want 1 finding after duplicate add, got %d", len(all))
	}
}

func TestAdd_DifferentCodeSameResourceNotDeduped(t *testing.T) {
	s := New()
	s.Add(newFinding("vol-1", "UNATTACHED_EBS"))
	s.Add(newFinding("vol-1", "OLD_SNAPSHOT"))

	if len(s.All()) != 2 {
		t.Fatalf("want 2 distinct findings, got %d", len(s.All()))
	}
}

func TestAll_PreservesInsertionOrder(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Add(newFinding(fmt.Sprintf("vol-%d", i), "UNATTACHED_EBS"))
	}
	all := s.All()
	for i, f := range all {
		want := fmt.Sprintf("vol-%d", i)
		if f.ResourceID != want {
			t.Errorf("position %d: ResourceID = %q; want %q", i, f.ResourceID, want)
		}
	}
}

func TestAdd_CapsAtMaxFindings(t *testing.T) {
	s := New()
	for i := 0; i < maxFindings+10; i++ {
		s.Add(newFinding(fmt.Sprintf("vol-%d", i), "UNATTACHED_EBS"))
	}
	if len(s.All()) != maxFindings {
		t.Fatalf("len(All()) = %d; want %d", len(s.All()), maxFindings)
	}
	if s.DroppedCount() != 10 {
		t.Fatalf("DroppedCount() = %d; want 10", s.DroppedCount())
	}
}

func TestTotalSavings(t *testing.T) {
	s := New()
	f1 := newFinding("vol-1", "UNATTACHED_EBS")
	f1.EstimatedMonthlySavings = 10.5
	f2 := newFinding("vol-2", "UNATTACHED_EBS")
	f2.EstimatedMonthlySavings = 4.5
	s.Add(f1)
	s.Add(f2)

	if got := s.TotalSavings(); got != 15.0 {
		t.Errorf("TotalSavings() = %.2f; want 15.00", got)
	}
}

func TestCount_BySeverity(t *testing.T) {
	s := New()
	high := newFinding("vol-1", "UNATTACHED_EBS")
	high.Severity = models.SeverityHigh
	low := newFinding("vol-2", "OLD_SNAPSHOT")
	low.Severity = models.SeverityLow
	s.Add(high)
	s.Add(low)

	if got := s.Count(models.SeverityHigh); got != 1 {
		t.Errorf("Count(HIGH) = %d; want 1", got)
	}
	if got := s.Count(models.SeverityLow); got != 1 {
		t.Errorf("Count(LOW) = %d; want 1", got)
	}
	if got := s.Count(models.SeverityCritical); got != 0 {
		t.Errorf("Count(CRITICAL) = %d; want 0", got)
	}
}

func TestGroupByKind(t *testing.T) {
	s := New()
	s.Add(newFinding("vol-1", "UNATTACHED_EBS"))
	ec2 := models.Finding{Kind: models.ResourceEC2Instance, ResourceID: "i-1", FindingCode: "STOPPED_EC2_INSTANCE"}
	s.Add(ec2)

	groups := s.GroupByKind()
	if len(groups[models.ResourceEBSVolume]) != 1 {
		t.Errorf("EBS group size = %d; want 1", len(groups[models.ResourceEBSVolume]))
	}
	if len(groups[models.ResourceEC2Instance]) != 1 {
		t.Errorf("EC2 group size = %d; want 1", len(groups[models.ResourceEC2Instance]))
	}
}

func TestAdd_ConcurrentWritersSafe(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(newFinding(fmt.Sprintf("vol-%d", i), "UNATTACHED_EBS"))
		}(i)
	}
	wg.Wait()

	if len(s.All()) != 50 {
		t.Fatalf("len(All()) = %d; want 50", len(s.All()))
	}
}
