package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

func sampleReport() models.Report {
	return models.Report{
		Metadata: models.ReportMetadata{AccountID: "111111111111", Region: "us-east-1", Mode: "full"},
		Findings: []models.Finding{
			{Kind: models.ResourceEBSVolume, ResourceID: "vol-1", FindingCode: "UNATTACHED_EBS", Severity: models.SeverityHigh, Recommendation: "delete it", EstimatedMonthlySavings: 150},
			{Kind: models.ResourceS3Bucket, ResourceID: "b1", FindingCode: "PUBLIC_S3_BUCKET", Severity: models.SeverityCritical, Recommendation: "lock it down", EstimatedMonthlySavings: 0},
		},
		Summary: models.ReportSummary{TotalFindings: 2, CriticalFindings: 1, EstimatedMonthlySavings: 150},
	}
}

func TestJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReport()); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), "UNATTACHED_EBS") {
		t.Fatalf("output missing finding code: %s", buf.String())
	}
	var got models.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Findings) != 2 || got.Findings[0].FindingCode != "UNATTACHED_EBS" {
		t.Fatalf("round-tripped findings = %+v", got.Findings)
	}
	if got.Summary.EstimatedMonthlySavings != 150 {
		t.Fatalf("round-tripped savings = %v, want 150", got.Summary.EstimatedMonthlySavings)
	}
}

func TestCSVHasOneRowPerFinding(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleReport()); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 { // header + 2 findings
		t.Fatalf("len(lines) = %d, want 3: %s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "severity,kind,resource_id,finding,recommendation,estimated_savings") {
		t.Fatalf("header = %q", lines[0])
	}
}

func TestSummaryShowsSeverityBreakdownAndTopFindings(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, sampleReport())
	out := buf.String()

	if !strings.Contains(out, "Total Findings:        2") {
		t.Errorf("summary missing total findings: %s", out)
	}
	if !strings.Contains(out, "Severity Breakdown") || !strings.Contains(out, "CRITICAL    1") {
		t.Errorf("summary missing severity breakdown: %s", out)
	}
	if !strings.Contains(out, "vol-1") {
		t.Errorf("summary missing top finding: %s", out)
	}
}

func TestSummaryHandlesNoFindings(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, models.Report{Metadata: models.ReportMetadata{AccountID: "a"}})
	if buf.Len() == 0 {
		t.Fatal("expected non-empty summary even with no findings")
	}
}
