// Package export renders a Report in three output formats: JSON (ground
// truth), CSV (findings only), and a compact text summary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// JSON writes report as indented JSON, the canonical/ground-truth format.
func JSON(w io.Writer, report models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteJSONFile serializes report as indented JSON to path, creating or
// overwriting the file.
func WriteJSONFile(path string, report models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}

// CSV writes one row per finding: severity, kind, resource_id, finding,
// recommendation, estimated_savings.
func CSV(w io.Writer, report models.Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"severity", "kind", "resource_id", "finding", "recommendation", "estimated_savings"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range report.Findings {
		row := []string{
			string(f.Severity),
			string(f.Kind),
			f.ResourceID,
			f.FindingCode,
			f.Recommendation,
			strconv.FormatFloat(f.EstimatedMonthlySavings, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// Summary renders a compact text view: header, totals, per-severity
// breakdown, and the top 5 findings ranked by EstimatedMonthlySavings.
func Summary(w io.Writer, report models.Report) {
	m, s := report.Metadata, report.Summary

	fmt.Fprintf(w, "Account:  %s\n", m.AccountID)
	fmt.Fprintf(w, "Region:   %s\n", m.Region)
	fmt.Fprintf(w, "Mode:     %s\n", m.Mode)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Findings:        %d\n", s.TotalFindings)
	fmt.Fprintf(w, "Est. Monthly Savings:  $%.2f\n", s.EstimatedMonthlySavings)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Severity Breakdown")
	for _, sev := range []models.Severity{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow} {
		fmt.Fprintf(w, "  %-10s  %d\n", string(sev), countSeverity(report.Findings, sev))
	}

	top := topFindingsBySavings(report.Findings, 5)
	if len(top) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top Findings by Savings")
	fmt.Fprintf(w, "  %-36s  %-24s  %-10s  %s\n", "RESOURCE ID", "KIND", "SEVERITY", "SAVINGS/MO")
	for _, f := range top {
		fmt.Fprintf(w, "  %-36s  %-24s  %-10s  $%.2f\n", f.ResourceID, string(f.Kind), string(f.Severity), f.EstimatedMonthlySavings)
	}
}

func countSeverity(findings []models.Finding, sev models.Severity) int {
	n := 0
	for _, f := range findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// topFindingsBySavings returns up to n findings ordered by
// EstimatedMonthlySavings descending; the input slice is not modified.
func topFindingsBySavings(findings []models.Finding, n int) []models.Finding {
	sorted := make([]models.Finding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EstimatedMonthlySavings > sorted[j].EstimatedMonthlySavings
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
