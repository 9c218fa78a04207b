package models

// ServiceSummary holds flat per-service resource counters. It never
// references a Finding; cross-linking a Finding to its service is done by
// (Kind, ResourceID) alone, never by embedding.
//
// Counters left at zero value simply mean "not applicable to this service"
// (e.g. EncryptedCount is meaningless for EC2 instances).
type ServiceSummary struct {
	// TotalResources is the number of resources this service enumerated.
	TotalResources int `json:"total_resources"`

	// Error is set when enumeration failed outright (AUTH/PERMISSION or
	// exhausted retries on THROTTLED/TRANSIENT). When non-empty, the other
	// counters are zero and the service contributed no findings.
	Error string `json:"error,omitempty"`

	RunningCount    int `json:"running_count,omitempty"`
	StoppedCount    int `json:"stopped_count,omitempty"`
	AttachedCount   int `json:"attached_count,omitempty"`
	UnattachedCount int `json:"unattached_count,omitempty"`
	PublicCount     int `json:"public_count,omitempty"`
	PrivateCount    int `json:"private_count,omitempty"`
	EncryptedCount  int `json:"encrypted_count,omitempty"`
	UnencryptedCount int `json:"unencrypted_count,omitempty"`
}

// Recommendation groups findings by ResourceKind into one actionable entry.
type Recommendation struct {
	Kind                    ResourceKind `json:"kind"`
	TotalIssues             int          `json:"total_issues"`
	CriticalIssues          int          `json:"critical_issues"`
	EstimatedMonthlySavings float64      `json:"estimated_savings"`
	Actions                 []string     `json:"actions"`
}

// ReportMetadata carries the identity and timing of one audit run.
type ReportMetadata struct {
	AccountID  string    `json:"account_id"`
	Region     string    `json:"region"`
	StartedAt  string    `json:"started_at"`
	FinishedAt string    `json:"finished_at"`
	Mode       string    `json:"mode"` // "full", "quick", or "cancelled"
}

// ReportSummary aggregates counts and totals across all findings in a Report.
type ReportSummary struct {
	TotalResources            int     `json:"total_resources"`
	TotalFindings              int     `json:"total_findings"`
	CriticalFindings           int     `json:"critical_findings"`
	EstimatedMonthlySavings    float64 `json:"estimated_monthly_savings"`
}

// Report is the root aggregate of one AuditOrchestrator.RunFull invocation.
// It is immutable once the orchestrator returns.
type Report struct {
	Metadata        ReportMetadata             `json:"metadata"`
	Services        map[string]ServiceSummary  `json:"services"`
	Findings        []Finding                  `json:"findings"`
	Summary         ReportSummary              `json:"summary"`
	Recommendations []Recommendation           `json:"recommendations"`
	Warnings        []string                   `json:"warnings,omitempty"`
}

// StructuredReport is the dashboard-oriented projection of a Report:
// the same data partitioned by service family for easy rendering.
type StructuredReport struct {
	Metadata ReportMetadata            `json:"metadata"`
	Services map[string]ServiceDetail   `json:"services"`
	Summary  ReportSummary              `json:"summary"`
}

// ServiceDetail pairs one service's summary with the findings that belong
// to it, for StructuredReport's per-service partitioning.
type ServiceDetail struct {
	Summary  ServiceSummary `json:"summary"`
	Findings []Finding      `json:"findings"`
}

// QuickFindingBucket is one finding_code bucket in a QuickReport.
type QuickFindingBucket struct {
	FindingCode  string  `json:"finding_code"`
	Count        int     `json:"count"`
	CostPerMonth float64 `json:"cost_per_month"`
}

// QuickReport is the cost-only projection produced by RunQuick, limited to
// the EC2/EBS/Elastic IP auditors and findings with nonzero savings.
type QuickReport struct {
	Metadata             ReportMetadata       `json:"metadata"`
	CriticalItems        []QuickFindingBucket `json:"critical_items"`
	EstimatedMonthlyCost float64              `json:"estimated_monthly_cost"`
}
