// Package auditors implements one ServiceAuditor per AWS service family.
// Ten families (the closed finding table) emit findings; the rest only
// contribute resource counts to a Report's per-service summary.
package auditors

import (
	"context"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// Auditor enumerates one AWS service family, writes any findings into
// store, and returns a per-service summary. Implementations must not
// share mutable state with one another; the orchestrator runs them
// concurrently.
type Auditor interface {
	Name() string
	Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error)
}

// errorSummary builds the ServiceSummary an Auditor returns when enumeration
// fails outright (AUTH/PERMISSION or retries exhausted). Per spec, the
// auditor records the message and contributes no findings, rather than
// failing the whole run.
func errorSummary(err error) models.ServiceSummary {
	return models.ServiceSummary{Error: err.Error()}
}

// skippedFinding builds an INFO finding marking a service as skipped for an
// AUTH or PERMISSION error. No auditor in this package calls it: a failed
// enumeration is recorded only through errorSummary and adds no finding.
func skippedFinding(kind models.ResourceKind, service string, now time.Time) models.Finding {
	return models.Finding{
		Kind:        kind,
		ResourceID:  service,
		FindingCode: "SERVICE_SKIPPED",
		Severity:    models.SeverityInfo,
		Description: "audit of " + service + " skipped: insufficient permissions or credentials",
		ObservedAt:  now,
	}
}

// Registry returns every Auditor the orchestrator runs for RunFull and
// RunStructured, as an ordered slice rather than a map (ordering must be
// stable so recommendations read the same way run
// to run).
func Registry() []Auditor {
	return []Auditor{
		&EC2Auditor{},
		&EBSVolumeAuditor{},
		&EBSSnapshotAuditor{},
		&ElasticIPAuditor{},
		&SecurityGroupAuditor{},
		&LambdaAuditor{},
		&S3Auditor{},
		&IAMAuditor{},
		&RDSAuditor{},
		&VPCAuditor{},

		&DynamoDBAuditor{},
		&KMSAuditor{},
		&CloudFrontAuditor{},
		&Route53Auditor{},
		&APIGatewayAuditor{},
		&SNSAuditor{},
		&SQSAuditor{},
		&EventBridgeAuditor{},
		&CloudWatchAuditor{},
		&CloudFormationAuditor{},
		&ElastiCacheAuditor{},
		&EFSAuditor{},
		&ECSAuditor{},
		&BatchAuditor{},
	}
}

// QuickRegistry returns the EC2/EBS/Elastic IP subset RunQuick invokes.
func QuickRegistry() []Auditor {
	return []Auditor{
		&EC2Auditor{},
		&EBSVolumeAuditor{},
		&ElasticIPAuditor{},
	}
}
