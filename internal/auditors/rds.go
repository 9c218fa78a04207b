package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// RDSAuditor covers RDS_INSTANCE: PUBLIC_RDS and STOPPED_RDS.
type RDSAuditor struct{}

func (a *RDSAuditor) Name() string { return "rds" }

func (a *RDSAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeDBInstances(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, db := range out.DBInstances {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		id := aws.ToString(db.DBInstanceIdentifier)

		if aws.ToBool(db.PubliclyAccessible) {
			summary.PublicCount++
			store.Add(models.Finding{
				Kind:           models.ResourceRDSInstance,
				ResourceID:     id,
				FindingCode:    "PUBLIC_RDS",
				Severity:       models.SeverityHigh,
				Description:    "RDS instance is publicly accessible",
				Recommendation: "Disable public accessibility and use a bastion or VPN for access",
				ObservedAt:     now,
			})
		} else {
			summary.PrivateCount++
		}

		if aws.ToString(db.DBInstanceStatus) == "stopped" {
			summary.StoppedCount++
			store.Add(models.Finding{
				Kind:           models.ResourceRDSInstance,
				ResourceID:     id,
				FindingCode:    "STOPPED_RDS",
				Severity:       models.SeverityMedium,
				Description:    "RDS instance is stopped but still accrues storage cost",
				Recommendation: "Take a final snapshot and delete the instance if it is no longer needed",
				ObservedAt:     now,
			})
		} else {
			summary.RunningCount++
		}
	}

	return summary, nil
}
