package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// VPCAuditor covers VPC: DEFAULT_VPC_IN_USE.
type VPCAuditor struct{}

func (a *VPCAuditor) Name() string { return "vpc" }

func (a *VPCAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeVpcs(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, vpc := range out.Vpcs {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		id := aws.ToString(vpc.VpcId)

		if aws.ToBool(vpc.IsDefault) {
			store.Add(models.Finding{
				Kind:           models.ResourceVPC,
				ResourceID:     id,
				FindingCode:    "DEFAULT_VPC_IN_USE",
				Severity:       models.SeverityInfo,
				Description:    "The account's default VPC is still present",
				Recommendation: "Consider migrating workloads to a purpose-built VPC and removing the default",
				ObservedAt:     now,
			})
		}
	}

	return summary, nil
}
