package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// ElasticIPAuditor covers ELASTIC_IP: UNATTACHED_EIP.
type ElasticIPAuditor struct{}

func (a *ElasticIPAuditor) Name() string { return "elastic_ip" }

func (a *ElasticIPAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeAddresses(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, addr := range out.Addresses {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		id := aws.ToString(addr.AllocationId)
		if id == "" {
			id = aws.ToString(addr.PublicIp)
		}

		if aws.ToString(addr.InstanceId) == "" && aws.ToString(addr.NetworkInterfaceId) == "" {
			summary.UnattachedCount++
			store.Add(models.Finding{
				Kind:                    models.ResourceElasticIP,
				ResourceID:              id,
				FindingCode:             "UNATTACHED_EIP",
				Severity:                models.SeverityHigh,
				Description:             "Elastic IP is not attached to an instance or network interface",
				Recommendation:          "Release the address if it is no longer needed",
				EstimatedMonthlySavings: 3.60,
				ObservedAt:              now,
			})
		} else {
			summary.AttachedCount++
		}
	}

	return summary, nil
}
