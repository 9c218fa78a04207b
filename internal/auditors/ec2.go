package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

const idleInstanceAge = 7 * 24 * time.Hour

// EC2Auditor covers EC2_INSTANCE: STOPPED_EC2_INSTANCE and IDLE_EC2_INSTANCE.
type EC2Auditor struct{}

func (a *EC2Auditor) Name() string { return "ec2" }

func (a *EC2Auditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	pages, err := client.DescribeInstances(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, page := range pages {
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				select {
				case <-ctx.Done():
					return summary, ctx.Err()
				default:
				}

				summary.TotalResources++
				state := string(inst.State.Name)
				id := aws.ToString(inst.InstanceId)

				switch state {
				case string(ec2types.InstanceStateNameStopped):
					summary.StoppedCount++
					store.Add(models.Finding{
						Kind:                    models.ResourceEC2Instance,
						ResourceID:              id,
						FindingCode:             "STOPPED_EC2_INSTANCE",
						Severity:                models.SeverityLow,
						Description:             "EC2 instance is stopped but still accrues EBS storage cost",
						Recommendation:          "Terminate the instance if it is no longer needed, or snapshot and delete its volumes",
						EstimatedMonthlySavings: 2.00 * 30,
						ObservedAt:              now,
					})
				case string(ec2types.InstanceStateNameRunning):
					summary.RunningCount++
					if inst.LaunchTime != nil && now.Sub(*inst.LaunchTime) > idleInstanceAge && !hasUserInitiatedShutdownTag(inst.Tags) {
						store.Add(models.Finding{
							Kind:                    models.ResourceEC2Instance,
							ResourceID:              id,
							FindingCode:             "IDLE_EC2_INSTANCE",
							Severity:                models.SeverityMedium,
							Description:             "EC2 instance has been running for more than 7 days without an explicit retention tag",
							Recommendation:          "Confirm the instance is still needed; stop or terminate it otherwise",
							EstimatedMonthlySavings: 5.00 * 30,
							ObservedAt:              now,
						})
					}
				}
			}
		}
	}

	return summary, nil
}

// hasUserInitiatedShutdownTag reports whether the instance carries a tag
// marking it as intentionally long-running, exempting it from the idle
// check.
func hasUserInitiatedShutdownTag(tags []ec2types.Tag) bool {
	for _, t := range tags {
		if aws.ToString(t.Key) == "user-initiated-shutdown" {
			return true
		}
	}
	return false
}
