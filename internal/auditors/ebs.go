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

// EBSVolumeAuditor covers EBS_VOLUME: UNATTACHED_EBS.
type EBSVolumeAuditor struct{}

func (a *EBSVolumeAuditor) Name() string { return "ebs_volumes" }

func (a *EBSVolumeAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeVolumes(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, vol := range out.Volumes {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		id := aws.ToString(vol.VolumeId)

		if len(vol.Attachments) == 0 {
			summary.UnattachedCount++
		} else {
			summary.AttachedCount++
		}

		if vol.State == ec2types.VolumeStateAvailable && len(vol.Attachments) == 0 {
			sizeGB := float64(aws.ToInt32(vol.Size))
			store.Add(models.Finding{
				Kind:                    models.ResourceEBSVolume,
				ResourceID:              id,
				FindingCode:             "UNATTACHED_EBS",
				Severity:                models.SeverityHigh,
				Description:             "EBS volume is available (unattached) and accruing storage cost with no consumer",
				Recommendation:          "Snapshot and delete the volume if it is no longer needed",
				EstimatedMonthlySavings: sizeGB * 3.00,
				ObservedAt:              now,
			})
		}
	}

	return summary, nil
}

// EBSSnapshotAuditor covers EBS_SNAPSHOT: OLD_SNAPSHOT.
type EBSSnapshotAuditor struct{}

func (a *EBSSnapshotAuditor) Name() string { return "ebs_snapshots" }

const oldSnapshotAge = 365 * 24 * time.Hour

func (a *EBSSnapshotAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	out, err := client.DescribeSnapshots(ctx, aws.ToString(identity.Account))
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, snap := range out.Snapshots {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		id := aws.ToString(snap.SnapshotId)

		if snap.StartTime != nil && now.Sub(*snap.StartTime) > oldSnapshotAge {
			store.Add(models.Finding{
				Kind:           models.ResourceEBSSnapshot,
				ResourceID:     id,
				FindingCode:    "OLD_SNAPSHOT",
				Severity:       models.SeverityLow,
				Description:    "EBS snapshot is more than a year old",
				Recommendation: "Confirm the snapshot is still required for recovery or compliance; delete otherwise",
				ObservedAt:     now,
			})
		}
	}

	return summary, nil
}
