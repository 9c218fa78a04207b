package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

const oldAccessKeyAge = 90 * 24 * time.Hour

// IAMAuditor covers IAM_USER: IAM_USER_NO_MFA and IAM_ACCESS_KEY: OLD_ACCESS_KEY.
type IAMAuditor struct{}

func (a *IAMAuditor) Name() string { return "iam" }

func (a *IAMAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListUsers(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, user := range out.Users {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		name := aws.ToString(user.UserName)

		mfa, err := client.ListMFADevices(ctx, name)
		if err == nil && len(mfa.MFADevices) == 0 {
			store.Add(models.Finding{
				Kind:           models.ResourceIAMUser,
				ResourceID:     name,
				FindingCode:    "IAM_USER_NO_MFA",
				Severity:       models.SeverityHigh,
				Description:    "IAM user has no MFA device enrolled",
				Recommendation: "Require MFA enrollment for this user",
				ObservedAt:     now,
			})
		}

		keys, err := client.ListAccessKeys(ctx, name)
		if err != nil {
			continue
		}
		for _, key := range keys.AccessKeyMetadata {
			if key.CreateDate != nil && now.Sub(*key.CreateDate) > oldAccessKeyAge {
				store.Add(models.Finding{
					Kind:           models.ResourceIAMAccessKey,
					ResourceID:     aws.ToString(key.AccessKeyId),
					FindingCode:    "OLD_ACCESS_KEY",
					Severity:       models.SeverityMedium,
					Description:    "IAM access key is more than 90 days old",
					Recommendation: "Rotate the access key",
					ObservedAt:     now,
				})
			}
		}
	}

	return summary, nil
}
