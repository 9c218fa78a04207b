package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// S3Auditor covers S3_BUCKET: PUBLIC_S3_BUCKET, UNENCRYPTED_S3_BUCKET,
// EMPTY_S3_BUCKET. Per-bucket sub-calls are independent; a failure on one
// check for one bucket never blocks the others.
type S3Auditor struct{}

func (a *S3Auditor) Name() string { return "s3" }

func (a *S3Auditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListBuckets(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, b := range out.Buckets {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		name := aws.ToString(b.Name)

		if isPublic(ctx, client, name) {
			summary.PublicCount++
			store.Add(models.Finding{
				Kind:           models.ResourceS3Bucket,
				ResourceID:     name,
				FindingCode:    "PUBLIC_S3_BUCKET",
				Severity:       models.SeverityCritical,
				Description:    "S3 bucket policy status reports the bucket as public",
				Recommendation: "Apply a bucket policy or public access block to restrict access",
				ObservedAt:     now,
			})
		} else {
			summary.PrivateCount++
		}

		if !isEncrypted(ctx, client, name) {
			summary.UnencryptedCount++
			store.Add(models.Finding{
				Kind:           models.ResourceS3Bucket,
				ResourceID:     name,
				FindingCode:    "UNENCRYPTED_S3_BUCKET",
				Severity:       models.SeverityHigh,
				Description:    "S3 bucket has no default server-side encryption configured",
				Recommendation: "Enable default encryption (SSE-S3 or SSE-KMS)",
				ObservedAt:     now,
			})
		} else {
			summary.EncryptedCount++
		}

		if isEmpty(ctx, client, name) {
			store.Add(models.Finding{
				Kind:           models.ResourceS3Bucket,
				ResourceID:     name,
				FindingCode:    "EMPTY_S3_BUCKET",
				Severity:       models.SeverityLow,
				Description:    "S3 bucket contains no objects",
				Recommendation: "Delete the bucket if it is no longer in use",
				ObservedAt:     now,
			})
		}
	}

	return summary, nil
}

func isPublic(ctx context.Context, client cloudaws.CloudClient, bucket string) bool {
	status, err := client.GetBucketPolicyStatus(ctx, bucket)
	if err != nil || status.PolicyStatus == nil {
		return false
	}
	return aws.ToBool(status.PolicyStatus.IsPublic)
}

// isEncrypted reports whether bucket has default server-side encryption.
// GetBucketEncryption returns a NOT_FOUND category error when none is
// configured; any other error is treated as "could not confirm" and does
// not raise a finding, since a false positive here would be noisy.
func isEncrypted(ctx context.Context, client cloudaws.CloudClient, bucket string) bool {
	_, err := client.GetBucketEncryption(ctx, bucket)
	if err == nil {
		return true
	}
	return cloudaws.Categorize(err) != cloudaws.CategoryNotFound
}

func isEmpty(ctx context.Context, client cloudaws.CloudClient, bucket string) bool {
	out, err := client.ListObjectsV2(ctx, bucket)
	if err != nil {
		return false
	}
	return len(out.Contents) == 0
}
