package auditors

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

const unusedLambdaAge = 30 * 24 * time.Hour

// LambdaAuditor covers LAMBDA_FUNCTION: UNUSED_LAMBDA.
type LambdaAuditor struct{}

func (a *LambdaAuditor) Name() string { return "lambda" }

func (a *LambdaAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListFunctions(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, fn := range out.Functions {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		name := aws.ToString(fn.FunctionName)

		modified, err := time.Parse(time.RFC3339, aws.ToString(fn.LastModified))
		if err != nil {
			continue
		}
		if now.Sub(modified) > unusedLambdaAge {
			store.Add(models.Finding{
				Kind:           models.ResourceLambdaFunction,
				ResourceID:     name,
				FindingCode:    "UNUSED_LAMBDA",
				Severity:       models.SeverityMedium,
				Description:    "Lambda function has not been updated in over 30 days",
				Recommendation: "Confirm the function is still invoked; remove it otherwise",
				ObservedAt:     now,
			})
		}
	}

	return summary, nil
}
