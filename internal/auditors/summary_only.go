package auditors

import (
	"context"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// The auditors in this file enumerate a service family purely for resource
// counts; none of them are in the canonical finding table (spec table in
// 4.3), so they never call store.Add. Kept as one file since each body is a
// single List/Describe call plus a count.

type DynamoDBAuditor struct{}

func (a *DynamoDBAuditor) Name() string { return "dynamodb" }

func (a *DynamoDBAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListTables(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.TableNames)}, nil
}

type KMSAuditor struct{}

func (a *KMSAuditor) Name() string { return "kms" }

func (a *KMSAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListKeys(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.Keys)}, nil
}

type CloudFrontAuditor struct{}

func (a *CloudFrontAuditor) Name() string { return "cloudfront" }

func (a *CloudFrontAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListDistributions(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	if out.DistributionList == nil {
		return models.ServiceSummary{}, nil
	}
	return models.ServiceSummary{TotalResources: len(out.DistributionList.Items)}, nil
}

type Route53Auditor struct{}

func (a *Route53Auditor) Name() string { return "route53" }

func (a *Route53Auditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListHostedZones(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.HostedZones)}, nil
}

type APIGatewayAuditor struct{}

func (a *APIGatewayAuditor) Name() string { return "apigateway" }

func (a *APIGatewayAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.GetRestApis(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.Items)}, nil
}

type SNSAuditor struct{}

func (a *SNSAuditor) Name() string { return "sns" }

func (a *SNSAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListTopics(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.Topics)}, nil
}

type SQSAuditor struct{}

func (a *SQSAuditor) Name() string { return "sqs" }

func (a *SQSAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListQueues(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.QueueUrls)}, nil
}

type EventBridgeAuditor struct{}

func (a *EventBridgeAuditor) Name() string { return "eventbridge" }

func (a *EventBridgeAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListEventBuses(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.EventBuses)}, nil
}

type CloudWatchAuditor struct{}

func (a *CloudWatchAuditor) Name() string { return "cloudwatch" }

func (a *CloudWatchAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeAlarms(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.MetricAlarms) + len(out.CompositeAlarms)}, nil
}

type CloudFormationAuditor struct{}

func (a *CloudFormationAuditor) Name() string { return "cloudformation" }

func (a *CloudFormationAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListStacks(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.StackSummaries)}, nil
}

type ElastiCacheAuditor struct{}

func (a *ElastiCacheAuditor) Name() string { return "elasticache" }

func (a *ElastiCacheAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeCacheClusters(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.CacheClusters)}, nil
}

type EFSAuditor struct{}

func (a *EFSAuditor) Name() string { return "efs" }

func (a *EFSAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeFileSystems(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.FileSystems)}, nil
}

type ECSAuditor struct{}

func (a *ECSAuditor) Name() string { return "ecs" }

func (a *ECSAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.ListECSClusters(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.ClusterArns)}, nil
}

type BatchAuditor struct{}

func (a *BatchAuditor) Name() string { return "batch" }

func (a *BatchAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeJobQueues(ctx)
	if err != nil {
		return errorSummary(err), nil
	}
	return models.ServiceSummary{TotalResources: len(out.JobQueues)}, nil
}
