// Package cloudaws defines the CloudClient capability interface that every
// ServiceAuditor is given, plus the production AWS SDK v2 implementation
// and its error classification and retry policy.
//
// Auditors never import the AWS SDK directly; they depend only on
// CloudClient, which narrows each service down to the handful of List/
// Describe operations an audit actually needs.
package cloudaws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/efs"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CloudClient is the sole entry point ServiceAuditors use to reach AWS. One
// CloudClient is scoped to a single account and region.
//
// Methods return the SDK's error unchanged; callers classify it with
// Categorize to decide whether a failure should abort the run, be retried,
// or just be recorded as a per-service summary error.
type CloudClient interface {
	Region() string

	// EC2 / EBS / networking
	DescribeInstances(ctx context.Context) ([]ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context) (*ec2.DescribeVolumesOutput, error)
	DescribeSnapshots(ctx context.Context, ownerID string) (*ec2.DescribeSnapshotsOutput, error)
	DescribeAddresses(ctx context.Context) (*ec2.DescribeAddressesOutput, error)
	DescribeSecurityGroups(ctx context.Context) (*ec2.DescribeSecurityGroupsOutput, error)
	DescribeImages(ctx context.Context, ownerID string) (*ec2.DescribeImagesOutput, error)
	DescribeVpcs(ctx context.Context) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context) (*ec2.DescribeSubnetsOutput, error)
	DescribeRouteTables(ctx context.Context) (*ec2.DescribeRouteTablesOutput, error)
	DescribeNetworkInterfaces(ctx context.Context) (*ec2.DescribeNetworkInterfacesOutput, error)

	// S3
	ListBuckets(ctx context.Context) (*s3.ListBucketsOutput, error)
	GetBucketEncryption(ctx context.Context, bucket string) (*s3.GetBucketEncryptionOutput, error)
	GetBucketPolicyStatus(ctx context.Context, bucket string) (*s3.GetBucketPolicyStatusOutput, error)
	GetBucketVersioning(ctx context.Context, bucket string) (*s3.GetBucketVersioningOutput, error)
	ListObjectsV2(ctx context.Context, bucket string) (*s3.ListObjectsV2Output, error)

	// RDS
	DescribeDBInstances(ctx context.Context) (*rds.DescribeDBInstancesOutput, error)

	// Lambda
	ListFunctions(ctx context.Context) (*lambda.ListFunctionsOutput, error)

	// IAM
	ListUsers(ctx context.Context) (*iam.ListUsersOutput, error)
	ListMFADevices(ctx context.Context, user string) (*iam.ListMFADevicesOutput, error)
	ListAccessKeys(ctx context.Context, user string) (*iam.ListAccessKeysOutput, error)
	ListRoles(ctx context.Context) (*iam.ListRolesOutput, error)
	ListPolicies(ctx context.Context) (*iam.ListPoliciesOutput, error)

	// Summary-only service families (spec §4.3: counted, never produce findings)
	ListTables(ctx context.Context) (*dynamodb.ListTablesOutput, error)
	ListKeys(ctx context.Context) (*kms.ListKeysOutput, error)
	ListDistributions(ctx context.Context) (*cloudfront.ListDistributionsOutput, error)
	ListHostedZones(ctx context.Context) (*route53.ListHostedZonesOutput, error)
	GetRestApis(ctx context.Context) (*apigateway.GetRestApisOutput, error)
	ListTopics(ctx context.Context) (*sns.ListTopicsOutput, error)
	ListQueues(ctx context.Context) (*sqs.ListQueuesOutput, error)
	ListEventBuses(ctx context.Context) (*eventbridge.ListEventBusesOutput, error)
	DescribeAlarms(ctx context.Context) (*cloudwatch.DescribeAlarmsOutput, error)
	ListStacks(ctx context.Context) (*cloudformation.ListStacksOutput, error)
	DescribeCacheClusters(ctx context.Context) (*elasticache.DescribeCacheClustersOutput, error)
	DescribeFileSystems(ctx context.Context) (*efs.DescribeFileSystemsOutput, error)
	ListECSClusters(ctx context.Context) (*ecs.ListClustersOutput, error)
	DescribeJobQueues(ctx context.Context) (*batch.DescribeJobQueuesOutput, error)

	GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error)
}
