package cloudaws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
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

// SDKClient is the production CloudClient, backed by real AWS SDK v2
// service clients scoped to a single region. Every client is constructed
// from the same aws.Config so the custom retryer and call timeout apply
// uniformly across service families.
type SDKClient struct {
	region string

	ec2   *ec2.Client
	s3    *s3.Client
	rds   *rds.Client
	lamb  *lambda.Client
	iam   *iam.Client
	sts   *sts.Client

	dynamodb       *dynamodb.Client
	kms            *kms.Client
	cloudfront     *cloudfront.Client
	route53        *route53.Client
	apigateway     *apigateway.Client
	sns            *sns.Client
	sqs            *sqs.Client
	eventbridge    *eventbridge.Client
	cloudwatch     *cloudwatch.Client
	cloudformation *cloudformation.Client
	elasticache    *elasticache.Client
	efs            *efs.Client
	ecs            *ecs.Client
	batch          *batch.Client
}

// NewSDKClient builds a CloudClient for cfg's region. cfg should already be
// scoped to the target region; NewSDKClient installs the shared retryer
// and per-call timeout on every service client it constructs.
func NewSDKClient(cfg aws.Config) *SDKClient {
	withRetry := cfg.Copy()
	withRetry.Retryer = func() aws.Retryer { return newRetryer() }

	return &SDKClient{
		region:         withRetry.Region,
		ec2:            ec2.NewFromConfig(withRetry),
		s3:             s3.NewFromConfig(withRetry),
		rds:            rds.NewFromConfig(withRetry),
		lamb:           lambda.NewFromConfig(withRetry),
		iam:            iam.NewFromConfig(withRetry),
		sts:            sts.NewFromConfig(withRetry),
		dynamodb:       dynamodb.NewFromConfig(withRetry),
		kms:            kms.NewFromConfig(withRetry),
		cloudfront:     cloudfront.NewFromConfig(withRetry),
		route53:        route53.NewFromConfig(withRetry),
		apigateway:     apigateway.NewFromConfig(withRetry),
		sns:            sns.NewFromConfig(withRetry),
		sqs:            sqs.NewFromConfig(withRetry),
		eventbridge:    eventbridge.NewFromConfig(withRetry),
		cloudwatch:     cloudwatch.NewFromConfig(withRetry),
		cloudformation: cloudformation.NewFromConfig(withRetry),
		elasticache:    elasticache.NewFromConfig(withRetry),
		efs:            efs.NewFromConfig(withRetry),
		ecs:            ecs.NewFromConfig(withRetry),
		batch:          batch.NewFromConfig(withRetry),
	}
}

func (c *SDKClient) Region() string { return c.region }

func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callDeadline)
}

func (c *SDKClient) DescribeInstances(ctx context.Context) ([]ec2.DescribeInstancesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var pages []ec2.DescribeInstancesOutput
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, nil
}

func (c *SDKClient) DescribeVolumes(ctx context.Context) (*ec2.DescribeVolumesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{})
}

func (c *SDKClient) DescribeSnapshots(ctx context.Context, ownerID string) (*ec2.DescribeSnapshotsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{OwnerIds: []string{ownerID}})
}

func (c *SDKClient) DescribeAddresses(ctx context.Context) (*ec2.DescribeAddressesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
}

func (c *SDKClient) DescribeSecurityGroups(ctx context.Context) (*ec2.DescribeSecurityGroupsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{})
}

func (c *SDKClient) DescribeImages(ctx context.Context, ownerID string) (*ec2.DescribeImagesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeImages(ctx, &ec2.DescribeImagesInput{Owners: []string{ownerID}})
}

func (c *SDKClient) DescribeVpcs(ctx context.Context) (*ec2.DescribeVpcsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{})
}

func (c *SDKClient) DescribeSubnets(ctx context.Context) (*ec2.DescribeSubnetsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{})
}

func (c *SDKClient) DescribeRouteTables(ctx context.Context) (*ec2.DescribeRouteTablesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{})
}

func (c *SDKClient) DescribeNetworkInterfaces(ctx context.Context) (*ec2.DescribeNetworkInterfacesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ec2.DescribeNetworkInterfaces(ctx, &ec2.DescribeNetworkInterfacesInput{})
}

func (c *SDKClient) ListBuckets(ctx context.Context) (*s3.ListBucketsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
}

func (c *SDKClient) GetBucketEncryption(ctx context.Context, bucket string) (*s3.GetBucketEncryptionOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.s3.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: &bucket})
}

func (c *SDKClient) GetBucketPolicyStatus(ctx context.Context, bucket string) (*s3.GetBucketPolicyStatusOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.s3.GetBucketPolicyStatus(ctx, &s3.GetBucketPolicyStatusInput{Bucket: &bucket})
}

func (c *SDKClient) GetBucketVersioning(ctx context.Context, bucket string) (*s3.GetBucketVersioningOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.s3.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: &bucket})
}

func (c *SDKClient) ListObjectsV2(ctx context.Context, bucket string) (*s3.ListObjectsV2Output, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: &bucket, MaxKeys: aws.Int32(1)})
}

func (c *SDKClient) DescribeDBInstances(ctx context.Context) (*rds.DescribeDBInstancesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.rds.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
}

func (c *SDKClient) ListFunctions(ctx context.Context) (*lambda.ListFunctionsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.lamb.ListFunctions(ctx, &lambda.ListFunctionsInput{})
}

func (c *SDKClient) ListUsers(ctx context.Context) (*iam.ListUsersOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.iam.ListUsers(ctx, &iam.ListUsersInput{})
}

func (c *SDKClient) ListMFADevices(ctx context.Context, user string) (*iam.ListMFADevicesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.iam.ListMFADevices(ctx, &iam.ListMFADevicesInput{UserName: &user})
}

func (c *SDKClient) ListAccessKeys(ctx context.Context, user string) (*iam.ListAccessKeysOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.iam.ListAccessKeys(ctx, &iam.ListAccessKeysInput{UserName: &user})
}

func (c *SDKClient) ListRoles(ctx context.Context) (*iam.ListRolesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.iam.ListRoles(ctx, &iam.ListRolesInput{})
}

func (c *SDKClient) ListPolicies(ctx context.Context) (*iam.ListPoliciesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.iam.ListPolicies(ctx, &iam.ListPoliciesInput{Scope: "Local"})
}

func (c *SDKClient) ListTables(ctx context.Context) (*dynamodb.ListTablesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.dynamodb.ListTables(ctx, &dynamodb.ListTablesInput{})
}

func (c *SDKClient) ListKeys(ctx context.Context) (*kms.ListKeysOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.kms.ListKeys(ctx, &kms.ListKeysInput{})
}

func (c *SDKClient) ListDistributions(ctx context.Context) (*cloudfront.ListDistributionsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.cloudfront.ListDistributions(ctx, &cloudfront.ListDistributionsInput{})
}

func (c *SDKClient) ListHostedZones(ctx context.Context) (*route53.ListHostedZonesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.route53.ListHostedZones(ctx, &route53.ListHostedZonesInput{})
}

func (c *SDKClient) GetRestApis(ctx context.Context) (*apigateway.GetRestApisOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.apigateway.GetRestApis(ctx, &apigateway.GetRestApisInput{})
}

func (c *SDKClient) ListTopics(ctx context.Context) (*sns.ListTopicsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.sns.ListTopics(ctx, &sns.ListTopicsInput{})
}

func (c *SDKClient) ListQueues(ctx context.Context) (*sqs.ListQueuesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.sqs.ListQueues(ctx, &sqs.ListQueuesInput{})
}

func (c *SDKClient) ListEventBuses(ctx context.Context) (*eventbridge.ListEventBusesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.eventbridge.ListEventBuses(ctx, &eventbridge.ListEventBusesInput{})
}

func (c *SDKClient) DescribeAlarms(ctx context.Context) (*cloudwatch.DescribeAlarmsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.cloudwatch.DescribeAlarms(ctx, &cloudwatch.DescribeAlarmsInput{})
}

func (c *SDKClient) ListStacks(ctx context.Context) (*cloudformation.ListStacksOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.cloudformation.ListStacks(ctx, &cloudformation.ListStacksInput{})
}

func (c *SDKClient) DescribeCacheClusters(ctx context.Context) (*elasticache.DescribeCacheClustersOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.elasticache.DescribeCacheClusters(ctx, &elasticache.DescribeCacheClustersInput{})
}

func (c *SDKClient) DescribeFileSystems(ctx context.Context) (*efs.DescribeFileSystemsOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.efs.DescribeFileSystems(ctx, &efs.DescribeFileSystemsInput{})
}

func (c *SDKClient) ListECSClusters(ctx context.Context) (*ecs.ListClustersOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.ecs.ListClusters(ctx, &ecs.ListClustersInput{})
}

func (c *SDKClient) DescribeJobQueues(ctx context.Context) (*batch.DescribeJobQueuesOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.batch.DescribeJobQueues(ctx, &batch.DescribeJobQueuesInput{})
}

func (c *SDKClient) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
}

var _ CloudClient = (*SDKClient)(nil)
