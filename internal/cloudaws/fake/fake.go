// Package fake provides an in-memory cloudaws.CloudClient for auditor and
// orchestrator tests. Every method returns canned data set on the struct;
// nothing touches the network.
package fake

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

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
)

// Client is a scriptable fake cloudaws.CloudClient. The zero value returns
// empty results from every method; set the exported fields to return
// specific data or errors.
type Client struct {
	RegionValue string

	Instances   []ec2.DescribeInstancesOutput
	InstancesErr error

	Volumes    *ec2.DescribeVolumesOutput
	VolumesErr error

	Snapshots    *ec2.DescribeSnapshotsOutput
	SnapshotsErr error

	Addresses    *ec2.DescribeAddressesOutput
	AddressesErr error

	SecurityGroups    *ec2.DescribeSecurityGroupsOutput
	SecurityGroupsErr error

	Images    *ec2.DescribeImagesOutput
	ImagesErr error

	Vpcs    *ec2.DescribeVpcsOutput
	VpcsErr error

	Subnets    *ec2.DescribeSubnetsOutput
	SubnetsErr error

	RouteTables    *ec2.DescribeRouteTablesOutput
	RouteTablesErr error

	NetworkInterfaces    *ec2.DescribeNetworkInterfacesOutput
	NetworkInterfacesErr error

	Buckets    *s3.ListBucketsOutput
	BucketsErr error

	BucketEncryption    map[string]*s3.GetBucketEncryptionOutput
	BucketEncryptionErr map[string]error

	BucketPolicyStatus    map[string]*s3.GetBucketPolicyStatusOutput
	BucketPolicyStatusErr map[string]error

	BucketVersioning    map[string]*s3.GetBucketVersioningOutput
	BucketVersioningErr map[string]error

	ObjectsV2    map[string]*s3.ListObjectsV2Output
	ObjectsV2Err map[string]error

	DBInstances    *rds.DescribeDBInstancesOutput
	DBInstancesErr error

	Functions    *lambda.ListFunctionsOutput
	FunctionsErr error

	Users    *iam.ListUsersOutput
	UsersErr error

	MFADevices    map[string]*iam.ListMFADevicesOutput
	MFADevicesErr map[string]error

	AccessKeys    map[string]*iam.ListAccessKeysOutput
	AccessKeysErr map[string]error

	Roles    *iam.ListRolesOutput
	RolesErr error

	Policies    *iam.ListPoliciesOutput
	PoliciesErr error

	Tables            *dynamodb.ListTablesOutput
	Keys              *kms.ListKeysOutput
	Distributions     *cloudfront.ListDistributionsOutput
	HostedZones       *route53.ListHostedZonesOutput
	RestApis          *apigateway.GetRestApisOutput
	Topics            *sns.ListTopicsOutput
	Queues            *sqs.ListQueuesOutput
	EventBuses        *eventbridge.ListEventBusesOutput
	Alarms            *cloudwatch.DescribeAlarmsOutput
	Stacks            *cloudformation.ListStacksOutput
	CacheClusters     *elasticache.DescribeCacheClustersOutput
	FileSystems       *efs.DescribeFileSystemsOutput
	ECSClusters       *ecs.ListClustersOutput
	JobQueues         *batch.DescribeJobQueuesOutput

	Identity    *sts.GetCallerIdentityOutput
	IdentityErr error
}

func New() *Client { return &Client{RegionValue: "us-east-1"} }

func (c *Client) Region() string { return c.RegionValue }

func (c *Client) DescribeInstances(ctx context.Context) ([]ec2.DescribeInstancesOutput, error) {
	return c.Instances, c.InstancesErr
}

func (c *Client) DescribeVolumes(ctx context.Context) (*ec2.DescribeVolumesOutput, error) {
	return zeroIfNil(c.Volumes), c.VolumesErr
}

func (c *Client) DescribeSnapshots(ctx context.Context, ownerID string) (*ec2.DescribeSnapshotsOutput, error) {
	return zeroIfNil(c.Snapshots), c.SnapshotsErr
}

func (c *Client) DescribeAddresses(ctx context.Context) (*ec2.DescribeAddressesOutput, error) {
	return zeroIfNil(c.Addresses), c.AddressesErr
}

func (c *Client) DescribeSecurityGroups(ctx context.Context) (*ec2.DescribeSecurityGroupsOutput, error) {
	return zeroIfNil(c.SecurityGroups), c.SecurityGroupsErr
}

func (c *Client) DescribeImages(ctx context.Context, ownerID string) (*ec2.DescribeImagesOutput, error) {
	return zeroIfNil(c.Images), c.ImagesErr
}

func (c *Client) DescribeVpcs(ctx context.Context) (*ec2.DescribeVpcsOutput, error) {
	return zeroIfNil(c.Vpcs), c.VpcsErr
}

func (c *Client) DescribeSubnets(ctx context.Context) (*ec2.DescribeSubnetsOutput, error) {
	return zeroIfNil(c.Subnets), c.SubnetsErr
}

func (c *Client) DescribeRouteTables(ctx context.Context) (*ec2.DescribeRouteTablesOutput, error) {
	return zeroIfNil(c.RouteTables), c.RouteTablesErr
}

func (c *Client) DescribeNetworkInterfaces(ctx context.Context) (*ec2.DescribeNetworkInterfacesOutput, error) {
	return zeroIfNil(c.NetworkInterfaces), c.NetworkInterfacesErr
}

func (c *Client) ListBuckets(ctx context.Context) (*s3.ListBucketsOutput, error) {
	return zeroIfNil(c.Buckets), c.BucketsErr
}

func (c *Client) GetBucketEncryption(ctx context.Context, bucket string) (*s3.GetBucketEncryptionOutput, error) {
	return zeroIfNil(c.BucketEncryption[bucket]), c.BucketEncryptionErr[bucket]
}

func (c *Client) GetBucketPolicyStatus(ctx context.Context, bucket string) (*s3.GetBucketPolicyStatusOutput, error) {
	return zeroIfNil(c.BucketPolicyStatus[bucket]), c.BucketPolicyStatusErr[bucket]
}

func (c *Client) GetBucketVersioning(ctx context.Context, bucket string) (*s3.GetBucketVersioningOutput, error) {
	return zeroIfNil(c.BucketVersioning[bucket]), c.BucketVersioningErr[bucket]
}

func (c *Client) ListObjectsV2(ctx context.Context, bucket string) (*s3.ListObjectsV2Output, error) {
	return zeroIfNil(c.ObjectsV2[bucket]), c.ObjectsV2Err[bucket]
}

func (c *Client) DescribeDBInstances(ctx context.Context) (*rds.DescribeDBInstancesOutput, error) {
	return zeroIfNil(c.DBInstances), c.DBInstancesErr
}

func (c *Client) ListFunctions(ctx context.Context) (*lambda.ListFunctionsOutput, error) {
	return zeroIfNil(c.Functions), c.FunctionsErr
}

func (c *Client) ListUsers(ctx context.Context) (*iam.ListUsersOutput, error) {
	return zeroIfNil(c.Users), c.UsersErr
}

func (c *Client) ListMFADevices(ctx context.Context, user string) (*iam.ListMFADevicesOutput, error) {
	return zeroIfNil(c.MFADevices[user]), c.MFADevicesErr[user]
}

func (c *Client) ListAccessKeys(ctx context.Context, user string) (*iam.ListAccessKeysOutput, error) {
	return zeroIfNil(c.AccessKeys[user]), c.AccessKeysErr[user]
}

func (c *Client) ListRoles(ctx context.Context) (*iam.ListRolesOutput, error) {
	return zeroIfNil(c.Roles), c.RolesErr
}

func (c *Client) ListPolicies(ctx context.Context) (*iam.ListPoliciesOutput, error) {
	return zeroIfNil(c.Policies), c.PoliciesErr
}

func (c *Client) ListTables(ctx context.Context) (*dynamodb.ListTablesOutput, error) {
	return zeroIfNil(c.Tables), nil
}

func (c *Client) ListKeys(ctx context.Context) (*kms.ListKeysOutput, error) {
	return zeroIfNil(c.Keys), nil
}

func (c *Client) ListDistributions(ctx context.Context) (*cloudfront.ListDistributionsOutput, error) {
	return zeroIfNil(c.Distributions), nil
}

func (c *Client) ListHostedZones(ctx context.Context) (*route53.ListHostedZonesOutput, error) {
	return zeroIfNil(c.HostedZones), nil
}

func (c *Client) GetRestApis(ctx context.Context) (*apigateway.GetRestApisOutput, error) {
	return zeroIfNil(c.RestApis), nil
}

func (c *Client) ListTopics(ctx context.Context) (*sns.ListTopicsOutput, error) {
	return zeroIfNil(c.Topics), nil
}

func (c *Client) ListQueues(ctx context.Context) (*sqs.ListQueuesOutput, error) {
	return zeroIfNil(c.Queues), nil
}

func (c *Client) ListEventBuses(ctx context.Context) (*eventbridge.ListEventBusesOutput, error) {
	return zeroIfNil(c.EventBuses), nil
}

func (c *Client) DescribeAlarms(ctx context.Context) (*cloudwatch.DescribeAlarmsOutput, error) {
	return zeroIfNil(c.Alarms), nil
}

func (c *Client) ListStacks(ctx context.Context) (*cloudformation.ListStacksOutput, error) {
	return zeroIfNil(c.Stacks), nil
}

func (c *Client) DescribeCacheClusters(ctx context.Context) (*elasticache.DescribeCacheClustersOutput, error) {
	return zeroIfNil(c.CacheClusters), nil
}

func (c *Client) DescribeFileSystems(ctx context.Context) (*efs.DescribeFileSystemsOutput, error) {
	return zeroIfNil(c.FileSystems), nil
}

func (c *Client) ListECSClusters(ctx context.Context) (*ecs.ListClustersOutput, error) {
	return zeroIfNil(c.ECSClusters), nil
}

func (c *Client) DescribeJobQueues(ctx context.Context) (*batch.DescribeJobQueuesOutput, error) {
	return zeroIfNil(c.JobQueues), nil
}

func (c *Client) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	return zeroIfNil(c.Identity), c.IdentityErr
}

func zeroIfNil[T any](v *T) *T {
	if v == nil {
		return new(T)
	}
	return v
}

var _ cloudaws.CloudClient = (*Client)(nil)
