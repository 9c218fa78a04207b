package audit

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws/fake"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// S1 — unattached EBS volume: RunQuick buckets it with the literal
// cost-per-month the finding table specifies.
func TestRunQuick_UnattachedEBS(t *testing.T) {
	client := fake.New()
	client.Volumes = &ec2.DescribeVolumesOutput{
		Volumes: []ec2types.Volume{
			{
				VolumeId: aws.String("vol-abc"),
				Size:     aws.Int32(50),
				State:    ec2types.VolumeStateAvailable,
			},
		},
	}
	client.Identity = &sts.GetCallerIdentityOutput{Account: aws.String("111111111111")}

	o := New(client, "111111111111", "us-east-1", nil)
	report := o.RunQuick(context.Background())

	if len(report.CriticalItems) != 1 {
		t.Fatalf("CriticalItems = %+v", report.CriticalItems)
	}
	item := report.CriticalItems[0]
	if item.FindingCode != "UNATTACHED_EBS" || item.Count != 1 {
		t.Fatalf("item = %+v", item)
	}
	if item.CostPerMonth != 150.00 {
		t.Fatalf("CostPerMonth = %v, want 150.00", item.CostPerMonth)
	}
	if report.EstimatedMonthlyCost != 150.00 {
		t.Fatalf("EstimatedMonthlyCost = %v, want 150.00", report.EstimatedMonthlyCost)
	}
}

// S2 — one idle running instance, one stopped instance: RunFull's total
// savings is the literal sum of both findings' costs.
func TestRunFull_IdleAndStoppedEC2(t *testing.T) {
	client := fake.New()
	old := time.Now().UTC().Add(-10 * 24 * time.Hour)
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{
					Instances: []ec2types.Instance{
						{
							InstanceId: aws.String("i-1"),
							State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
							LaunchTime: &old,
						},
						{
							InstanceId: aws.String("i-2"),
							State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
						},
					},
				},
			},
		},
	}

	o := New(client, "acct", "us-east-1", nil)
	report := o.RunFull(context.Background())

	var sawIdle, sawStopped bool
	for _, f := range report.Findings {
		switch {
		case f.FindingCode == "IDLE_EC2_INSTANCE" && f.ResourceID == "i-1":
			sawIdle = true
		case f.FindingCode == "STOPPED_EC2_INSTANCE" && f.ResourceID == "i-2":
			sawStopped = true
		}
	}
	if !sawIdle || !sawStopped {
		t.Fatalf("findings = %+v", report.Findings)
	}
	if report.Summary.EstimatedMonthlySavings != 210.00 {
		t.Fatalf("EstimatedMonthlySavings = %v, want 210.00", report.Summary.EstimatedMonthlySavings)
	}
}

// S3 — public, unencrypted bucket: exactly two findings, two critical+high.
func TestRunFull_PublicUnencryptedBucket(t *testing.T) {
	client := fake.New()
	client.Buckets = &s3.ListBucketsOutput{
		Buckets: []s3types.Bucket{{Name: aws.String("b1")}},
	}
	client.BucketPolicyStatus = map[string]*s3.GetBucketPolicyStatusOutput{
		"b1": {PolicyStatus: &s3types.PolicyStatus{IsPublic: aws.Bool(true)}},
	}
	client.BucketEncryptionErr = map[string]error{
		"b1": &smithy.GenericAPIError{Code: "ResourceNotFoundException"},
	}
	client.ObjectsV2 = map[string]*s3.ListObjectsV2Output{
		"b1": {Contents: []s3types.Object{{Key: aws.String("a")}}},
	}

	o := New(client, "acct", "us-east-1", nil)
	report := o.RunFull(context.Background())

	var codes []string
	for _, f := range report.Findings {
		codes = append(codes, f.FindingCode)
	}
	if len(codes) != 2 {
		t.Fatalf("findings = %+v", codes)
	}
	if report.Summary.CriticalFindings != 2 {
		t.Fatalf("CriticalFindings = %d, want 2", report.Summary.CriticalFindings)
	}
}

// S5 — permission error on S3: services.s3.error set, other services
// unaffected, and the orchestrator never surfaces an error to the caller.
func TestRunFull_PermissionErrorIsolatedToOneService(t *testing.T) {
	client := fake.New()
	client.BucketsErr = &smithy.GenericAPIError{Code: "AccessDenied"}
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{
					Instances: []ec2types.Instance{
						{InstanceId: aws.String("i-1"), State: &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped}},
					},
				},
			},
		},
	}

	o := New(client, "acct", "us-east-1", nil)
	report := o.RunFull(context.Background())

	s3Summary, ok := report.Services["s3"]
	if !ok || s3Summary.Error == "" {
		t.Fatalf("expected s3 summary.error to be set, got %+v", s3Summary)
	}
	if s3Summary.TotalResources != 0 {
		t.Fatalf("expected zero s3 resources on error, got %d", s3Summary.TotalResources)
	}

	ec2Summary, ok := report.Services["ec2"]
	if !ok || ec2Summary.StoppedCount != 1 {
		t.Fatalf("ec2 service unaffected by s3 failure, got %+v", ec2Summary)
	}
}

// S6 — cancellation mid-run: the report must still come back with
// metadata.mode "cancelled" and whatever summaries finished.
func TestRunFull_Cancellation(t *testing.T) {
	client := fake.New()
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{Instances: []ec2types.Instance{{InstanceId: aws.String("i-1"), State: &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped}}}},
			},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(client, "acct", "us-east-1", nil)
	report := o.RunFull(ctx)

	if report.Metadata.Mode != "cancelled" {
		t.Fatalf("Mode = %q, want cancelled", report.Metadata.Mode)
	}
}

// No two findings share (kind, resource_id, finding_code) — invariant 4,
// exercised via two S3 buckets emitting identical codes under different ids.
func TestRunFull_NoDuplicateFindings(t *testing.T) {
	client := fake.New()
	client.Buckets = &s3.ListBucketsOutput{
		Buckets: []s3types.Bucket{{Name: aws.String("b1")}, {Name: aws.String("b2")}},
	}
	client.ObjectsV2 = map[string]*s3.ListObjectsV2Output{
		"b1": {},
		"b2": {},
	}

	o := New(client, "acct", "us-east-1", nil)
	report := o.RunFull(context.Background())

	seen := make(map[string]bool)
	for _, f := range report.Findings {
		key := string(f.Kind) + "|" + f.ResourceID + "|" + f.FindingCode
		if seen[key] {
			t.Fatalf("duplicate finding key %s", key)
		}
		seen[key] = true
	}
}

// Invariant 2: sum(savings) across findings equals Report.Summary's total,
// bit-exact.
func TestRunFull_SavingsSumMatchesSummary(t *testing.T) {
	client := fake.New()
	client.Volumes = &ec2.DescribeVolumesOutput{
		Volumes: []ec2types.Volume{
			{VolumeId: aws.String("vol-1"), Size: aws.Int32(20), State: ec2types.VolumeStateAvailable},
			{VolumeId: aws.String("vol-2"), Size: aws.Int32(10), State: ec2types.VolumeStateAvailable},
		},
	}

	o := New(client, "acct", "us-east-1", nil)
	report := o.RunFull(context.Background())

	var sum float64
	for _, f := range report.Findings {
		sum += f.EstimatedMonthlySavings
	}
	if sum != report.Summary.EstimatedMonthlySavings {
		t.Fatalf("sum = %v, summary = %v", sum, report.Summary.EstimatedMonthlySavings)
	}
}

func TestRunStructured_PartitionsByService(t *testing.T) {
	client := fake.New()
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{Instances: []ec2types.Instance{{InstanceId: aws.String("i-1"), State: &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped}}}},
			},
		},
	}

	o := New(client, "acct", "us-east-1", nil)
	structured := o.RunStructured(context.Background())

	detail, ok := structured.Services["ec2"]
	if !ok {
		t.Fatal("expected ec2 service detail")
	}
	if len(detail.Findings) != 1 || detail.Findings[0].FindingCode != "STOPPED_EC2_INSTANCE" {
		t.Fatalf("ec2 findings = %+v", detail.Findings)
	}
}

func TestRunStructured_CoalescesConcurrentCallers(t *testing.T) {
	client := fake.New()
	o := New(client, "acct", "us-east-1", nil)

	var r1, r2 models.StructuredReport
	done := make(chan struct{}, 2)
	go func() { r1 = o.RunStructured(context.Background()); done <- struct{}{} }()
	go func() { r2 = o.RunStructured(context.Background()); done <- struct{}{} }()
	<-done
	<-done

	if r1.Metadata.StartedAt == "" || r2.Metadata.StartedAt == "" {
		t.Fatal("expected both calls to return a populated report")
	}
}
