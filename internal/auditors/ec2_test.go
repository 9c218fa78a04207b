package auditors

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws/fake"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
)

func TestEC2Auditor_StoppedInstance(t *testing.T) {
	client := fake.New()
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{
					Instances: []ec2types.Instance{
						{
							InstanceId: aws.String("i-stopped"),
							State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
						},
					},
				},
			},
		},
	}

	store := findingstore.New()
	a := &EC2Auditor{}
	summary, err := a.Audit(context.Background(), client, store, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalResources != 1 || summary.StoppedCount != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	findings := store.All()
	if len(findings) != 1 || findings[0].FindingCode != "STOPPED_EC2_INSTANCE" {
		t.Fatalf("findings = %+v", findings)
	}
}

func TestEC2Auditor_IdleRunningInstance(t *testing.T) {
	client := fake.New()
	old := time.Now().UTC().Add(-10 * 24 * time.Hour)
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{
					Instances: []ec2types.Instance{
						{
							InstanceId: aws.String("i-idle"),
							State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
							LaunchTime: &old,
						},
					},
				},
			},
		},
	}

	store := findingstore.New()
	a := &EC2Auditor{}
	_, err := a.Audit(context.Background(), client, store, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	findings := store.All()
	if len(findings) != 1 || findings[0].FindingCode != "IDLE_EC2_INSTANCE" {
		t.Fatalf("findings = %+v", findings)
	}
}

func TestEC2Auditor_RetentionTagExemptsIdleCheck(t *testing.T) {
	client := fake.New()
	old := time.Now().UTC().Add(-30 * 24 * time.Hour)
	client.Instances = []ec2.DescribeInstancesOutput{
		{
			Reservations: []ec2types.Reservation{
				{
					Instances: []ec2types.Instance{
						{
							InstanceId: aws.String("i-tagged"),
							State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
							LaunchTime: &old,
							Tags: []ec2types.Tag{
								{Key: aws.String("user-initiated-shutdown"), Value: aws.String("true")},
							},
						},
					},
				},
			},
		},
	}

	store := findingstore.New()
	a := &EC2Auditor{}
	_, _ = a.Audit(context.Background(), client, store, time.Now().UTC())

	if len(store.All()) != 0 {
		t.Fatalf("expected no findings, got %+v", store.All())
	}
}

func TestEC2Auditor_EnumerationError(t *testing.T) {
	client := fake.New()
	client.InstancesErr = errBoom

	store := findingstore.New()
	a := &EC2Auditor{}
	summary, err := a.Audit(context.Background(), client, store, time.Now().UTC())
	if err != nil {
		t.Fatalf("auditor must not propagate enumeration error: %v", err)
	}
	if summary.Error == "" {
		t.Fatal("expected summary.Error to be set")
	}
}
