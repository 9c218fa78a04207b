package cloudaws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// Account is a resolved AWS identity: the caller's account ID plus the SDK
// configuration used to build per-region CloudClients for it.
type Account struct {
	AccountID string
	Config    aws.Config
}

// ClientFactory builds a CloudClient scoped to cfg's region. Production
// code uses NewSDKClient; tests inject a factory that returns a fake.
type ClientFactory func(cfg aws.Config) CloudClient

// LoadAccount resolves the default AWS credential chain (environment,
// shared config, instance role) and the caller's account ID via STS. An
// explicit region override is applied when non-empty; otherwise the
// profile's configured region is used, falling back to us-east-1.
func LoadAccount(ctx context.Context, regionOverride string) (*Account, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS credentials: %w", err)
	}

	if regionOverride != "" {
		cfg.Region = regionOverride
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	client := NewSDKClient(cfg)
	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve caller identity: %w", err)
	}

	return &Account{
		AccountID: aws.ToString(identity.Account),
		Config:    cfg,
	}, nil
}

// ForRegion returns a copy of a's config scoped to region, for constructing
// a region-local CloudClient.
func (a *Account) ForRegion(region string) aws.Config {
	regional := a.Config.Copy()
	regional.Region = region
	return regional
}
