// Package audit implements the orchestrator: the component that fans out
// across every registered ServiceAuditor, collates the findings they emit
// into a FindingStore, and projects the result into three report shapes
// (RunFull, RunStructured, RunQuick).
package audit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nimbusaudit/cloudpulse/internal/auditors"
	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/logging"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// DefaultConcurrency bounds how many ServiceAuditors run at once.
const DefaultConcurrency = 8

// fullDeadline and quickDeadline are the per-run context budgets assigned
// to RunFull/RunStructured and RunQuick respectively.
const (
	fullDeadline  = 120 * time.Second
	quickDeadline = 10 * time.Second
)

// Orchestrator holds one CloudClient scoped to a single account/region and
// the two auditor registries (full and quick).
type Orchestrator struct {
	client      cloudaws.CloudClient
	accountID   string
	region      string
	concurrency int
	log         *logging.Logger

	registry      []auditors.Auditor
	quickRegistry []auditors.Auditor

	mu        sync.Mutex
	inFlight  *sync.WaitGroup
	lastQuick *models.StructuredReport
}

// New builds an Orchestrator for one account/region, using the package-level
// auditor registries unless overridden by tests.
func New(client cloudaws.CloudClient, accountID, region string, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		client:        client,
		accountID:     accountID,
		region:        region,
		concurrency:   DefaultConcurrency,
		log:           log,
		registry:      auditors.Registry(),
		quickRegistry: auditors.QuickRegistry(),
	}
}

// WithConcurrency overrides the fan-out cap; used by tests to exercise the
// semaphore with a small registry.
func (o *Orchestrator) WithConcurrency(n int) *Orchestrator {
	o.concurrency = n
	return o
}

// runResult is the shared output of fanning a registry of auditors out
// across the CloudClient: per-service summaries, the findings they wrote,
// and whether the run was cut short by cancellation.
type runResult struct {
	services map[string]models.ServiceSummary
	store    *findingstore.Store
	mode     string
	now      time.Time
}

// collect runs every auditor in list concurrently, bounded by o.concurrency,
// and waits for all of them regardless of individual failure — one
// auditor's failure (even a panic) must never abort the others.
func (o *Orchestrator) collect(ctx context.Context, list []auditors.Auditor) runResult {
	store := findingstore.New()
	now := time.Now().UTC()

	var mu sync.Mutex
	summaries := make(map[string]models.ServiceSummary, len(list))

	sem := make(chan struct{}, o.concurrency)
	g := new(errgroup.Group)

	for _, a := range list {
		a := a
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			mu.Lock()
			summaries[a.Name()] = models.ServiceSummary{Error: ctx.Err().Error()}
			mu.Unlock()
			continue
		}

		g.Go(func() (err error) {
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					summaries[a.Name()] = models.ServiceSummary{Error: fmt.Sprintf("panic: %v", r)}
					mu.Unlock()
					if o.log != nil {
						o.log.WithField("auditor", a.Name()).Errorf("service auditor panicked: %v", r)
					}
				}
			}()

			summary, auditErr := a.Audit(ctx, o.client, store, now)
			if auditErr != nil && o.log != nil {
				o.log.WithField("auditor", a.Name()).Warnf("audit ended early: %v", auditErr)
			}
			mu.Lock()
			summaries[a.Name()] = summary
			mu.Unlock()
			return nil
		})
	}

	// Every Go() closure recovers its own panic and never returns an error,
	// so Wait only ever surfaces a nil error; it simply blocks until all
	// auditors have finished or been skipped above.
	_ = g.Wait()

	mode := "full"
	if ctx.Err() != nil {
		mode = "cancelled"
	}

	return runResult{services: summaries, store: store, mode: mode, now: now}
}

// RunFull invokes every registered ServiceAuditor and returns the complete
// Report: all service summaries, all findings, and the derived recommendation
// list.
func (o *Orchestrator) RunFull(ctx context.Context) models.Report {
	ctx, cancel := context.WithTimeout(ctx, fullDeadline)
	defer cancel()

	started := time.Now().UTC()
	result := o.collect(ctx, o.registry)
	return o.buildReport(result, started, "full")
}

// RunStructured is the dashboard feed: the same data as RunFull, partitioned
// by service family. Concurrent callers are coalesced onto a single
// in-flight run, but a caller that arrives after a run has already
// finished always triggers a fresh one; RunStructured never serves a stale
// completed result.
func (o *Orchestrator) RunStructured(ctx context.Context) models.StructuredReport {
	o.mu.Lock()
	if wg := o.inFlight; wg != nil {
		o.mu.Unlock()
		wg.Wait()
		o.mu.Lock()
		cached := o.lastQuick
		o.mu.Unlock()
		if cached != nil {
			return *cached
		}
		// Fall through and run fresh if, improbably, no result was recorded.
	} else {
		o.mu.Unlock()
	}

	o.mu.Lock()
	wg := &sync.WaitGroup{}
	wg.Add(1)
	o.inFlight = wg
	o.mu.Unlock()

	report := o.runStructured(ctx)

	o.mu.Lock()
	o.lastQuick = &report
	o.inFlight = nil
	o.mu.Unlock()
	wg.Done()

	return report
}

func (o *Orchestrator) runStructured(ctx context.Context) models.StructuredReport {
	ctx, cancel := context.WithTimeout(ctx, fullDeadline)
	defer cancel()

	started := time.Now().UTC()
	result := o.collect(ctx, o.registry)
	full := o.buildReport(result, started, "full")

	byKind := result.store.GroupByKind()
	services := make(map[string]models.ServiceDetail, len(result.services))
	for name, summary := range result.services {
		services[name] = models.ServiceDetail{
			Summary:  summary,
			Findings: findingsForService(name, byKind),
		}
	}

	return models.StructuredReport{
		Metadata: full.Metadata,
		Services: services,
		Summary:  full.Summary,
	}
}

// findingsForService maps a service name back to the ResourceKinds that
// service's auditor can emit, and flattens the matching finding groups.
// A Finding is cross-linked to its service by (kind, resource_id), never
// by a stored reference, so this lookup happens at projection time.
func findingsForService(service string, byKind map[models.ResourceKind][]models.Finding) []models.Finding {
	var out []models.Finding
	for _, kind := range serviceKinds[service] {
		out = append(out, byKind[kind]...)
	}
	return out
}

// serviceKinds maps each auditor's Name() to the ResourceKind(s) it audits,
// mirroring the Registry() order in internal/auditors.
var serviceKinds = map[string][]models.ResourceKind{
	"ec2":             {models.ResourceEC2Instance},
	"ebs_volumes":     {models.ResourceEBSVolume},
	"ebs_snapshots":   {models.ResourceEBSSnapshot},
	"elastic_ip":      {models.ResourceElasticIP},
	"security_groups": {models.ResourceSecurityGroup},
	"lambda":          {models.ResourceLambdaFunction},
	"s3":              {models.ResourceS3Bucket},
	"iam":             {models.ResourceIAMUser, models.ResourceIAMAccessKey},
	"rds":             {models.ResourceRDSInstance},
	"vpc":             {models.ResourceVPC},
	"dynamodb":        {models.ResourceDynamoDBTable},
	"kms":             {models.ResourceKMSKey},
	"cloudfront":      {models.ResourceCloudFrontDistribution},
	"route53":         {models.ResourceRoute53Zone},
	"apigateway":      {models.ResourceAPIGateway},
	"sns":             {models.ResourceSNSTopic},
	"sqs":             {models.ResourceSQSQueue},
	"eventbridge":     {models.ResourceEventBridgeRule},
	"cloudwatch":      {models.ResourceCloudWatchAlarm},
	"cloudformation":  {models.ResourceCloudFormationStack},
	"elasticache":     {models.ResourceElastiCacheCluster},
	"efs":             {models.ResourceEFSFilesystem},
	"ecs":             {models.ResourceECSCluster},
	"batch":           {models.ResourceBatchQueue},
}

// RunQuick invokes only the EC2/EBS/ElasticIP auditors and buckets the
// nonzero-savings findings they produced by finding_code.
func (o *Orchestrator) RunQuick(ctx context.Context) models.QuickReport {
	ctx, cancel := context.WithTimeout(ctx, quickDeadline)
	defer cancel()

	started := time.Now().UTC()
	result := o.collect(ctx, o.quickRegistry)

	buckets := make(map[string]*models.QuickFindingBucket)
	var order []string
	var total float64

	for _, f := range result.store.All() {
		if f.EstimatedMonthlySavings <= 0 {
			continue
		}
		b, ok := buckets[f.FindingCode]
		if !ok {
			b = &models.QuickFindingBucket{FindingCode: f.FindingCode}
			buckets[f.FindingCode] = b
			order = append(order, f.FindingCode)
		}
		b.Count++
		b.CostPerMonth += f.EstimatedMonthlySavings
		total += f.EstimatedMonthlySavings
	}

	items := make([]models.QuickFindingBucket, 0, len(order))
	for _, code := range order {
		items = append(items, *buckets[code])
	}

	mode := "quick"
	if result.mode == "cancelled" {
		mode = "cancelled"
	}

	return models.QuickReport{
		Metadata:             o.metadata(started, mode),
		CriticalItems:        items,
		EstimatedMonthlyCost: total,
	}
}

func (o *Orchestrator) metadata(started time.Time, mode string) models.ReportMetadata {
	return models.ReportMetadata{
		AccountID:  o.accountID,
		Region:     o.region,
		StartedAt:  started.Format(time.RFC3339),
		FinishedAt: time.Now().UTC().Format(time.RFC3339),
		Mode:       mode,
	}
}

func (o *Orchestrator) buildReport(result runResult, started time.Time, mode string) models.Report {
	if result.mode == "cancelled" {
		mode = "cancelled"
	}

	findings := result.store.All()

	var totalResources int
	for _, s := range result.services {
		totalResources += s.TotalResources
	}

	summary := models.ReportSummary{
		TotalResources:          totalResources,
		TotalFindings:           len(findings),
		CriticalFindings:        result.store.Count(models.SeverityCritical) + result.store.Count(models.SeverityHigh),
		EstimatedMonthlySavings: result.store.TotalSavings(),
	}

	var warnings []string
	if dropped := result.store.DroppedCount(); dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d findings dropped: per-run finding cap reached", dropped))
	}

	return models.Report{
		Metadata:        o.metadata(started, mode),
		Services:        result.services,
		Findings:        findings,
		Summary:         summary,
		Recommendations: buildRecommendations(findings),
		Warnings:        warnings,
	}
}

// buildRecommendations groups findings by ResourceKind and attaches the
// fixed per-kind action list.
func buildRecommendations(findings []models.Finding) []models.Recommendation {
	type agg struct {
		total, critical int
		savings         float64
	}
	byKind := make(map[models.ResourceKind]*agg)
	var order []models.ResourceKind

	for _, f := range findings {
		a, ok := byKind[f.Kind]
		if !ok {
			a = &agg{}
			byKind[f.Kind] = a
			order = append(order, f.Kind)
		}
		a.total++
		if f.Severity == models.SeverityCritical || f.Severity == models.SeverityHigh {
			a.critical++
		}
		a.savings += f.EstimatedMonthlySavings
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]models.Recommendation, 0, len(order))
	for _, kind := range order {
		a := byKind[kind]
		out = append(out, models.Recommendation{
			Kind:                    kind,
			TotalIssues:             a.total,
			CriticalIssues:          a.critical,
			EstimatedMonthlySavings: a.savings,
			Actions:                 recommendationActions[kind],
		})
	}
	return out
}

// recommendationActions is the fixed per-kind action list. Kinds outside
// the canonical finding table never appear in a Recommendation, so they
// have no entry here.
var recommendationActions = map[models.ResourceKind][]string{
	models.ResourceEC2Instance: {
		"Review and terminate idle instances",
		"Stop or right-size instances left running unnecessarily",
	},
	models.ResourceEBSVolume: {
		"Snapshot and delete unattached volumes",
	},
	models.ResourceEBSSnapshot: {
		"Delete snapshots no longer required for recovery or compliance",
	},
	models.ResourceElasticIP: {
		"Release unattached Elastic IPs",
	},
	models.ResourceSecurityGroup: {
		"Restrict security group ingress rules to known trusted CIDR ranges",
	},
	models.ResourceLambdaFunction: {
		"Remove or consolidate functions that have not run recently",
	},
	models.ResourceS3Bucket: {
		"Apply a bucket policy or public access block to restrict public buckets",
		"Enable default server-side encryption",
		"Delete empty buckets that are no longer in use",
	},
	models.ResourceIAMUser: {
		"Require MFA enrollment for every IAM user",
	},
	models.ResourceIAMAccessKey: {
		"Rotate access keys older than 90 days",
	},
	models.ResourceRDSInstance: {
		"Disable public accessibility on database instances",
		"Delete stopped instances that are no longer needed",
	},
	models.ResourceVPC: {
		"Migrate workloads off the default VPC and remove it",
	},
}
