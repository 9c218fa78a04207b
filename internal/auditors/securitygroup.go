package auditors

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/findingstore"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// sensitivePorts are the ports OVERLY_PERMISSIVE_SG treats as risky when
// opened to the world: SSH, RDP, and the common SQL engines.
var sensitivePorts = map[int32]bool{
	22:   true,
	3389: true,
	1433: true,
	3306: true,
	5432: true,
	1521: true,
}

const openCIDR = "0.0.0.0/0"

// SecurityGroupAuditor covers SECURITY_GROUP: OVERLY_PERMISSIVE_SG.
type SecurityGroupAuditor struct{}

func (a *SecurityGroupAuditor) Name() string { return "security_groups" }

func (a *SecurityGroupAuditor) Audit(ctx context.Context, client cloudaws.CloudClient, store *findingstore.Store, now time.Time) (models.ServiceSummary, error) {
	out, err := client.DescribeSecurityGroups(ctx)
	if err != nil {
		return errorSummary(err), nil
	}

	summary := models.ServiceSummary{}
	for _, sg := range out.SecurityGroups {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		summary.TotalResources++
		id := aws.ToString(sg.GroupId)

		if port, open := openSensitivePort(sg.IpPermissions); open {
			store.Add(models.Finding{
				Kind:           models.ResourceSecurityGroup,
				ResourceID:     id,
				FindingCode:    "OVERLY_PERMISSIVE_SG",
				Severity:       models.SeverityHigh,
				Description:    portDescription(port),
				Recommendation: "Restrict the CIDR range to known trusted sources",
				ObservedAt:     now,
			})
		}
	}

	return summary, nil
}

func openSensitivePort(perms []ec2types.IpPermission) (int32, bool) {
	for _, perm := range perms {
		for _, r := range perm.IpRanges {
			if aws.ToString(r.CidrIp) != openCIDR {
				continue
			}
			for port := range sensitivePorts {
				if portInRange(perm, port) {
					return port, true
				}
			}
		}
	}
	return 0, false
}

func portInRange(perm ec2types.IpPermission, port int32) bool {
	from, to := aws.ToInt32(perm.FromPort), aws.ToInt32(perm.ToPort)
	if perm.FromPort == nil || perm.ToPort == nil {
		return false
	}
	return port >= from && port <= to
}

func portDescription(port int32) string {
	return "security group allows inbound traffic on port " + strconv.Itoa(int(port)) + " from 0.0.0.0/0"
}
