package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nimbusaudit/cloudpulse/internal/audit"
	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/export"
	"github.com/nimbusaudit/cloudpulse/internal/logging"
)

func newAuditCmd() *cobra.Command {
	var (
		region    string
		mode      string
		reportFmt string
		output    string
		summary   bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run a one-shot AWS cost/security audit against the default credential chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			account, err := cloudaws.LoadAccount(ctx, region)
			if err != nil {
				return fmt.Errorf("load AWS account: %w", err)
			}
			if region == "" {
				region = account.Config.Region
			}
			client := cloudaws.NewSDKClient(account.ForRegion(region))
			log := logging.New("development")
			orch := audit.New(client, account.AccountID, client.Region(), log)

			switch mode {
			case "quick":
				return printGenericJSON(cmd, orch.RunQuick(ctx), output)
			case "structured":
				return printGenericJSON(cmd, orch.RunStructured(ctx), output)
			default:
				report := orch.RunFull(ctx)
				if output != "" {
					if err := export.WriteJSONFile(output, report); err != nil {
						return err
					}
				}
				switch {
				case summary:
					export.Summary(cmd.OutOrStdout(), report)
				case reportFmt == "csv":
					return export.CSV(cmd.OutOrStdout(), report)
				default:
					return export.JSON(cmd.OutOrStdout(), report)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "AWS region to audit (default: profile's configured region)")
	cmd.Flags().StringVar(&mode, "mode", "full", "Audit mode: full, structured, or quick")
	cmd.Flags().StringVar(&reportFmt, "report", "json", "Output format for full mode: json or csv")
	cmd.Flags().StringVar(&output, "output", "", "Write the JSON report to this file path in addition to stdout")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a compact summary instead of the full report (full mode only)")

	return cmd
}

// printGenericJSON marshals any of the non-Report projections (Structured,
// Quick) as indented JSON, optionally writing a copy to output.
func printGenericJSON(cmd *cobra.Command, v interface{}, output string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if output != "" {
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write report file %q: %w", output, err)
		}
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}
