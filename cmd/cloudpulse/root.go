package main

import (
	"github.com/spf13/cobra"

	"github.com/nimbusaudit/cloudpulse/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cloudpulse",
		Short: "cloudpulse — AWS cost/security audit and live host telemetry",
	}
	root.AddCommand(newAuditCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cloudpulse build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(version.Info()))
			return err
		},
	}
}
