package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nimbusaudit/cloudpulse/internal/audit"
	"github.com/nimbusaudit/cloudpulse/internal/cloudaws"
	"github.com/nimbusaudit/cloudpulse/internal/config"
	"github.com/nimbusaudit/cloudpulse/internal/httpapi"
	"github.com/nimbusaudit/cloudpulse/internal/logging"
	"github.com/nimbusaudit/cloudpulse/internal/metrics"
	"github.com/nimbusaudit/cloudpulse/internal/models"
	"github.com/nimbusaudit/cloudpulse/internal/telemetry"
	"github.com/nimbusaudit/cloudpulse/internal/visitors"
)

func newServeCmd() *cobra.Command {
	var (
		addr           string
		thresholdsPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cloudpulse HTTP service: live telemetry, visitor tracking, and AWS audit endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if thresholdsPath != "" {
				cfg, err = config.ApplyThresholdsFile(cfg, thresholdsPath)
				if err != nil {
					return fmt.Errorf("apply thresholds file: %w", err)
				}
			}

			log := logging.New(cfg.Env)
			m := metrics.New()

			thresholds := models.AlertThresholds{
				CPUPercent:    cfg.AlertCPUThreshold,
				MemoryPercent: cfg.AlertMemoryThreshold,
				DiskPercent:   cfg.AlertDiskThreshold,
			}
			sampler := telemetry.New(time.Duration(cfg.MetricsIntervalSeconds)*time.Second, thresholds, log)
			sampler.OnSample = m.TelemetrySamples.Inc
			go sampler.Run(ctx)

			tracker := visitors.Connect(ctx, visitors.RedisConfig{
				Host:     cfg.RedisHost,
				Port:     cfg.RedisPort,
				Password: cfg.RedisPassword,
			}, log)

			orch := tryLoadOrchestrator(ctx, cfg, log)

			svc := httpapi.New(cfg, log, m, sampler, orch, tracker)

			server := &http.Server{Addr: addr, Handler: svc.Router()}
			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				server.Shutdown(shutdownCtx)
			}()

			log.WithField("addr", addr).Info("cloudpulse serving")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&thresholdsPath, "thresholds", "", "Path to a YAML file overriding alert thresholds")

	return cmd
}

// tryLoadOrchestrator resolves the default AWS credential chain once at
// startup. A failure here is not fatal: the service runs with audit
// endpoints disabled (503) until restarted with valid credentials.
func tryLoadOrchestrator(ctx context.Context, cfg config.Config, log *logging.Logger) *audit.Orchestrator {
	account, err := cloudaws.LoadAccount(ctx, cfg.AWSRegion)
	if err != nil {
		log.WithField("error", err.Error()).Warn("AWS credentials not available at startup; audit endpoints disabled")
		return nil
	}

	client := cloudaws.NewSDKClient(account.ForRegion(cfg.AWSRegion))
	return audit.New(client, account.AccountID, client.Region(), log)
}
