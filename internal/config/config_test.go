package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisHost != "localhost" {
		t.Errorf("RedisHost = %q, want localhost", cfg.RedisHost)
	}
	if cfg.RedisPort != 6379 {
		t.Errorf("RedisPort = %d, want 6379", cfg.RedisPort)
	}
	if cfg.AWSRegion != "ap-south-1" {
		t.Errorf("AWSRegion = %q, want ap-south-1", cfg.AWSRegion)
	}
	if cfg.AlertCPUThreshold != 80 || cfg.AlertMemoryThreshold != 85 || cfg.AlertDiskThreshold != 90 {
		t.Errorf("unexpected default thresholds: %+v", cfg)
	}
	if cfg.FargateCPUPrice != 0.04048 || cfg.FargateMemoryPrice != 0.00445 {
		t.Errorf("unexpected default fargate prices: %+v", cfg)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ALERT_CPU_THRESHOLD", "70.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisHost != "cache.internal" {
		t.Errorf("RedisHost = %q, want cache.internal", cfg.RedisHost)
	}
	if cfg.RedisPort != 6380 {
		t.Errorf("RedisPort = %d, want 6380", cfg.RedisPort)
	}
	if cfg.AlertCPUThreshold != 70.5 {
		t.Errorf("AlertCPUThreshold = %v, want 70.5", cfg.AlertCPUThreshold)
	}
}

func TestLoadRejectsMalformedInt(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed REDIS_PORT")
	}
}

func TestApplyThresholdsFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/thresholds.yaml"
	content := "cpu_threshold: 65\nsample_interval_seconds: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg := Config{AlertCPUThreshold: 80, AlertMemoryThreshold: 85, MetricsIntervalSeconds: 5}
	cfg, err := ApplyThresholdsFile(cfg, path)
	if err != nil {
		t.Fatalf("ApplyThresholdsFile: %v", err)
	}
	if cfg.AlertCPUThreshold != 65 {
		t.Errorf("AlertCPUThreshold = %v, want 65", cfg.AlertCPUThreshold)
	}
	if cfg.MetricsIntervalSeconds != 10 {
		t.Errorf("MetricsIntervalSeconds = %d, want 10", cfg.MetricsIntervalSeconds)
	}
	if cfg.AlertMemoryThreshold != 85 {
		t.Errorf("AlertMemoryThreshold should be unchanged, got %v", cfg.AlertMemoryThreshold)
	}
}

