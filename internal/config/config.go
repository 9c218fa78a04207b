// Package config loads cloudpulse's runtime configuration from the process
// environment, applying documented defaults for anything unset. No
// third-party env/config library is used here: os.Getenv plus strconv
// parsing is the entire concern (see DESIGN.md for why that is the right
// call even though the rest of the module reaches for third-party
// libraries freely).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the fully resolved runtime configuration for the `serve` CLI
// subcommand; `audit` takes its settings from flags instead.
type Config struct {
	SecretKey string
	Env       string // "development" or "production"

	RedisHost     string
	RedisPort     int
	RedisPassword string

	MetricsIntervalSeconds int
	AlertCPUThreshold      float64
	AlertMemoryThreshold   float64
	AlertDiskThreshold     float64

	AWSRegion string

	FargateCPUPrice    float64
	FargateMemoryPrice float64
}

// Load reads every configuration variable from the environment, applying
// the documented default whenever a variable is unset or empty.
func Load() (Config, error) {
	cfg := Config{
		SecretKey:              os.Getenv("SECRET_KEY"),
		Env:                    getStringDefault("ENV", "development"),
		RedisHost:              getStringDefault("REDIS_HOST", "localhost"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		AWSRegion:              getStringDefault("AWS_REGION", "ap-south-1"),
		MetricsIntervalSeconds: 5,
		AlertCPUThreshold:      80,
		AlertMemoryThreshold:   85,
		AlertDiskThreshold:     90,
		FargateCPUPrice:        0.04048,
		FargateMemoryPrice:     0.00445,
	}

	var err error
	if cfg.RedisPort, err = getIntDefault("REDIS_PORT", 6379); err != nil {
		return Config{}, err
	}
	if cfg.MetricsIntervalSeconds, err = getIntDefault("METRICS_INTERVAL", 5); err != nil {
		return Config{}, err
	}
	if cfg.AlertCPUThreshold, err = getFloatDefault("ALERT_CPU_THRESHOLD", 80); err != nil {
		return Config{}, err
	}
	if cfg.AlertMemoryThreshold, err = getFloatDefault("ALERT_MEMORY_THRESHOLD", 85); err != nil {
		return Config{}, err
	}
	if cfg.AlertDiskThreshold, err = getFloatDefault("ALERT_DISK_THRESHOLD", 90); err != nil {
		return Config{}, err
	}
	if cfg.FargateCPUPrice, err = getFloatDefault("FARGATE_CPU_PRICE", 0.04048); err != nil {
		return Config{}, err
	}
	if cfg.FargateMemoryPrice, err = getFloatDefault("FARGATE_MEMORY_PRICE", 0.00445); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getStringDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return n, nil
}

func getFloatDefault(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

// ThresholdOverrides is the optional YAML file shape accepted by the
// `cloudpulse serve --thresholds` flag. Any field left unset in the file
// keeps the Config value already resolved from the environment.
type ThresholdOverrides struct {
	SampleIntervalSeconds *int     `yaml:"sample_interval_seconds"`
	CPUThreshold          *float64 `yaml:"cpu_threshold"`
	MemoryThreshold       *float64 `yaml:"memory_threshold"`
	DiskThreshold         *float64 `yaml:"disk_threshold"`
}

// ApplyThresholdsFile loads path as YAML and overlays any set fields onto cfg.
func ApplyThresholdsFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read thresholds file %q: %w", path, err)
	}

	var overrides ThresholdOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return cfg, fmt.Errorf("parse thresholds file %q: %w", path, err)
	}

	if overrides.SampleIntervalSeconds != nil {
		cfg.MetricsIntervalSeconds = *overrides.SampleIntervalSeconds
	}
	if overrides.CPUThreshold != nil {
		cfg.AlertCPUThreshold = *overrides.CPUThreshold
	}
	if overrides.MemoryThreshold != nil {
		cfg.AlertMemoryThreshold = *overrides.MemoryThreshold
	}
	if overrides.DiskThreshold != nil {
		cfg.AlertDiskThreshold = *overrides.DiskThreshold
	}

	return cfg, nil
}
