package models

import "time"

// MetricsSample is one point-in-time reading of host resource usage.
// Entries are created by the sampler loop and never mutated after
// creation; ring buffers own them thereafter.
//
// Floats are stored at full precision and returned unrounded: neither
// Snapshot nor History rounds them to two decimals.
type MetricsSample struct {
	Timestamp        time.Time `json:"ts"`
	CPUPercent       float64   `json:"cpu_percent"`
	PerCoreCPU       []float64 `json:"per_core_cpu"`
	MemoryPercent    float64   `json:"memory_percent"`
	MemoryUsedGB     float64   `json:"memory_used_gb"`
	MemoryTotalGB    float64   `json:"memory_total_gb"`
	DiskPercent      float64   `json:"disk_percent"`
	DiskUsedGB       float64   `json:"disk_used_gb"`
	DiskTotalGB      float64   `json:"disk_total_gb"`
	AppRSSMB         float64   `json:"app_rss_mb"`
	NetSentKBs       float64   `json:"net_sent_kbs"`
	NetRecvKBs       float64   `json:"net_recv_kbs"`
	ProcessCount     int       `json:"process_count"`
	OpenConnections  int       `json:"open_connections"`
}

// RingPoint is one (timestamp, value) pair stored in a telemetry ring buffer.
type RingPoint struct {
	Timestamp time.Time `json:"time"`
	Value     float64   `json:"value"`
}

// HostIdentity augments a MetricsSample snapshot with static host facts.
type HostIdentity struct {
	Hostname        string    `json:"hostname"`
	Platform        string    `json:"platform"`
	BootTime        time.Time `json:"boot_time"`
	ProcessUptime   string    `json:"app_uptime"`
	SystemUptime    string    `json:"system_uptime"`
}

// AlertThresholds configures the breach levels TelemetrySampler.Alerts scans for.
type AlertThresholds struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

// Alert describes one threshold breach detected by TelemetrySampler.Alerts.
type Alert struct {
	Level     string  `json:"level"` // WARNING or CRITICAL
	Message   string  `json:"message"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

// Snapshot is the full payload returned by TelemetrySampler.Snapshot: the
// current sample, host identity, and the configured alert thresholds.
type Snapshot struct {
	MetricsSample
	Host       HostIdentity    `json:"host"`
	Thresholds AlertThresholds `json:"alert_thresholds"`
}

// History is the tail of each per-metric ring buffer, as returned by
// TelemetrySampler.History.
type History struct {
	CPU    []RingPoint `json:"cpu"`
	Memory []RingPoint `json:"memory"`
	Disk   []RingPoint `json:"disk"`
}

// VisitRecord is one recorded HTTP visit.
type VisitRecord struct {
	Timestamp      time.Time `json:"ts"`
	ClientIP       string    `json:"client_ip"`
	UserAgent      string    `json:"user_agent_truncated_to_100_chars"`
	SequenceNumber int64     `json:"sequence_number"`
}
