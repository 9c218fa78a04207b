// Package telemetry implements TelemetrySampler: a background loop that
// samples host CPU/memory/disk/network into bounded ring buffers and serves
// point-in-time snapshots, history windows, and threshold alerts to the
// HTTP layer. Host counters come from gopsutil/v3, the same dependency the
// pack's service-layer repo carries for process/host introspection.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gonet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/nimbusaudit/cloudpulse/internal/logging"
	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// ringCapacity is the number of samples retained per metric series; at the
// default 5s interval that is one hour of history.
const ringCapacity = 720

// defaultHistoryWindow is how many trailing points History returns when the
// caller does not ask for a specific window.
const defaultHistoryWindow = 60

// cpuSampleWindow is how long the blocking per-tick CPU measurement waits,
// per the sampler's sampling-loop design.
const cpuSampleWindow = 500 * time.Millisecond

// diskPath is the filesystem root this process reports disk usage for.
var diskPath = rootPath()

func rootPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

// Sampler is the production TelemetrySampler. One Sampler runs for the
// lifetime of the process; its loop is started once via Run.
type Sampler struct {
	interval   time.Duration
	thresholds models.AlertThresholds
	log        *logging.Logger

	bootTime  time.Time
	startedAt time.Time
	pid       int32

	mu      sync.RWMutex
	current models.MetricsSample
	cpuRing *ring
	memRing *ring
	diskRing *ring

	lastNetSent, lastNetRecv uint64
	lastNetAt                time.Time

	consecutiveFailures int

	// OnSample, when set, is called after each successful tick. main wires
	// this to the telemetry sample counter so metrics stay decoupled from
	// this package.
	OnSample func()
}

// New builds a Sampler. interval is the sampling period (default 5s per
// spec); thresholds configures Alerts' breach levels.
func New(interval time.Duration, thresholds models.AlertThresholds, log *logging.Logger) *Sampler {
	return &Sampler{
		interval:   interval,
		thresholds: thresholds,
		log:        log,
		startedAt:  time.Now().UTC(),
		pid:        int32(os.Getpid()),
		cpuRing:    newRing(ringCapacity),
		memRing:    newRing(ringCapacity),
		diskRing:   newRing(ringCapacity),
	}
}

// Run drives the sampling loop until ctx is cancelled. It is meant to be
// launched once from main in its own goroutine.
func (s *Sampler) Run(ctx context.Context) {
	if info, err := host.InfoWithContext(ctx); err == nil {
		s.bootTime = time.Unix(int64(info.BootTime), 0).UTC()
	}

	// Prime the network rate baseline so the first tick doesn't report a
	// spurious spike computed against a zero-value counter.
	if counters, err := gonet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		s.lastNetSent = counters[0].BytesSent
		s.lastNetRecv = counters[0].BytesRecv
		s.lastNetAt = time.Now()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				s.consecutiveFailures++
				if s.consecutiveFailures >= 3 && s.log != nil {
					s.log.WithField("consecutive_failures", s.consecutiveFailures).Warnf("telemetry sampling degraded: %v", err)
				}
				continue
			}
			s.consecutiveFailures = 0
			if s.OnSample != nil {
				s.OnSample()
			}
		}
	}
}

// tick takes one sample and, on success, replaces current and appends to
// the ring buffers. A failed tick leaves the network rate baseline
// untouched so the next successful tick still derives a correct rate.
func (s *Sampler) tick(ctx context.Context) error {
	now := time.Now().UTC()

	cpuTotal, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return fmt.Errorf("sample cpu: %w", err)
	}
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		perCore = nil
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return fmt.Errorf("sample memory: %w", err)
	}

	du, err := disk.UsageWithContext(ctx, diskPath)
	if err != nil {
		return fmt.Errorf("sample disk: %w", err)
	}

	var sentKBs, recvKBs float64
	if counters, err := gonet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		if !s.lastNetAt.IsZero() {
			elapsed := now.Sub(s.lastNetAt).Seconds()
			if elapsed > 0 {
				sentKBs = float64(counters[0].BytesSent-s.lastNetSent) / 1024 / elapsed
				recvKBs = float64(counters[0].BytesRecv-s.lastNetRecv) / 1024 / elapsed
			}
		}
		s.lastNetSent = counters[0].BytesSent
		s.lastNetRecv = counters[0].BytesRecv
		s.lastNetAt = now
	}

	var rssMB float64
	if proc, err := process.NewProcessWithContext(ctx, s.pid); err == nil {
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			rssMB = float64(mi.RSS) / 1024 / 1024
		}
	}

	processCount := 0
	if pids, err := process.PidsWithContext(ctx); err == nil {
		processCount = len(pids)
	}

	openConns := 0
	if conns, err := gonet.ConnectionsWithContext(ctx, "all"); err == nil {
		openConns = len(conns)
	}

	sample := models.MetricsSample{
		Timestamp:       now,
		CPUPercent:      firstOrZero(cpuTotal),
		PerCoreCPU:      perCore,
		MemoryPercent:   vm.UsedPercent,
		MemoryUsedGB:    bytesToGB(vm.Used),
		MemoryTotalGB:   bytesToGB(vm.Total),
		DiskPercent:     du.UsedPercent,
		DiskUsedGB:      bytesToGB(du.Used),
		DiskTotalGB:     bytesToGB(du.Total),
		AppRSSMB:        rssMB,
		NetSentKBs:      sentKBs,
		NetRecvKBs:      recvKBs,
		ProcessCount:    processCount,
		OpenConnections: openConns,
	}

	s.mu.Lock()
	s.current = sample
	s.cpuRing.append(now, sample.CPUPercent)
	s.memRing.append(now, sample.MemoryPercent)
	s.diskRing.append(now, sample.DiskPercent)
	s.mu.Unlock()

	return nil
}

func firstOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[0]
}

func bytesToGB(b uint64) float64 {
	return float64(b) / 1024 / 1024 / 1024
}

// Snapshot returns the latest sample augmented with host identity and the
// configured alert thresholds. Safe to call concurrently with Run.
func (s *Sampler) Snapshot() models.Snapshot {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	return models.Snapshot{
		MetricsSample: current,
		Host: models.HostIdentity{
			Hostname:      hostname(),
			Platform:      platformString(),
			BootTime:      s.bootTime,
			ProcessUptime: time.Since(s.startedAt).Round(time.Second).String(),
			SystemUptime:  systemUptime(s.bootTime),
		},
		Thresholds: s.thresholds,
	}
}

// History returns the tail of each ring buffer, n samples per series. n<=0
// falls back to the default 60-sample window.
func (s *Sampler) History(n int) models.History {
	if n <= 0 {
		n = defaultHistoryWindow
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.History{
		CPU:    s.cpuRing.tail(n),
		Memory: s.memRing.tail(n),
		Disk:   s.diskRing.tail(n),
	}
}

// Alerts scans the current sample against the configured thresholds. Disk
// is always CRITICAL when breached; CPU and memory escalate to CRITICAL
// past a hard cutoff (90 and 95 respectively).
func (s *Sampler) Alerts() []models.Alert {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	var alerts []models.Alert

	if current.CPUPercent > s.thresholds.CPUPercent {
		level := "WARNING"
		if current.CPUPercent >= 90 {
			level = "CRITICAL"
		}
		alerts = append(alerts, models.Alert{
			Level:     level,
			Message:   "CPU usage above configured threshold",
			Metric:    "cpu_percent",
			Value:     current.CPUPercent,
			Threshold: s.thresholds.CPUPercent,
		})
	}

	if current.MemoryPercent > s.thresholds.MemoryPercent {
		level := "WARNING"
		if current.MemoryPercent >= 95 {
			level = "CRITICAL"
		}
		alerts = append(alerts, models.Alert{
			Level:     level,
			Message:   "Memory usage above configured threshold",
			Metric:    "memory_percent",
			Value:     current.MemoryPercent,
			Threshold: s.thresholds.MemoryPercent,
		})
	}

	if current.DiskPercent > s.thresholds.DiskPercent {
		alerts = append(alerts, models.Alert{
			Level:     "CRITICAL",
			Message:   "Disk usage above configured threshold",
			Metric:    "disk_percent",
			Value:     current.DiskPercent,
			Threshold: s.thresholds.DiskPercent,
		})
	}

	return alerts
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

func platformString() string {
	info, err := host.Info()
	if err != nil {
		return runtime.GOOS
	}
	return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
}

func systemUptime(boot time.Time) string {
	if boot.IsZero() {
		return ""
	}
	return time.Since(boot).Round(time.Second).String()
}
