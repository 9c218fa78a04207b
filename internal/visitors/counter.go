// Package visitors implements a small KV-backed visit tracker with a
// remote Redis backend and a single-mutex in-process fallback.
package visitors

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// Counter is the operations the HTTP layer needs from a visitor-tracking
// backend.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	LPush(ctx context.Context, key string, value string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) bool
}

const (
	visitorCountKey = "visitor_count"
	recentVisitsKey = "recent_visits"
	recentVisitsCap = 50
)

// VisitRecord is one recorded HTTP visit, serialized into recentVisitsKey.
type VisitRecord struct {
	Timestamp      time.Time `json:"ts"`
	ClientIP       string    `json:"client_ip"`
	UserAgent      string    `json:"user_agent_truncated_to_100_chars"`
	SequenceNumber int64     `json:"sequence_number"`
}

// Tracker is the production VisitorCounter: it wraps a Counter backend and
// additionally maintains an in-process list of the last 50 visits
// regardless of which backend is active.
type Tracker struct {
	backend        Counter
	backendIsRedis bool

	mu      sync.Mutex
	recent  []VisitRecord
}

// NewTracker wraps backend. backendIsRedis only affects RedisConnected's
// reporting — the tracking logic is identical for either backend.
func NewTracker(backend Counter, backendIsRedis bool) *Tracker {
	return &Tracker{backend: backend, backendIsRedis: backendIsRedis}
}

// RedisConnected reports whether this tracker ended up on the remote
// backend after construction-time probing.
func (t *Tracker) RedisConnected() bool { return t.backendIsRedis }

// RecordVisit increments the visitor count, prepends a serialized
// VisitRecord to the backend's recent-visits list (trimmed to the last 50),
// and mirrors the same record into the in-process list.
func (t *Tracker) RecordVisit(ctx context.Context, clientIP, userAgent string) (int64, error) {
	count, err := t.backend.Incr(ctx, visitorCountKey)
	if err != nil {
		return 0, err
	}

	if len(userAgent) > 100 {
		userAgent = userAgent[:100]
	}
	record := VisitRecord{
		Timestamp:      time.Now().UTC(),
		ClientIP:       clientIP,
		UserAgent:      userAgent,
		SequenceNumber: count,
	}

	if encoded, err := json.Marshal(record); err == nil {
		_ = t.backend.LPush(ctx, recentVisitsKey, string(encoded))
		_ = t.backend.LTrim(ctx, recentVisitsKey, 0, recentVisitsCap-1)
	}

	t.mu.Lock()
	t.recent = append([]VisitRecord{record}, t.recent...)
	if len(t.recent) > recentVisitsCap {
		t.recent = t.recent[:recentVisitsCap]
	}
	t.mu.Unlock()

	return count, nil
}

// Count returns the current visitor_count value from the backend.
func (t *Tracker) Count(ctx context.Context) (int64, error) {
	v, err := t.backend.Get(ctx, visitorCountKey)
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	return n, nil
}

// RecentVisits returns the in-process last-50 visit list, most recent first.
func (t *Tracker) RecentVisits() []VisitRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]VisitRecord, len(t.recent))
	copy(out, t.recent)
	return out
}
