package visitors

import (
	"context"

	"github.com/nimbusaudit/cloudpulse/internal/logging"
)

// Connect probes the Redis backend once and returns a Tracker bound to
// whichever backend is usable. On probe failure it falls back permanently
// to an in-process MemoryCounter for the remainder of the process
// lifetime; there is no automatic reconnect path.
func Connect(ctx context.Context, cfg RedisConfig, log *logging.Logger) *Tracker {
	redisBackend := NewRedisCounter(cfg)
	if redisBackend.Ping(ctx) {
		return NewTracker(redisBackend, true)
	}

	if log != nil {
		log.WithField("redis_host", cfg.Host).Warn("redis unavailable at startup, falling back to in-memory visitor counter")
	}
	return NewTracker(NewMemoryCounter(), false)
}
