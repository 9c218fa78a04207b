package visitors

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter is the remote Counter backend, a thin wrapper over go-redis
// translating Counter's operations onto the corresponding Redis commands.
type RedisCounter struct {
	client *redis.Client
}

// RedisConfig names the connection parameters the constructor needs.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// NewRedisCounter dials host:port and returns a RedisCounter. It does not
// verify connectivity itself — callers use Ping once at startup and fall
// back to a different Counter on failure.
func NewRedisCounter(cfg RedisConfig) *RedisCounter {
	client := redis.NewClient(&redis.Options{
		Addr:     addr(cfg),
		Password: cfg.Password,
		DB:       0,
	})
	return &RedisCounter{client: client}
}

func addr(cfg RedisConfig) string {
	return cfg.Host + ":" + strconv.Itoa(cfg.Port)
}

func (r *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r *RedisCounter) LPush(ctx context.Context, key string, value string) error {
	return r.client.LPush(ctx, key, value).Err()
}

func (r *RedisCounter) LTrim(ctx context.Context, key string, start, stop int64) error {
	return r.client.LTrim(ctx, key, start, stop).Err()
}

func (r *RedisCounter) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return r.client.LRange(ctx, key, start, stop).Result()
}

func (r *RedisCounter) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "0", nil
	}
	return v, err
}

// Ping reports whether the Redis connection is currently reachable. Connect
// calls it once as the construction-time probe; the redis_connected flag
// reported over HTTP is fixed by that probe and does not call Ping again.
func (r *RedisCounter) Ping(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err() == nil
}

var _ Counter = (*RedisCounter)(nil)
