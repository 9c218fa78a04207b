package cloudaws

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// maxRetries is the number of retry attempts after the initial call, per
// spec: three retries with exponential backoff.
const maxRetries = 3

// initialBackoff and backoffFactor drive the exponential schedule:
// 500ms, 1s, 2s, each jittered by +/-25%.
const (
	initialBackoff = 500 * time.Millisecond
	backoffFactor  = 2.0
	jitterFraction = 0.25
)

// callDeadline bounds any single SDK call, including its retries.
const callDeadline = 20 * time.Second

// retryer implements aws.Retryer with the backoff policy described above,
// classifying errors with Categorize instead of the SDK's default
// code-list so THROTTLED/TRANSIENT retry and AUTH/PERMISSION/NOT_FOUND
// fail fast.
type retryer struct {
	rng *rand.Rand
}

// newRetryer returns an aws.Retryer suitable for use as a per-client
// APIOptions retryer override.
func newRetryer() aws.Retryer {
	return &retryer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *retryer) IsErrorRetryable(err error) bool {
	return Retryable(err)
}

func (r *retryer) MaxAttempts() int {
	return maxRetries + 1
}

func (r *retryer) RetryDelay(attempt int, err error) (time.Duration, error) {
	base := float64(initialBackoff) * math.Pow(backoffFactor, float64(attempt-1))
	jitter := base * jitterFraction
	delay := base - jitter + r.rng.Float64()*2*jitter
	return time.Duration(delay), nil
}

func (r *retryer) GetRetryToken(ctx context.Context, opErr error) (releaseToken func(error) error, err error) {
	return func(error) error { return nil }, nil
}

func (r *retryer) GetInitialToken() (releaseToken func(error) error) {
	return func(error) error { return nil }
}

func (r *retryer) GetAttemptToken(ctx context.Context) (func(error) error, error) {
	return func(error) error { return nil }, nil
}
