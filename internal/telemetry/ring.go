package telemetry

import (
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// ring is a fixed-capacity circular buffer of RingPoints. Appends are O(1)
// and Tail never allocates more than the requested window.
type ring struct {
	points []models.RingPoint
	cap    int
	next   int
	full   bool
}

func newRing(capacity int) *ring {
	return &ring{points: make([]models.RingPoint, capacity), cap: capacity}
}

func (r *ring) append(ts time.Time, value float64) {
	r.points[r.next] = models.RingPoint{Timestamp: ts, Value: value}
	r.next = (r.next + 1) % r.cap
	if r.next == 0 {
		r.full = true
	}
}

// tail returns the last n points in chronological order. n is clamped to
// however many points have actually been recorded.
func (r *ring) tail(n int) []models.RingPoint {
	size := r.next
	if r.full {
		size = r.cap
	}
	if n > size {
		n = size
	}
	if n == 0 {
		return nil
	}

	out := make([]models.RingPoint, n)
	start := r.next - n
	for i := 0; i < n; i++ {
		idx := (start + i + r.cap) % r.cap
		out[i] = r.points[idx]
	}
	return out
}
