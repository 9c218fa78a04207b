package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nimbusaudit/cloudpulse/internal/httputil"
)

const liveTickInterval = 3 * time.Second

// handleMetricsLive streams one JSON snapshot event every ~3s until the
// client disconnects. Backpressure: if a write is still in flight when the
// next tick fires, that tick is dropped rather than queued.
func (s *Service) handleMetricsLive(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.InternalError(w, "streaming unsupported by this connection")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(liveTickInterval)
	defer ticker.Stop()

	writeDone := make(chan struct{}, 1)
	writeDone <- struct{}{}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case <-writeDone:
				go s.writeLiveEvent(w, flusher, writeDone)
			default:
				// previous event still being written; drop this tick.
			}
		}
	}
}

func (s *Service) writeLiveEvent(w http.ResponseWriter, flusher http.Flusher, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()

	if s.sampler == nil {
		return
	}
	data, err := json.Marshal(s.sampler.Snapshot())
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
