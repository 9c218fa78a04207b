package httpapi

import "time"

type stopwatch struct{ start time.Time }

func newTimer() stopwatch { return stopwatch{start: time.Now()} }

func (t stopwatch) elapsed() float64 { return time.Since(t.start).Seconds() }
