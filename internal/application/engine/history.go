// Package engine implements the goal progress engine: event-driven
// incremental recomputation of per-goal derived progress state.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// sample is one observed (timestamp, normalized value) point for a goal.
type sample struct {
	At    time.Time
	Value decimal.Decimal
}

// history is the bounded per-goal rolling buffer of value samples the pace
// computation reads. Samples are appended only when the value actually
// changes, so recomputing with unchanged facts never grows the buffer.
type history struct {
	samples  []sample
	capacity int
}

func newHistory(capacity int) *history {
	if capacity < 2 {
		capacity = 2
	}
	return &history{capacity: capacity}
}

// observe records a new sample unless the value is unchanged from the last one.
func (h *history) observe(at time.Time, value decimal.Decimal) {
	if n := len(h.samples); n > 0 && h.samples[n-1].Value.Equal(value) {
		return
	}
	h.samples = append(h.samples, sample{At: at, Value: value})
	if len(h.samples) > h.capacity {
		h.samples = h.samples[len(h.samples)-h.capacity:]
	}
}

// prune drops samples older than windowStart, keeping the newest sample at or
// before the boundary so valueAt still has an anchor for the window start.
func (h *history) prune(windowStart time.Time) {
	cut := 0
	for i, s := range h.samples {
		if s.At.After(windowStart) {
			break
		}
		cut = i
	}
	if cut > 0 {
		h.samples = h.samples[cut:]
	}
}

// valueAt returns the goal's value as of t: the newest sample at or before t,
// falling back to the oldest sample when the buffer does not reach that far
// back. The second return is false when the buffer is empty.
func (h *history) valueAt(t time.Time) (decimal.Decimal, bool) {
	if len(h.samples) == 0 {
		return decimal.Zero, false
	}
	best := h.samples[0].Value
	for _, s := range h.samples {
		if s.At.After(t) {
			break
		}
		best = s.Value
	}
	return best, true
}
