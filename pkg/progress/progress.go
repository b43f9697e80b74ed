// Package progress tracks and renders the advance of a sequential copy run.
package progress

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Tracker counts completed units out of a fixed total. It is owned by a
// single goroutine and is not safe for concurrent use.
type Tracker struct {
	clock     clockwork.Clock
	start     time.Time
	total     int
	completed int
}

// NewTracker starts tracking total units from the clock's current time.
func NewTracker(total int, clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{
		clock: clock,
		start: clock.Now(),
		total: total,
	}
}

// Tick marks one more unit as completed.
func (t *Tracker) Tick() {
	if t.completed < t.total {
		t.completed++
	}
}

func (t *Tracker) Completed() int {
	return t.completed
}

func (t *Tracker) Total() int {
	return t.total
}

// Done reports whether every unit has completed.
func (t *Tracker) Done() bool {
	return t.completed >= t.total
}

// Ratio is the completed fraction in [0, 1]. An empty run is complete.
func (t *Tracker) Ratio() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.completed) / float64(t.total)
}

func (t *Tracker) Elapsed() time.Duration {
	return t.clock.Since(t.start)
}

// ETA extrapolates the mean time per completed unit over the remaining
// units. It is zero before the first tick and once the run is done.
func (t *Tracker) ETA() time.Duration {
	if t.completed == 0 || t.Done() {
		return 0
	}
	perUnit := float64(t.Elapsed()) / float64(t.completed)
	return time.Duration(perUnit * float64(t.total-t.completed))
}
