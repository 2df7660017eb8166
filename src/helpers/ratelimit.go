package helpers

import (
	"math/rand"
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// ClockGate
// -----------------------------------------------------------------------------

// ClockGate enforces a minimum wall-clock interval between consecutive
// live-provider calls, process-wide. Callers arriving early block for the
// remainder plus a small random jitter so retries from concurrent requests
// do not land in lockstep. The mutex is held across the wait, which
// serializes concurrent callers; the interval check can never be raced past.
// The wait is blocking and not cancellable.
type ClockGate struct {
	Interval  time.Duration
	JitterMin time.Duration
	JitterMax time.Duration

	mu   sync.Mutex
	last time.Time

	// Injectable for tests.
	now       func() time.Time
	sleep     SleepFunc
	randFloat func() float64
}

// -----------------------------------------------------------------------------

// NewClockGate creates a gate with the default jitter window (0.1s - 0.5s).
func NewClockGate(interval time.Duration) *ClockGate {
	return &ClockGate{
		Interval:  interval,
		JitterMin: 100 * time.Millisecond,
		JitterMax: 500 * time.Millisecond,
		now:       time.Now,
		sleep:     time.Sleep,
		randFloat: rand.Float64,
	}
}

// -----------------------------------------------------------------------------

// Wait blocks until at least Interval has passed since the previous call,
// then records the new last-call timestamp.
func (g *ClockGate) Wait() {
	if g.Interval <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	elapsed := g.now().Sub(g.last)
	if !g.last.IsZero() && elapsed < g.Interval {
		jitter := g.JitterMin + time.Duration(g.randFloat()*float64(g.JitterMax-g.JitterMin))
		g.sleep(g.Interval - elapsed + jitter)
	}

	g.last = g.now()
}

// -----------------------------------------------------------------------------

// WithClock overrides the time, sleep and jitter sources. Test hook.
func (g *ClockGate) WithClock(now func() time.Time, sleep SleepFunc, randFloat func() float64) *ClockGate {
	g.now = now
	g.sleep = sleep
	g.randFloat = randFloat
	return g
}
