package cursorfx

import (
	"sync"
	"time"
)

// DefaultMaxFrameDelta caps the simulation step so a stalled frame does not
// fling particles across the screen.
const DefaultMaxFrameDelta = time.Second / 30

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Time is the per-frame simulation clock.
type Time struct {
	Time   time.Time     // this frame
	Last   time.Time     // previous frame, unset before the first
	Dt     time.Duration // clamped to [0, MaxDt]
	Raw    time.Duration // unclamped wall time since Last
	MaxDt  time.Duration
	Origin time.Time

	clock   Clock
	started bool
}

func NewTime(clock Clock, maxDt time.Duration) *Time {
	if clock == nil {
		clock = SystemClock{}
	}
	if maxDt <= 0 {
		maxDt = DefaultMaxFrameDelta
	}
	return &Time{
		MaxDt:  maxDt,
		Origin: clock.Now(),
		clock:  clock,
	}
}

// Tick samples the clock and recomputes Dt. The first tick has no previous
// frame and gets MaxDt.
func (t *Time) Tick() {
	now := t.clock.Now()
	if !t.started {
		t.Raw = t.MaxDt
		t.started = true
	} else {
		t.Raw = now.Sub(t.Time)
	}
	t.Last = t.Time
	t.Time = now
	t.Dt = ClampDelta(t.Raw, t.MaxDt)
}

// Seconds returns Dt in seconds.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

// Millis returns the frame timestamp in milliseconds since the clock origin.
func (t *Time) Millis() float64 {
	return float64(t.Time.Sub(t.Origin)) / float64(time.Millisecond)
}

func ClampDelta(elapsed, max time.Duration) time.Duration {
	if elapsed < 0 {
		return 0
	}
	if elapsed > max {
		return max
	}
	return elapsed
}

type TimeModule struct {
	Clock    Clock
	MaxDelta time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewTime(mod.Clock, mod.MaxDelta))
	cmd.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(t *Time) {
	t.Tick()
}
