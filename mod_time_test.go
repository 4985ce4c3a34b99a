package cursorfx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestClampDelta(t *testing.T) {
	assert.Equal(t, time.Duration(0), ClampDelta(-time.Millisecond, DefaultMaxFrameDelta))
	assert.Equal(t, 16*time.Millisecond, ClampDelta(16*time.Millisecond, DefaultMaxFrameDelta))
	assert.Equal(t, DefaultMaxFrameDelta, ClampDelta(5*time.Second, DefaultMaxFrameDelta))
}

func TestTime_FirstTickUsesCeiling(t *testing.T) {
	clock := NewManualClock(epoch)
	tm := NewTime(clock, 0)

	tm.Tick()
	assert.Equal(t, DefaultMaxFrameDelta, tm.Dt)
	assert.True(t, tm.Last.IsZero())
	assert.Equal(t, 0.0, tm.Millis())
}

func TestTime_StallIsClamped(t *testing.T) {
	clock := NewManualClock(epoch)
	tm := NewTime(clock, DefaultMaxFrameDelta)
	tm.Tick()

	clock.Advance(16 * time.Millisecond)
	tm.Tick()
	assert.Equal(t, 16*time.Millisecond, tm.Dt)
	assert.InDelta(t, 0.016, tm.Seconds(), 1e-6)

	clock.Advance(5 * time.Second)
	tm.Tick()
	assert.Equal(t, time.Second/30, tm.Dt)
	assert.Equal(t, 5*time.Second, tm.Raw)
	assert.InDelta(t, 5016.0, tm.Millis(), 1e-9)
}

func TestTime_ClockGoingBackwards(t *testing.T) {
	clock := NewManualClock(epoch)
	tm := NewTime(clock, DefaultMaxFrameDelta)
	tm.Tick()

	clock.Set(epoch.Add(-time.Second))
	tm.Tick()
	assert.Equal(t, time.Duration(0), tm.Dt)
}

func TestTimeModule_TicksInPrelude(t *testing.T) {
	clock := NewManualClock(epoch)
	app := NewAppBuilder().
		UseModule(TimeModule{Clock: clock, MaxDelta: time.Second}).
		Build()

	var seen []time.Duration
	app.UseSystem(System(func(tm *Time) { seen = append(seen, tm.Dt) }))

	app.Frame()
	clock.Advance(250 * time.Millisecond)
	app.Frame()

	require.Len(t, seen, 2)
	assert.Equal(t, time.Second, seen[0])
	assert.Equal(t, 250*time.Millisecond, seen[1])
}

func TestTime_ZeroEpochClock(t *testing.T) {
	clock := NewManualClock(time.Time{})
	tm := NewTime(clock, DefaultMaxFrameDelta)

	tm.Tick()
	assert.Equal(t, DefaultMaxFrameDelta, tm.Dt)

	clock.Advance(time.Second / 120)
	tm.Tick()
	assert.Equal(t, time.Second/120, tm.Dt)
}
