package cursorfx

import (
	"math/rand/v2"
	"time"

	"github.com/folio/cursorfx/fxrt/core"
)

// Overlay is the surface the particle pool is drawn into.
type Overlay struct {
	Surface Surface
}

// FrameStats counts frames and measures the frame rate over one-second windows.
type FrameStats struct {
	Frames  uint64
	FPS     float64
	Active  int
	Emitted int

	windowFrames int
	windowTime   time.Duration
}

// ParticleCursorModule installs the particle simulation and the systems that
// step it, draw it and report on it.
type ParticleCursorModule struct {
	Params  core.Params
	Rand    *rand.Rand
	Surface Surface
}

func (mod ParticleCursorModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(
		core.NewSimulation(mod.Params, mod.Rand),
		&Overlay{Surface: mod.Surface},
		&FrameStats{},
	)
	cmd.UseSystem(
		System(particleSystem).
			InStage(Update),
	)
	cmd.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
	cmd.UseSystem(
		System(statsSystem).
			InStage(PostRender),
	)
}

func particleSystem(t *Time, pointer *Pointer, sim *core.Simulation) {
	sim.Step(t.Seconds(), t.Millis(), pointer.Anchor)
}

func renderSystem(overlay *Overlay, cam *core.PerspectiveCamera, sim *core.Simulation, cmd *Commands) {
	if overlay.Surface == nil {
		return
	}
	if err := overlay.Surface.Draw(cam, sim.Pool); err != nil {
		cmd.Logger().Warnf("render failed: %v", err)
	}
}

func statsSystem(t *Time, sim *core.Simulation, stats *FrameStats, cmd *Commands) {
	stats.Frames++
	stats.Active = sim.Last.Active
	stats.Emitted = sim.Last.Emitted

	stats.windowFrames++
	stats.windowTime += t.Raw
	if stats.windowTime < time.Second {
		return
	}
	stats.FPS = float64(stats.windowFrames) / stats.windowTime.Seconds()
	stats.windowFrames = 0
	stats.windowTime = 0

	logger := cmd.Logger()
	if logger.DebugEnabled() {
		logger.Debugf("fps %.1f, %d/%d particles active", stats.FPS, stats.Active, sim.Pool.Len())
	}
}
