package cursorfx

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/folio/cursorfx/fxrt/core"
	"github.com/google/uuid"
)

var ErrAlreadyMounted = errors.New("cursorfx: already mounted")

type Option func(*ParticleCursor)

func WithConfig(cfg Config) Option {
	return func(pc *ParticleCursor) { pc.cfg = cfg }
}

func WithLogger(logger Logger) Option {
	return func(pc *ParticleCursor) { pc.logger = logger }
}

// WithRand fixes the random source used for the pool and for emission.
func WithRand(rng *rand.Rand) Option {
	return func(pc *ParticleCursor) { pc.rng = rng }
}

// ParticleCursor is a full-viewport, input-transparent overlay that emits
// particles at the pointer and draws them once per display frame.
type ParticleCursor struct {
	host   Host
	cfg    Config
	logger Logger
	rng    *rand.Rand

	id      uuid.UUID
	log     Logger
	target  MountTarget
	surface Surface
	app     *App
	loop    *FrameLoop
	subs    []*Subscription
	mounted bool
}

func NewParticleCursor(host Host, opts ...Option) *ParticleCursor {
	pc := &ParticleCursor{
		host: host,
		cfg:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(pc)
	}
	return pc
}

// Mount attaches an overlay surface to target, allocates the particle pool,
// subscribes to resize and pointer-move and starts the frame loop. The first
// frame runs before Mount returns. A nil target is a no-op.
func (pc *ParticleCursor) Mount(target MountTarget) error {
	if target == nil {
		return nil
	}
	if pc.mounted {
		return ErrAlreadyMounted
	}

	pc.id = uuid.New()
	pc.log = pc.logger
	if pc.log == nil {
		prefix := fmt.Sprintf("%s %s", pc.cfg.LogPrefix, pc.id.String()[:8])
		pc.log = NewDefaultLogger(prefix, pc.cfg.Debug)
	}

	width, height := pc.host.Viewport()
	surface, err := target.Attach(SurfaceOptions{
		Width:       width,
		Height:      height,
		Transparent: true,
		Capacity:    pc.cfg.Particles.Capacity,
		PointScale:  pc.cfg.PointScale,
	})
	if err != nil {
		pc.log.Errorf("attach overlay surface: %v", err)
		return fmt.Errorf("attach overlay surface: %w", err)
	}

	app := NewAppBuilder().
		UseModule(
			LoggingModule{Logger: pc.log},
			TimeModule{Clock: pc.host, MaxDelta: pc.cfg.FrameDeltaCeiling()},
			InputModule{Width: width, Height: height},
			CameraModule{Params: pc.cfg.Camera},
			ParticleCursorModule{Params: pc.cfg.Particles, Rand: pc.rng, Surface: surface},
		).
		Build()

	pointer, _ := Resource[Pointer](app)
	events := pc.host.Events()
	pc.subs = []*Subscription{
		events.OnResize(pc.resize),
		events.OnPointerMove(func(x, y float64) {
			pointer.X, pointer.Y = x, y
		}),
	}

	pc.target = target
	pc.surface = surface
	pc.app = app
	pc.loop = NewFrameLoop(pc.host, app.Frame)
	pc.mounted = true

	pc.log.Infof("mounted %dx%d overlay with %d particles", width, height, pc.cfg.Particles.Capacity)
	pc.loop.Start()
	return nil
}

func (pc *ParticleCursor) resize(width, height int) {
	vp, _ := Resource[Viewport](pc.app)
	cam, _ := Resource[core.PerspectiveCamera](pc.app)
	if !vp.Set(width, height) {
		return
	}
	cam.SetViewport(width, height)
	pc.surface.Resize(width, height)
}

// Unmount stops the frame loop, removes the surface from its target, drops
// both listeners and releases the pool and the surface's GPU resources.
// Calling it when not mounted does nothing.
func (pc *ParticleCursor) Unmount() {
	if !pc.mounted {
		return
	}

	pc.loop.Stop()
	pc.target.Detach(pc.surface)
	for _, sub := range pc.subs {
		sub.Unsubscribe()
	}
	if sim, ok := Resource[core.Simulation](pc.app); ok {
		sim.Release()
	}
	pc.surface.Release()

	pc.log.Infof("unmounted after %d frames", pc.loop.Frames())

	pc.subs = nil
	pc.surface = nil
	pc.target = nil
	pc.app = nil
	pc.mounted = false
}

func (pc *ParticleCursor) Mounted() bool {
	return pc.mounted
}

// App exposes the running App, nil when not mounted.
func (pc *ParticleCursor) App() *App {
	return pc.app
}

func (pc *ParticleCursor) Frames() uint64 {
	if pc.loop == nil {
		return 0
	}
	return pc.loop.Frames()
}
