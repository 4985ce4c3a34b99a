package cursorfx

import (
	"sync"
	"time"

	"github.com/folio/cursorfx/fxrt/core"
)

type (
	Surface        = core.Surface
	SurfaceOptions = core.SurfaceOptions
	MountTarget    = core.MountTarget
)

// Host is the environment a ParticleCursor runs in: a clock, a display-frame
// scheduler, the viewport size and the global input listeners.
type Host interface {
	Clock
	FrameScheduler
	Viewport() (width, height int)
	Events() *Events
}

// StaticHost is an in-memory Host. Frames advance only when RunFrame is
// called, which makes it suitable for headless rendering and tests.
type StaticHost struct {
	*FrameQueue
	clock  Clock
	events *Events

	mu            sync.Mutex
	width, height int
}

func NewStaticHost(clock Clock, width, height int) *StaticHost {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StaticHost{
		FrameQueue: NewFrameQueue(),
		clock:      clock,
		events:     NewEvents(),
		width:      width,
		height:     height,
	}
}

func (h *StaticHost) Now() time.Time {
	return h.clock.Now()
}

func (h *StaticHost) Viewport() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *StaticHost) Events() *Events {
	return h.events
}

// Resize changes the viewport and notifies resize listeners.
func (h *StaticHost) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	h.mu.Unlock()
	h.events.EmitResize(width, height)
}

// MovePointer notifies pointer-move listeners.
func (h *StaticHost) MovePointer(x, y float64) {
	h.events.EmitPointerMove(x, y)
}
