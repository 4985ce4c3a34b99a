package platform

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/folio/cursorfx"
	"github.com/folio/cursorfx/fxrt/core"
	"github.com/folio/cursorfx/fxrt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window acting as both the Host and the MountTarget of a
// ParticleCursor. Each pass of Run is one display frame.
//
// The overlay is not input-transparent: GLFW 3.3 has no mouse passthrough, so
// clicks land on the window rather than on what is beneath it, and pointer
// moves are only reported while the cursor is over the window.
type Window struct {
	*cursorfx.FrameQueue
	glfw   *glfw.Window
	events *cursorfx.Events
	width  int
	height int

	overlay *gpu.Overlay
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// NewWindow initialises GLFW and opens the overlay window. Must be called
// from the main thread.
func NewWindow(cfg cursorfx.WindowConfig) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfwBool(cfg.Transparent))
	glfw.WindowHint(glfw.Floating, glfwBool(cfg.Floating))
	glfw.WindowHint(glfw.Decorated, glfwBool(cfg.Decorated))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{
		FrameQueue: cursorfx.NewFrameQueue(),
		glfw:       win,
		events:     cursorfx.NewEvents(),
		width:      cfg.Width,
		height:     cfg.Height,
	}

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.events.EmitPointerMove(x, y)
	})
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		w.events.EmitResize(width, height)
	})
	win.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.SetShouldClose(true)
		}
	})
	return w, nil
}

func (w *Window) Now() time.Time { return time.Now() }

func (w *Window) Viewport() (int, int) { return w.width, w.height }

func (w *Window) Events() *cursorfx.Events { return w.events }

// Attach creates the WebGPU overlay surface over the window.
func (w *Window) Attach(opts core.SurfaceOptions) (core.Surface, error) {
	if w.overlay != nil {
		return nil, fmt.Errorf("window already has an overlay attached")
	}
	overlay, err := gpu.NewOverlay(w.glfw, opts)
	if err != nil {
		return nil, err
	}
	w.overlay = overlay
	return overlay, nil
}

func (w *Window) Detach(s core.Surface) {
	if o, ok := s.(*gpu.Overlay); ok && o == w.overlay {
		w.overlay = nil
	}
}

// Run polls window events and runs one frame of scheduled callbacks per pass
// until the window is closed or ctx is done.
func (w *Window) Run(ctx context.Context) {
	for !w.glfw.ShouldClose() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		glfw.PollEvents()
		w.RunFrame()
	}
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}
