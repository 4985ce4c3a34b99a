package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/folio/cursorfx/fxrt/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Overlay is a WebGPU surface over a GLFW window that renders the particle
// pool with a PointPass.
type Overlay struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration

	Pass       *PointPass
	ClearColor wgpu.Color
}

func NewOverlay(window *glfw.Window, opts core.SurfaceOptions) (*Overlay, error) {
	o := &Overlay{Window: window}
	if opts.Transparent {
		o.ClearColor = wgpu.Color{R: 0, G: 0, B: 0, A: 0}
	} else {
		o.ClearColor = wgpu.Color{R: 0, G: 0, B: 0, A: 1}
	}

	o.Instance = wgpu.CreateInstance(nil)
	o.Surface = o.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := o.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: o.Surface,
		PowerPreference:   wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		o.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	o.Adapter = adapter

	o.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Overlay Device",
	})
	if err != nil {
		o.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	o.Queue = o.Device.GetQueue()

	caps := o.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		o.Release()
		return nil, fmt.Errorf("surface reports no formats or alpha modes")
	}

	width, height := window.GetFramebufferSize()
	if width <= 0 || height <= 0 {
		width, height = opts.Width, opts.Height
	}
	o.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo, // vsync paces the frame loop
		AlphaMode:   pickAlphaMode(caps.AlphaModes, opts.Transparent),
	}
	o.Surface.Configure(adapter, o.Device, o.Config)

	o.Pass, err = NewPointPass(o.Device, o.Config.Format, opts.Capacity, opts.PointScale)
	if err != nil {
		o.Release()
		return nil, err
	}
	return o, nil
}

func pickAlphaMode(modes []wgpu.CompositeAlphaMode, transparent bool) wgpu.CompositeAlphaMode {
	if transparent {
		for _, m := range modes {
			if m == wgpu.CompositeAlphaModePremultiplied {
				return m
			}
		}
	}
	return modes[0]
}

// Resize reconfigures the swapchain to the window's framebuffer. The logical
// size is ignored on HiDPI displays where the two differ. Same-size calls are
// no-ops.
func (o *Overlay) Resize(width, height int) {
	if fw, fh := o.Window.GetFramebufferSize(); fw > 0 && fh > 0 {
		width, height = fw, fh
	}
	if width <= 0 || height <= 0 {
		return
	}
	if o.Config.Width == uint32(width) && o.Config.Height == uint32(height) {
		return
	}
	o.Config.Width = uint32(width)
	o.Config.Height = uint32(height)
	o.Surface.Configure(o.Adapter, o.Device, o.Config)
}

// Size returns the configured swapchain size.
func (o *Overlay) Size() (int, int) {
	return int(o.Config.Width), int(o.Config.Height)
}

func (o *Overlay) Draw(cam *core.PerspectiveCamera, pool *core.Pool) error {
	if err := o.Pass.Update(o.Queue, cam, pool, o.Config.Width, o.Config.Height); err != nil {
		return err
	}

	nextTexture, err := o.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := o.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: o.ClearColor,
		}},
	})
	o.Pass.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("point pass end: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()

	o.Queue.Submit(cmd)
	o.Surface.Present()
	return nil
}

// Release frees the point pass and every wgpu object the overlay created.
// Safe to call on a partially constructed overlay.
func (o *Overlay) Release() {
	if o.Pass != nil {
		o.Pass.Release()
		o.Pass = nil
	}
	if o.Queue != nil {
		o.Queue.Release()
		o.Queue = nil
	}
	if o.Device != nil {
		o.Device.Release()
		o.Device = nil
	}
	if o.Adapter != nil {
		o.Adapter.Release()
		o.Adapter = nil
	}
	if o.Surface != nil {
		o.Surface.Release()
		o.Surface = nil
	}
	if o.Instance != nil {
		o.Instance.Release()
		o.Instance = nil
	}
}
