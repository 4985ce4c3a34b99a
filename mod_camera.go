package cursorfx

import (
	"github.com/folio/cursorfx/fxrt/core"
)

// CameraModule installs the overlay camera and the system that turns the
// raw pointer position into a world-space anchor on the z=0 plane.
type CameraModule struct {
	Params core.CameraParams
}

func (mod CameraModule) Install(app *App, cmd *Commands) {
	vp, ok := Resource[Viewport](app)
	if !ok {
		panic("CameraModule requires InputModule")
	}
	cmd.AddResources(core.NewPerspectiveCamera(mod.Params, vp.Width, vp.Height))
	cmd.UseSystem(
		System(pointerAnchorSystem).
			InStage(PreUpdate),
	)
}

func pointerAnchorSystem(pointer *Pointer, vp *Viewport, cam *core.PerspectiveCamera) {
	anchor, ok := cam.PointerOnPlane(pointer.X, pointer.Y, vp.Width, vp.Height, 0)
	if !ok {
		// parallel ray, keep the previous anchor
		return
	}
	pointer.Anchor = anchor
	pointer.Valid = true
}
