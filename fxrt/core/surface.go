package core

// SurfaceOptions describes the drawable a mount target should create.
type SurfaceOptions struct {
	Width       int
	Height      int
	Transparent bool
	// Capacity is the number of point instances the surface must hold.
	Capacity int
	// PointScale converts world size to pixels at unit view depth.
	PointScale float32
}

// Surface is a drawable attached to a mount target.
type Surface interface {
	Resize(width, height int)
	Draw(cam *PerspectiveCamera, pool *Pool) error
	Release()
}

// MountTarget is where an overlay surface is injected and later removed.
type MountTarget interface {
	Attach(opts SurfaceOptions) (Surface, error)
	Detach(s Surface)
}
