package cursorfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pointer holds the latest raw pointer position in window pixels and the
// world-space anchor derived from it once per frame.
type Pointer struct {
	X, Y   float64
	Anchor mgl32.Vec3
	// Valid is false until an anchor has been computed.
	Valid bool
}

// Viewport is the overlay size in window pixels.
type Viewport struct {
	Width, Height int
}

// Set reports whether the size changed. Non-positive sizes are ignored.
func (v *Viewport) Set(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if v.Width == width && v.Height == height {
		return false
	}
	v.Width, v.Height = width, height
	return true
}

type InputModule struct {
	Width, Height int
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(
		&Pointer{},
		&Viewport{Width: mod.Width, Height: mod.Height},
	)
}
