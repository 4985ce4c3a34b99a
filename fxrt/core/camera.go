package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is a Y-up camera looking from Position at Target.
type PerspectiveCamera struct {
	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

func NewPerspectiveCamera(p CameraParams, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FovY:     p.Fov,
		Aspect:   1,
		Near:     p.Near,
		Far:      p.Far,
		Position: mgl32.Vec3{0, 0, p.Distance},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio from a viewport size. Degenerate sizes
// are ignored. Reports whether the aspect changed.
func (c *PerspectiveCamera) SetViewport(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	aspect := float32(width) / float32(height)
	if aspect == c.Aspect {
		return false
	}
	c.Aspect = aspect
	return true
}

func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Unproject maps a normalized device coordinate back to world space.
func (c *PerspectiveCamera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(ndc, c.ViewProjection().Inv())
}

// Project maps a world point to NDC and also returns its view-space depth
// (negative in front of the camera).
func (c *PerspectiveCamera) Project(world mgl32.Vec3) (mgl32.Vec3, float32) {
	view := c.View().Mul4x1(world.Vec4(1))
	clip := c.Projection().Mul4x1(view)
	if clip[3] == 0 {
		return mgl32.Vec3{}, view[2]
	}
	return clip.Vec3().Mul(1 / clip[3]), view[2]
}

// ScreenToNDC converts window pixel coordinates (origin top-left, y down)
// into normalized device coordinates.
func ScreenToNDC(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := x/float64(width)*2 - 1
	ny := -(y/float64(height))*2 + 1
	return float32(nx), float32(ny)
}

// PointerOnPlane casts a ray from the camera through the pointer and returns
// where it crosses the plane z = planeZ. ok is false when the ray runs
// parallel to the plane.
func (c *PerspectiveCamera) PointerOnPlane(x, y float64, width, height int, planeZ float32) (mgl32.Vec3, bool) {
	nx, ny := ScreenToNDC(x, y, width, height)
	p := c.Unproject(mgl32.Vec3{nx, ny, 0.5})

	dir := p.Sub(c.Position)
	if dir.Len() == 0 {
		return mgl32.Vec3{}, false
	}
	dir = dir.Normalize()
	if math.Abs(float64(dir[2])) < 1e-6 {
		return mgl32.Vec3{}, false
	}

	dist := (planeZ - c.Position[2]) / dir[2]
	return c.Position.Add(dir.Mul(dist)), true
}
