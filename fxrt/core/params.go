package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Params tunes the particle pool and its per-frame simulation.
// Ranges are [min, max]; jitters are full widths centred on zero.
type Params struct {
	Capacity     int        `yaml:"capacity"`
	EmitPerFrame int        `yaml:"emitPerFrame"`
	Lifetime     [2]float32 `yaml:"lifetime"`   // seconds
	Size         [2]float32 `yaml:"size"`       // world units
	Speed        [2]float32 `yaml:"speed"`      // units per 1/60 s
	Saturation   [2]float32 `yaml:"saturation"` // HSL, 0..1
	Lightness    [2]float32 `yaml:"lightness"`  // HSL, 0..1

	Jitter      float32 `yaml:"jitter"`
	DepthJitter float32 `yaml:"depthJitter"`
	Friction    float32 `yaml:"friction"`
	Gravity     float32 `yaml:"gravity"`
	Turbulence  float32 `yaml:"turbulence"`
	Pulse       float32 `yaml:"pulse"`
	TimeScale   float32 `yaml:"timeScale"`

	// Park is where inactive slots wait, outside the visible frustum.
	Park mgl32.Vec3 `yaml:"park"`
}

func DefaultParams() Params {
	return Params{
		Capacity:     1500,
		EmitPerFrame: 10,
		Lifetime:     [2]float32{0.5, 2.0},
		Size:         [2]float32{0.02, 0.10},
		Speed:        [2]float32{0.01, 0.06},
		Saturation:   [2]float32{0.7, 1.0},
		Lightness:    [2]float32{0.5, 0.8},
		Jitter:       0.05,
		DepthJitter:  0.01,
		Friction:     0.98,
		Gravity:      0.0002,
		Turbulence:   0.0005,
		Pulse:        0.1,
		TimeScale:    60,
		Park:         mgl32.Vec3{1000, 1000, 0},
	}
}

// CameraParams describes the overlay's perspective camera.
type CameraParams struct {
	Fov      float32 `yaml:"fov"` // vertical, degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"` // camera z, looking at the origin
}

func DefaultCameraParams() CameraParams {
	return CameraParams{
		Fov:      75,
		Near:     0.1,
		Far:      1000,
		Distance: 5,
	}
}
