package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// VividColor picks a uniformly random hue with saturation and lightness drawn
// from the given ranges and returns it as linear 0..1 RGB.
func VividColor(rng *rand.Rand, saturation, lightness [2]float32) mgl32.Vec3 {
	h := rng.Float64() * 360
	s := float64(lerp(saturation[0], saturation[1], rng.Float32()))
	l := float64(lerp(lightness[0], lightness[1], rng.Float32()))

	c := colorful.Hsl(h, s, l).Clamped()
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
