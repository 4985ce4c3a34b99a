package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Pool is a fixed-capacity set of particle slots stored as parallel slices.
// A slot is active while Life > 0. Capacity never changes after NewPool.
type Pool struct {
	Pos      []mgl32.Vec3
	Vel      []mgl32.Vec3
	Color    []mgl32.Vec3
	BaseSize []float32
	Size     []float32 // displayed size, recomputed every frame while active
	Life     []float32 // remaining seconds
	MaxLife  []float32
	Seed     []float32

	// Set by the simulation, cleared by whoever uploads the data.
	PositionsDirty bool
	SizesDirty     bool
}

// NewPool allocates params.Capacity inactive slots parked at params.Park.
// Colour, base size, max lifetime and seed are drawn once here and kept for
// the life of the pool.
func NewPool(params Params, rng *rand.Rand) *Pool {
	n := params.Capacity
	if n < 0 {
		n = 0
	}
	p := &Pool{
		Pos:      make([]mgl32.Vec3, n),
		Vel:      make([]mgl32.Vec3, n),
		Color:    make([]mgl32.Vec3, n),
		BaseSize: make([]float32, n),
		Size:     make([]float32, n),
		Life:     make([]float32, n),
		MaxLife:  make([]float32, n),
		Seed:     make([]float32, n),
	}

	for i := 0; i < n; i++ {
		p.Pos[i] = params.Park
		p.Color[i] = VividColor(rng, params.Saturation, params.Lightness)
		p.MaxLife[i] = lerp(params.Lifetime[0], params.Lifetime[1], rng.Float32())
		p.Seed[i] = rng.Float32()
		p.BaseSize[i] = lerp(params.Size[0], params.Size[1], p.Seed[i])
	}
	p.PositionsDirty = true
	p.SizesDirty = true
	return p
}

func (p *Pool) Len() int { return len(p.Pos) }

func (p *Pool) Active(i int) bool { return p.Life[i] > 0 }

func (p *Pool) ActiveCount() int {
	n := 0
	for _, l := range p.Life {
		if l > 0 {
			n++
		}
	}
	return n
}

func (p *Pool) park(i int, at mgl32.Vec3) {
	p.Pos[i] = at
	p.Vel[i] = mgl32.Vec3{}
	p.Size[i] = 0
	p.Life[i] = 0
}

// Release drops the slot storage. The pool must not be used afterwards.
func (p *Pool) Release() {
	p.Pos = nil
	p.Vel = nil
	p.Color = nil
	p.BaseSize = nil
	p.Size = nil
	p.Life = nil
	p.MaxLife = nil
	p.Seed = nil
}
