package core

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Remaining lifetimes at or below this are treated as expired, so that
// repeated float decrements of a whole lifetime land on zero.
const lifeEpsilon = 1e-5

// StepStats summarises one simulation pass.
type StepStats struct {
	Active  int
	Emitted int
	Expired int
}

// Simulation owns the pool and advances it once per frame.
type Simulation struct {
	Pool   *Pool
	Params Params
	Last   StepStats

	rng *rand.Rand
}

// NewSimulation builds a pool from params. A nil rng gets a randomly seeded PCG.
func NewSimulation(params Params, rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulation{
		Pool:   NewPool(params, rng),
		Params: params,
		rng:    rng,
	}
}

// Step runs one pass over every slot in order. dt is in seconds and millis is
// the frame timestamp in milliseconds used by turbulence and pulsing. Active
// slots move and age; inactive ones are re-emitted at anchor until
// EmitPerFrame emissions have happened this pass.
func (s *Simulation) Step(dt float32, millis float64, anchor mgl32.Vec3) StepStats {
	var stats StepStats
	pool := s.Pool
	prm := s.Params

	for i := 0; i < pool.Len(); i++ {
		if pool.Life[i] > 0 {
			s.advance(i, dt, millis)
			if pool.Life[i] > 0 {
				stats.Active++
			} else {
				stats.Expired++
			}
			continue
		}

		if stats.Emitted < prm.EmitPerFrame {
			s.emit(i, anchor)
			stats.Emitted++
			stats.Active++
		}
	}

	pool.PositionsDirty = true
	pool.SizesDirty = true
	s.Last = stats
	return stats
}

func (s *Simulation) advance(i int, dt float32, millis float64) {
	pool := s.Pool
	prm := s.Params
	seed := float64(pool.Seed[i])

	pos := pool.Pos[i].Add(pool.Vel[i].Mul(dt * prm.TimeScale))

	phase := millis*0.001 + seed*100
	pos[0] += float32(math.Sin(phase)) * prm.Turbulence
	pos[1] += float32(math.Cos(phase)) * prm.Turbulence

	vel := pool.Vel[i].Mul(prm.Friction)
	vel[1] -= prm.Gravity

	life := pool.Life[i] - dt
	if life <= lifeEpsilon {
		pool.park(i, prm.Park)
		return
	}

	pool.Pos[i] = pos
	pool.Vel[i] = vel
	pool.Life[i] = life

	pulse := 1 + prm.Pulse*float32(math.Sin(millis*0.005+seed*10))
	pool.Size[i] = pool.BaseSize[i] * (life / pool.MaxLife[i]) * pulse
}

func (s *Simulation) emit(i int, anchor mgl32.Vec3) {
	pool := s.Pool
	prm := s.Params
	rng := s.rng

	pool.Pos[i] = mgl32.Vec3{
		anchor[0] + (rng.Float32()-0.5)*prm.Jitter,
		anchor[1] + (rng.Float32()-0.5)*prm.Jitter,
		anchor[2] + (rng.Float32()-0.5)*prm.Jitter,
	}

	angle := rng.Float64() * 2 * math.Pi
	speed := lerp(prm.Speed[0], prm.Speed[1], rng.Float32())
	pool.Vel[i] = mgl32.Vec3{
		float32(math.Cos(angle)) * speed,
		float32(math.Sin(angle)) * speed,
		(rng.Float32() - 0.5) * prm.DepthJitter,
	}

	pool.Life[i] = pool.MaxLife[i]
	pool.Size[i] = pool.BaseSize[i]
}

// Release frees the pool.
func (s *Simulation) Release() {
	if s.Pool != nil {
		s.Pool.Release()
	}
}
