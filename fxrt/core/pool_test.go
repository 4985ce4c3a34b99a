package core

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNewPool_AllSlotsInactiveAndParked(t *testing.T) {
	params := DefaultParams()
	pool := NewPool(params, testRng())

	require.Equal(t, 1500, pool.Len())
	assert.Equal(t, 0, pool.ActiveCount())

	for i := 0; i < pool.Len(); i++ {
		assert.Equal(t, params.Park, pool.Pos[i])
		assert.Equal(t, mgl32.Vec3{}, pool.Vel[i])
		assert.Zero(t, pool.Life[i])
		assert.GreaterOrEqual(t, pool.MaxLife[i], float32(0.5))
		assert.LessOrEqual(t, pool.MaxLife[i], float32(2.0))
		assert.GreaterOrEqual(t, pool.Seed[i], float32(0))
		assert.Less(t, pool.Seed[i], float32(1))
		assert.GreaterOrEqual(t, pool.BaseSize[i], float32(0.02))
		assert.LessOrEqual(t, pool.BaseSize[i], float32(0.10))
	}
}

func TestNewPool_ColorsAreVivid(t *testing.T) {
	pool := NewPool(DefaultParams(), testRng())

	for i := 0; i < pool.Len(); i++ {
		c := pool.Color[i]
		for j := 0; j < 3; j++ {
			assert.GreaterOrEqual(t, c[j], float32(0))
			assert.LessOrEqual(t, c[j], float32(1))
		}
		// lightness >= 0.5 means the brightest channel is at least 0.5
		maxC := max(c[0], c[1], c[2])
		assert.GreaterOrEqual(t, maxC, float32(0.5)-1e-4)
	}
}

func TestPool_Release(t *testing.T) {
	pool := NewPool(DefaultParams(), testRng())
	pool.Release()
	assert.Equal(t, 0, pool.Len())
}

func TestPackInstances(t *testing.T) {
	params := DefaultParams()
	params.Capacity = 4
	pool := NewPool(params, testRng())
	pool.Size[2] = 0.5
	pool.Pos[2] = mgl32.Vec3{1, 2, 3}

	out := PackInstances(nil, pool)
	require.Len(t, out, 4)
	assert.Equal(t, [3]float32{1, 2, 3}, out[2].Pos)
	assert.Equal(t, float32(0.5), out[2].Size)
	assert.Equal(t, float32(1), out[2].Color[3])
	assert.False(t, pool.PositionsDirty)
	assert.False(t, pool.SizesDirty)

	again := PackInstances(out, pool)
	assert.Same(t, &out[0], &again[0])
}
