package snapshot

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/folio/cursorfx/fxrt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attach(t *testing.T, target *Target, w, h int) *Surface {
	t.Helper()
	s, err := target.Attach(core.SurfaceOptions{Width: w, Height: h, Transparent: true, Capacity: 8, PointScale: 500})
	require.NoError(t, err)
	return s.(*Surface)
}

func TestTarget_AttachDetach(t *testing.T) {
	target := NewTarget()
	s := attach(t, target, 64, 32)
	require.Len(t, target.Surfaces(), 1)

	w, h := s.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)

	target.Detach(s)
	assert.Empty(t, target.Surfaces())

	_, err := target.Attach(core.SurfaceOptions{Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrEmptySurface)
}

func TestSurface_ResizeIdempotent(t *testing.T) {
	s := attach(t, NewTarget(), 64, 32)

	s.Resize(64, 32)
	s.Resize(128, 64)
	s.Resize(128, 64)
	s.Resize(0, 64)

	assert.Equal(t, 1, s.Resizes)
	w, h := s.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 64, h)
}

func TestSurface_DrawActiveParticle(t *testing.T) {
	s := attach(t, NewTarget(), 100, 100)
	cam := core.NewPerspectiveCamera(core.DefaultCameraParams(), 100, 100)

	params := core.DefaultParams()
	params.Capacity = 2
	pool := core.NewPool(params, rand.New(rand.NewPCG(3, 4)))
	pool.Pos[0] = mgl32.Vec3{0, 0, 0}
	pool.Life[0] = 1
	pool.Size[0] = 0.1
	pool.Color[0] = mgl32.Vec3{1, 0, 0}

	require.NoError(t, s.Draw(cam, pool))

	centre := s.Image().RGBAAt(50, 50)
	assert.Equal(t, uint8(0xff), centre.R)
	assert.Zero(t, centre.G)
	assert.Equal(t, uint8(0xff), centre.A)

	corner := s.Image().RGBAAt(0, 0)
	assert.Zero(t, corner.A)
	assert.False(t, pool.PositionsDirty)
	assert.Equal(t, 1, s.Draws)
}

func TestSurface_InactiveSlotsAreInvisible(t *testing.T) {
	s := attach(t, NewTarget(), 40, 40)
	cam := core.NewPerspectiveCamera(core.DefaultCameraParams(), 40, 40)
	pool := core.NewPool(core.DefaultParams(), rand.New(rand.NewPCG(5, 6)))

	require.NoError(t, s.Draw(cam, pool))
	for _, v := range s.Image().Pix {
		require.Zero(t, v)
	}
}

func TestSurface_WritePNG(t *testing.T) {
	s := attach(t, NewTarget(), 16, 8)
	var buf bytes.Buffer
	require.NoError(t, s.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestSurface_Release(t *testing.T) {
	s := attach(t, NewTarget(), 16, 8)
	s.Release()

	assert.True(t, s.Released())
	cam := core.NewPerspectiveCamera(core.DefaultCameraParams(), 16, 8)
	params := core.DefaultParams()
	params.Capacity = 1
	assert.Error(t, s.Draw(cam, core.NewPool(params, rand.New(rand.NewPCG(1, 1)))))
}

func TestSurface_OverlappingSpritesAdd(t *testing.T) {
	cam := core.NewPerspectiveCamera(core.DefaultCameraParams(), 100, 100)
	params := core.DefaultParams()
	params.Capacity = 2
	pool := core.NewPool(params, rand.New(rand.NewPCG(7, 8)))
	for i := 0; i < 2; i++ {
		pool.Pos[i] = mgl32.Vec3{0, 0, 0}
		pool.Size[i] = 0.1
		pool.Color[i] = mgl32.Vec3{0.2, 0, 0}
	}

	single := attach(t, NewTarget(), 100, 100)
	pool.Life[0] = 1
	require.NoError(t, single.Draw(cam, pool))
	one := single.Image().RGBAAt(50, 50)
	require.NotZero(t, one.R)

	double := attach(t, NewTarget(), 100, 100)
	pool.Life[1] = 1
	require.NoError(t, double.Draw(cam, pool))
	two := double.Image().RGBAAt(50, 50)

	assert.Equal(t, 2*uint32(one.R), uint32(two.R))
	assert.Zero(t, two.G)
	assert.Equal(t, uint8(0xff), two.A)
}
