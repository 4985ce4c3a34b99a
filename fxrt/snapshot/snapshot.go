// Package snapshot renders the particle pool into in-memory RGBA images.
// It stands in for the GPU overlay in headless runs and tests. Sprites are
// blended additively with premultiplied colour, saturating at 0xff, the same
// as the GPU point pass.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/folio/cursorfx/fxrt/core"
	"golang.org/x/image/vector"
)

var ErrEmptySurface = errors.New("snapshot: surface size must be positive")

// discSegments is the polygon resolution used for each sprite.
const discSegments = 20

// Target is a MountTarget that hands out image surfaces.
type Target struct {
	attached []*Surface
}

func NewTarget() *Target {
	return &Target{}
}

func (t *Target) Attach(opts core.SurfaceOptions) (core.Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("attach %dx%d: %w", opts.Width, opts.Height, ErrEmptySurface)
	}
	s := &Surface{
		img:         image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		transparent: opts.Transparent,
		pointScale:  opts.PointScale,
		raster:      vector.NewRasterizer(1, 1),
	}
	t.attached = append(t.attached, s)
	return s, nil
}

func (t *Target) Detach(s core.Surface) {
	for i, a := range t.attached {
		if core.Surface(a) == s {
			t.attached = append(t.attached[:i], t.attached[i+1:]...)
			return
		}
	}
}

// Surfaces returns the currently attached surfaces.
func (t *Target) Surfaces() []*Surface {
	return t.attached
}

// Surface rasterises every active slot as a soft disc.
type Surface struct {
	img         *image.RGBA
	transparent bool
	pointScale  float32
	raster      *vector.Rasterizer

	Draws    int
	Resizes  int
	released bool
}

func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 || s.released {
		return
	}
	b := s.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.Resizes++
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Draw(cam *core.PerspectiveCamera, pool *core.Pool) error {
	if s.released {
		return errors.New("snapshot: draw on released surface")
	}
	s.clear()

	w, h := s.Size()
	for i := 0; i < pool.Len(); i++ {
		if !pool.Active(i) || pool.Size[i] <= 0 {
			continue
		}
		ndc, viewZ := cam.Project(pool.Pos[i])
		if viewZ >= 0 {
			continue
		}
		cx := (ndc[0] + 1) * 0.5 * float32(w)
		cy := (1 - ndc[1]) * 0.5 * float32(h)
		diameter := pool.Size[i] * s.pointScale / -viewZ

		c := pool.Color[i]
		// halo first, then the opaque core out to 0.3 of the sprite
		s.disc(cx, cy, diameter*0.5, c, 0x60)
		s.disc(cx, cy, diameter*0.3, c, 0xff)
	}
	pool.PositionsDirty = false
	pool.SizesDirty = false
	s.Draws++
	return nil
}

func (s *Surface) clear() {
	var fill uint8
	if !s.transparent {
		fill = 0xff
	}
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		pix[i+3] = fill
	}
}

func (s *Surface) disc(cx, cy, r float32, c [3]float32, alpha uint8) {
	if r < 0.5 {
		r = 0.5
	}
	bbox := image.Rect(
		int(math.Floor(float64(cx-r))), int(math.Floor(float64(cy-r))),
		int(math.Ceil(float64(cx+r))), int(math.Ceil(float64(cy+r))),
	).Intersect(s.img.Bounds())
	if bbox.Empty() {
		return
	}

	z := s.raster
	z.Reset(bbox.Dx(), bbox.Dy())
	ox, oy := float32(bbox.Min.X), float32(bbox.Min.Y)
	for k := 0; k <= discSegments; k++ {
		a := 2 * math.Pi * float64(k) / discSegments
		x := cx + r*float32(math.Cos(a)) - ox
		y := cy + r*float32(math.Sin(a)) - oy
		if k == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, bbox.Dx(), bbox.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	rgb := [3]uint32{uint32(channel(c[0])), uint32(channel(c[1])), uint32(channel(c[2]))}
	for y := 0; y < bbox.Dy(); y++ {
		for x := 0; x < bbox.Dx(); x++ {
			cov := uint32(mask.Pix[y*mask.Stride+x])
			if cov == 0 {
				continue
			}
			a := cov * uint32(alpha) / 0xff
			off := s.img.PixOffset(bbox.Min.X+x, bbox.Min.Y+y)
			px := s.img.Pix[off : off+4 : off+4]
			for k := 0; k < 3; k++ {
				px[k] = addSat(px[k], rgb[k]*a/0xff)
			}
			px[3] = addSat(px[3], a)
		}
	}
}

func addSat(dst uint8, v uint32) uint8 {
	sum := uint32(dst) + v
	if sum > 0xff {
		return 0xff
	}
	return uint8(sum)
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

// Image returns the last rendered frame. The image is reused between draws.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	return nil
}

func (s *Surface) Release() {
	s.released = true
	s.raster = nil
}

func (s *Surface) Released() bool {
	return s.released
}
