package gpu

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/folio/cursorfx/fxrt/core"
	"github.com/folio/cursorfx/fxrt/shaders"
	"github.com/stretchr/testify/assert"
)

func TestLayouts_MatchShader(t *testing.T) {
	// mat4x4 view, mat4x4 proj, vec2 viewport, f32 point_scale, f32 pad
	assert.Equal(t, uintptr(144), unsafe.Sizeof(CameraUniform{}))
	// vec3 pos, f32 size, vec4 color
	assert.Equal(t, uintptr(32), unsafe.Sizeof(core.PointInstance{}))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(core.PointInstance{}.Color))
}

func TestPointsShader_EntryPoints(t *testing.T) {
	assert.True(t, strings.Contains(shaders.PointsWGSL, "fn vs_main"))
	assert.True(t, strings.Contains(shaders.PointsWGSL, "fn fs_main"))
	assert.True(t, strings.Contains(shaders.PointsWGSL, "discard"))
}

func TestPickAlphaMode(t *testing.T) {
	modes := []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque, wgpu.CompositeAlphaModePremultiplied}

	assert.Equal(t, wgpu.CompositeAlphaModePremultiplied, pickAlphaMode(modes, true))
	assert.Equal(t, wgpu.CompositeAlphaModeOpaque, pickAlphaMode(modes, false))
	assert.Equal(t, wgpu.CompositeAlphaModeOpaque, pickAlphaMode(modes[:1], true))
}
