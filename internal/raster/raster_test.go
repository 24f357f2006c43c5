package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-renderer/internal/lighting"
	"scene-renderer/internal/model"
	"scene-renderer/internal/texture"
)

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}

func quad(z float32) []model.Vertex {
	p := func(x, y float32) model.Vertex {
		return model.Vertex{Position: mgl32.Vec3{x, y, z}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{(x + 1) / 2, (y + 1) / 2}}
	}
	return []model.Vertex{p(-1, -1), p(1, -1), p(1, 1), p(-1, -1), p(1, 1), p(-1, 1)}
}

func testRenderer(lights *lighting.Set) *Renderer {
	r := NewRenderer(NewHDRBuffer(8, 8), lights)
	r.ViewPos = mgl32.Vec3{0, 0, 3}
	r.View = mgl32.LookAtV(r.ViewPos, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	r.Proj = mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	return r
}

func ambientOnly() *lighting.Set {
	return &lighting.Set{
		Dir:   lighting.DirLight{Direction: mgl32.Vec3{0, 0, -1}, Ambient: mgl32.Vec3{1, 1, 1}},
		Point: lighting.PointLight{Position: mgl32.Vec3{0, 50, 0}, Constant: 1},
		Spot: lighting.SpotLight{
			PointLight: lighting.PointLight{Position: mgl32.Vec3{0, 50, 0}, Constant: 1},
			Direction:  mgl32.Vec3{0, -1, 0}, CutOff: 0.9, OuterCutOff: 0.8,
		},
	}
}

func TestClearResetsAttachments(t *testing.T) {
	fb := NewHDRBuffer(2, 2)
	fb.Clear(mgl32.Vec3{0.1, 0.2, 0.3})
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, fb.At(1, 1))
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, fb.BrightAt(0, 1))
	assert.True(t, math.IsInf(float64(fb.Depth[3]), 1))
}

func TestSetSplitsBrightFragments(t *testing.T) {
	fb := NewHDRBuffer(2, 1)
	fb.Set(0, mgl32.Vec3{2, 2, 2})
	fb.Set(1, mgl32.Vec3{0.9, 0.9, 0.9})
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, fb.BrightAt(0, 0))
	assert.Equal(t, mgl32.Vec3{}, fb.BrightAt(1, 0))
	assert.Equal(t, mgl32.Vec3{0.9, 0.9, 0.9}, fb.At(1, 0))
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1, Luminance(mgl32.Vec3{1, 1, 1}), 1e-6)
	assert.InDelta(t, 0.7152, Luminance(mgl32.Vec3{0, 1, 0}), 1e-6)
}

func TestSampleTextureWraps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 255})

	r, g, b, a := SampleTexture(img, 1.0+0.999, 0)
	assert.InDelta(t, 200, int(r), 1)
	assert.InDelta(t, 100, int(g), 1)
	assert.InDelta(t, 50, int(b), 1)
	assert.Equal(t, uint8(255), a)

	r, _, _, _ = SampleTexture(img, -0.999, 0)
	assert.InDelta(t, 0, int(r), 1)
}

func TestDrawUnlitCoversCenter(t *testing.T) {
	r := testRenderer(ambientOnly())
	r.DrawUnlit(quad(0), mgl32.Ident4(), nil)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, r.FB.At(4, 4))
	assert.Less(t, r.FB.Depth[4*8+4], float32(1))
}

func TestDepthTestKeepsNearest(t *testing.T) {
	red := solid(color.NRGBA{255, 0, 0, 255})
	blue := solid(color.NRGBA{0, 0, 255, 255})

	r := testRenderer(ambientOnly())
	r.DrawUnlit(quad(0), mgl32.Ident4(), red)
	r.DrawUnlit(quad(-1), mgl32.Ident4(), blue)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, r.FB.At(4, 4))

	r = testRenderer(ambientOnly())
	r.DrawUnlit(quad(-1), mgl32.Ident4(), blue)
	r.DrawUnlit(quad(0), mgl32.Ident4(), red)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, r.FB.At(4, 4))
}

func TestTransparentTexelsDiscarded(t *testing.T) {
	r := testRenderer(ambientOnly())
	r.DrawUnlit(quad(0), mgl32.Ident4(), solid(color.NRGBA{255, 255, 255, 0}))
	assert.True(t, math.IsInf(float64(r.FB.Depth[4*8+4]), 1))
}

func TestDrawMeshAmbient(t *testing.T) {
	v := quad(0)
	mesh := &model.Mesh{
		Vertices: []model.Vertex{v[0], v[1], v[2], v[5]},
		Indices:  []uint32{0, 1, 2, 0, 2, 3, 0, 1, 99},
	}
	r := testRenderer(ambientOnly())
	r.DrawMesh(mesh, mgl32.Ident4(), Surface{Tint: mgl32.Vec3{0.25, 0.5, 0.75}, Shininess: 32})

	got := r.FB.At(4, 4)
	for i, want := range []float32{0.25, 0.5, 0.75} {
		assert.InDelta(t, want, got[i], 1e-4)
	}
	assert.Equal(t, mgl32.Vec3{}, r.FB.BrightAt(4, 4))
}

func TestDrawMeshLightOverride(t *testing.T) {
	bright := ambientOnly()
	bright.Dir.Ambient = mgl32.Vec3{4, 4, 4}

	v := quad(0)
	mesh := &model.Mesh{Vertices: []model.Vertex{v[0], v[1], v[2], v[5]}, Indices: []uint32{0, 1, 2, 0, 2, 3}}
	r := testRenderer(ambientOnly())
	r.DrawMesh(mesh, mgl32.Ident4(), Surface{Tint: mgl32.Vec3{1, 1, 1}, Lights: bright})

	assert.InDelta(t, 4, r.FB.At(4, 4)[0], 1e-4)
	assert.InDelta(t, 4, r.FB.BrightAt(4, 4)[0], 1e-4)
}

func TestNearPlaneClipping(t *testing.T) {
	tri := []model.Vertex{
		{Position: mgl32.Vec3{-1, -1, 0}},
		{Position: mgl32.Vec3{1, -1, 0}},
		{Position: mgl32.Vec3{0, -0.5, 10}},
	}
	r := testRenderer(ambientOnly())
	r.DrawUnlit(tri, mgl32.Ident4(), nil)

	drawn := 0
	for i, d := range r.FB.Depth {
		if !math.IsInf(float64(d), 1) {
			drawn++
			require.False(t, math.IsNaN(float64(r.FB.Color[i*3])))
		}
	}
	assert.Greater(t, drawn, 0)
}

func TestSkyboxFillsBackground(t *testing.T) {
	cm := &texture.Cubemap{}
	for i := range cm.Faces {
		cm.Faces[i] = solid(color.NRGBA{uint8(40 * i), 0, 0, 255})
	}
	cm.Faces[texture.NegZ] = solid(color.NRGBA{0, 255, 0, 255})

	r := testRenderer(ambientOnly())
	r.DrawUnlit(quad(0)[:3], mgl32.Ident4(), nil)
	r.DrawSkybox(cm)

	// camera looks down -Z
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, r.FB.At(3, 2))
	// geometry is left alone
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, r.FB.At(6, 6))
}
