package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-renderer/internal/lighting"
)

func near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestPlacementsOrigins(t *testing.T) {
	origins := map[string]mgl32.Vec3{
		"dog":       {9, 0, 0},
		"tree":      {0, 0, 0},
		"table":     {3, 0, 7},
		"chair":     {-3, 0, 7},
		"lamp":      {0, -1, 17},
		"desk-lamp": {4.6, 3.54, 7.4},
		"moon":      {10, 20, -40},
	}
	require.Len(t, Placements, len(origins))
	for _, p := range Placements {
		want, ok := origins[p.Name]
		require.True(t, ok, p.Name)
		got := p.Matrix(0).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
		near(t, want, got)
	}
}

func TestTableScale(t *testing.T) {
	m := Placements[2].Matrix(0)
	near(t, mgl32.Vec3{5.5, 0, 7}, m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3())
}

func TestChairRocks(t *testing.T) {
	chair := Placements[3]
	a := chair.Matrix(0).Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	b := chair.Matrix(1.5).Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	assert.NotEqual(t, a, b)
	near(t, mgl32.Vec3{-3, 0.8, 7}, a)
}

func TestMoonLightOverride(t *testing.T) {
	base := lighting.Default()
	moon := Placements[len(Placements)-1]
	l := moon.Lights(&base)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Dir.Ambient)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, base.Dir.Ambient, "base set is not modified")
	assert.Equal(t, float32(512), moon.SpecularExponent())

	dog := Placements[0]
	assert.Same(t, &base, dog.Lights(&base))
	assert.Equal(t, float32(DefaultShininess), dog.SpecularExponent())
}

func TestCardGeometry(t *testing.T) {
	require.Len(t, CardVertices, 36)
	for i, v := range CardVertices {
		textured := v.UV != mgl32.Vec2{}
		if textured {
			assert.True(t, i >= 12 && i < 24, "vertex %d has uv", i)
			assert.InDelta(t, 0.05, abs(v.Position.X()), 1e-6)
		}
	}
}

func TestCardMatrixPlacesAndFlips(t *testing.T) {
	pos := TableSlots[0]
	near(t, pos, CardMatrix(pos, 0).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3())

	// the face normal (+X in card space) turns over after a half flip
	up := CardMatrix(pos, 0).Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	down := CardMatrix(pos, 180).Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	near(t, up.Mul(-1), down)
	assert.InDelta(t, CardScale, up.Len(), 1e-5)
}

func TestPileSlots(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{3.5, 3.6, 8.8}, PileSlots[0])
	assert.InDelta(t, 3.6+0.77, PileSlots[7].Y(), 1e-5)
}

func TestSkyboxCube(t *testing.T) {
	assert.Len(t, SkyboxVertices, 36*3)
	for _, v := range SkyboxVertices {
		assert.Equal(t, float32(1), abs(v))
	}
}

func TestLoadModelsSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	moon := filepath.Join(dir, "objects", "Moon")
	require.NoError(t, os.MkdirAll(moon, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(moon, "Moon.obj"),
		[]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	loaded := LoadModels(dir)
	require.Len(t, loaded, 1)
	assert.Equal(t, "moon", loaded[0].Placement.Name)
	assert.Equal(t, 1, loaded[0].Model.TriangleCount())
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
