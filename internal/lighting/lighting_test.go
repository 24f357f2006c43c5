package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAttenuation(t *testing.T) {
	p := PointLight{Constant: 1, Linear: 0.09, Quadratic: 0.032}
	assert.InDelta(t, 1.0, p.Attenuation(0), 1e-6)
	assert.InDelta(t, 1.0/(1+0.9+3.2), p.Attenuation(10), 1e-6)
	assert.Greater(t, p.Attenuation(1), p.Attenuation(2))
}

func TestSpotIntensity(t *testing.T) {
	s := Default().Spot
	// straight down the cone axis
	assert.InDelta(t, 1.0, s.Intensity(s.Direction), 1e-6)
	// perpendicular to the axis is outside the outer cone
	assert.Zero(t, s.Intensity(mgl32.Vec3{1, 0, 0}))

	// between the cones the factor falls off smoothly
	s = SpotLight{Direction: mgl32.Vec3{0, -1, 0}, CutOff: 0.9, OuterCutOff: 0.8}
	v := s.Intensity(mgl32.Vec3{0.5, -0.85, 0})
	assert.Greater(t, v, float32(0))
	assert.Less(t, v, float32(1))
}

func TestShadeFacingLightIsBrighter(t *testing.T) {
	set := Set{
		Dir: DirLight{
			Direction: mgl32.Vec3{0, -1, 0},
			Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
			Diffuse:   mgl32.Vec3{1, 1, 1},
		},
		Point: PointLight{Position: mgl32.Vec3{0, 10, 0}, Constant: 1},
		Spot:  SpotLight{PointLight: PointLight{Position: mgl32.Vec3{0, 10, 0}, Constant: 1}, Direction: mgl32.Vec3{0, -1, 0}, CutOff: 1, OuterCutOff: 1},
	}
	m := Material{Albedo: mgl32.Vec3{1, 1, 1}, Shininess: 32}
	up := set.Shade(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 5, 5}, m)
	down := set.Shade(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 5, 5}, m)

	assert.InDelta(t, 1.1, up.X(), 1e-5)
	assert.InDelta(t, 0.1, down.X(), 1e-5, "only ambient reaches the back face")
}

func TestShadeSpecularHighlight(t *testing.T) {
	set := Set{
		Dir:   DirLight{Direction: mgl32.Vec3{0, -1, 0}, Specular: mgl32.Vec3{1, 1, 1}},
		Point: PointLight{Position: mgl32.Vec3{0, 10, 0}, Constant: 1},
		Spot:  SpotLight{PointLight: PointLight{Position: mgl32.Vec3{0, 10, 0}, Constant: 1}, Direction: mgl32.Vec3{0, -1, 0}},
	}
	m := Material{Specular: 1, Shininess: 32}
	on := set.Shade(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 3, 0}, m)
	off := set.Shade(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{3, 0.5, 0}, m)

	assert.InDelta(t, 1.0, on.X(), 1e-5)
	assert.Less(t, off.X(), float32(0.01))
}
