package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DirLight is a directional light (the moon).
type DirLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// PointLight is an omnidirectional light with distance attenuation.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

// SpotLight is a point light restricted to a cone. CutOff and OuterCutOff
// are cosines of the inner and outer cone angles.
type SpotLight struct {
	PointLight
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
}

// Set is the fixed light rig of the scene.
type Set struct {
	Dir   DirLight
	Point PointLight
	Spot  SpotLight
}

// Default returns the scene lights: a cool directional moon light, the
// street lamp point light and the desk lamp spot over the card table.
func Default() Set {
	return Set{
		Dir: DirLight{
			Direction: mgl32.Vec3{-0.2, -0.5, 0.0},
			Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
			Diffuse:   mgl32.Vec3{0.7, 0.7, 0.7},
			Specular:  mgl32.Vec3{1, 1, 1},
		},
		Point: PointLight{
			Position:  mgl32.Vec3{0, 9, 13},
			Ambient:   mgl32.Vec3{0.11, 0.11, 0.11},
			Diffuse:   mgl32.Vec3{0.6, 0.6, 0.6},
			Specular:  mgl32.Vec3{1, 1, 1},
			Constant:  0.4,
			Linear:    0.009,
			Quadratic: 0.0032,
		},
		Spot: SpotLight{
			PointLight: PointLight{
				Position:  mgl32.Vec3{3.66, 7.8, 7.4},
				Diffuse:   mgl32.Vec3{1, 1, 1},
				Specular:  mgl32.Vec3{1, 1, 1},
				Constant:  1.0,
				Linear:    0.09,
				Quadratic: 0.032,
			},
			Direction:   mgl32.Vec3{-0.2, -1, -0.01},
			CutOff:      math32.Cos(mgl32.DegToRad(25.5)),
			OuterCutOff: math32.Cos(mgl32.DegToRad(30)),
		},
	}
}

// Attenuation returns the point light falloff at distance d.
func (p *PointLight) Attenuation(d float32) float32 {
	return 1.0 / (p.Constant + p.Linear*d + p.Quadratic*d*d)
}

// Intensity returns the smooth cone factor for the direction from the light
// to the fragment, 1 inside the inner cone and 0 outside the outer cone.
func (s *SpotLight) Intensity(lightToFrag mgl32.Vec3) float32 {
	theta := lightToFrag.Normalize().Dot(s.Direction.Normalize())
	eps := s.CutOff - s.OuterCutOff
	if eps <= 0 {
		if theta >= s.CutOff {
			return 1
		}
		return 0
	}
	return clamp01((theta - s.OuterCutOff) / eps)
}

// Material is the per-draw shading input.
type Material struct {
	Albedo    mgl32.Vec3 // diffuse color, linear
	Specular  float32    // specular map sample
	Shininess float32
}

// Shade evaluates the Phong sum of all three lights at world position p
// with unit normal n, matching the scene fragment shader.
func (s *Set) Shade(p, n, viewPos mgl32.Vec3, m Material) mgl32.Vec3 {
	viewDir := viewPos.Sub(p).Normalize()

	out := s.dirTerm(n, viewDir, m)
	out = out.Add(pointTerm(&s.Point, p, n, viewDir, m, 1))

	toFrag := p.Sub(s.Spot.Position)
	out = out.Add(pointTerm(&s.Spot.PointLight, p, n, viewDir, m, s.Spot.Intensity(toFrag)))
	return out
}

func (s *Set) dirTerm(n, viewDir mgl32.Vec3, m Material) mgl32.Vec3 {
	l := s.Dir.Direction.Mul(-1).Normalize()
	diff := max(n.Dot(l), 0)
	spec := specular(n, l, viewDir, m.Shininess)

	ambient := mulv(s.Dir.Ambient, m.Albedo)
	diffuse := mulv(s.Dir.Diffuse, m.Albedo).Mul(diff)
	specularC := s.Dir.Specular.Mul(spec * m.Specular)
	return ambient.Add(diffuse).Add(specularC)
}

func pointTerm(pl *PointLight, p, n, viewDir mgl32.Vec3, m Material, cone float32) mgl32.Vec3 {
	toLight := pl.Position.Sub(p)
	dist := toLight.Len()
	if dist < 1e-6 {
		return mgl32.Vec3{}
	}
	l := toLight.Mul(1 / dist)
	diff := max(n.Dot(l), 0)
	spec := specular(n, l, viewDir, m.Shininess)
	att := pl.Attenuation(dist)

	ambient := mulv(pl.Ambient, m.Albedo).Mul(att)
	diffuse := mulv(pl.Diffuse, m.Albedo).Mul(diff * att * cone)
	specularC := pl.Specular.Mul(spec * m.Specular * att * cone)
	return ambient.Add(diffuse).Add(specularC)
}

// specular is the Phong reflection term.
func specular(n, l, viewDir mgl32.Vec3, shininess float32) float32 {
	r := reflect(l.Mul(-1), n)
	return math32.Pow(max(viewDir.Dot(r), 0), shininess)
}

func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func mulv(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
