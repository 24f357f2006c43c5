// Package scene describes the fixed night scene: where each model stands,
// the card table layout and the skybox.
package scene

import (
	"log/slog"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/lighting"
	"scene-renderer/internal/model"
)

// DefaultShininess is the material shininess used by every model but the
// moon.
const DefaultShininess = 32

// Placement is one model in the scene.
type Placement struct {
	Name string
	Path string // relative to the resource directory

	// Shininess replaces the material exponent when non-zero.
	Shininess float32
	// DirAmbient overrides the directional light ambient term when set, so
	// the moon glows regardless of the light rig.
	DirAmbient *mgl32.Vec3

	// Matrix returns the model matrix at time t seconds.
	Matrix func(t float32) mgl32.Mat4
}

// Lights returns the light set this placement is drawn with.
func (p *Placement) Lights(base *lighting.Set) *lighting.Set {
	if p.DirAmbient == nil {
		return base
	}
	l := *base
	l.Dir.Ambient = *p.DirAmbient
	return &l
}

func trs(t mgl32.Vec3, rot mgl32.Mat4, s float32) mgl32.Mat4 {
	return mgl32.Translate3D(t[0], t[1], t[2]).Mul4(rot).Mul4(mgl32.Scale3D(s, s, s))
}

func rotX(deg float32) mgl32.Mat4 { return mgl32.HomogRotate3DX(mgl32.DegToRad(deg)) }
func rotY(deg float32) mgl32.Mat4 { return mgl32.HomogRotate3DY(mgl32.DegToRad(deg)) }
func rotZ(deg float32) mgl32.Mat4 { return mgl32.HomogRotate3DZ(mgl32.DegToRad(deg)) }

func static(m mgl32.Mat4) func(float32) mgl32.Mat4 {
	return func(float32) mgl32.Mat4 { return m }
}

var moonAmbient = mgl32.Vec3{1, 1, 1}

// Placements is the scene layout in draw order.
var Placements = []Placement{
	{
		Name:   "dog",
		Path:   "objects/Dog/dog.obj",
		Matrix: static(trs(mgl32.Vec3{9, 0, 0}, rotY(-45), 0.5)),
	},
	{
		Name:   "tree",
		Path:   "objects/Tree/tree.obj",
		Matrix: static(trs(mgl32.Vec3{}, rotX(-90), 0.25)),
	},
	{
		Name:   "table",
		Path:   "objects/Table/round table Ultimate(free Final).obj",
		Matrix: static(trs(mgl32.Vec3{3, 0, 7}, mgl32.Ident4(), 2.5)),
	},
	{
		Name: "chair",
		Path: "objects/Chair/Rocking_chair_SF.obj",
		// rocks around Z
		Matrix: func(t float32) mgl32.Mat4 {
			return trs(mgl32.Vec3{-3, 0, 7}, rotZ(math32.Sin(t)*15).Mul4(rotY(90)), 0.8)
		},
	},
	{
		Name:   "lamp",
		Path:   "objects/Lamp/StreetLamp.obj",
		Matrix: static(trs(mgl32.Vec3{0, -1, 17}, rotY(80), 1.35)),
	},
	{
		Name:   "desk-lamp",
		Path:   "objects/DeskLamp/desk_lamp.obj",
		Matrix: static(trs(mgl32.Vec3{4.6, 3.54, 7.4}, rotX(-90).Mul4(rotZ(180)), 0.081)),
	},
	{
		Name:       "moon",
		Path:       "objects/Moon/Moon.obj",
		Shininess:  512,
		DirAmbient: &moonAmbient,
		Matrix:     static(trs(mgl32.Vec3{10, 20, -40}, mgl32.Ident4(), 1)),
	},
}

// Loaded is a placement with its model, nil when loading failed.
type Loaded struct {
	Placement *Placement
	Model     *model.Model
}

// LoadModels loads every placement from root. Failures are logged and the
// model is skipped, so a partial resource directory still renders.
func LoadModels(root string) []Loaded {
	var out []Loaded
	for i := range Placements {
		p := &Placements[i]
		m, err := model.Load(filepath.Join(root, p.Path))
		if err != nil {
			slog.Warn("model failed to load", "name", p.Name, "err", err)
			continue
		}
		slog.Debug("model loaded", "name", p.Name, "meshes", len(m.Meshes), "triangles", m.TriangleCount())
		out = append(out, Loaded{Placement: p, Model: m})
	}
	return out
}

// SpecularExponent returns the shininess the placement is drawn with. MTL
// exponents are ignored; the scene uses one value per model.
func (p *Placement) SpecularExponent() float32 {
	if p.Shininess != 0 {
		return p.Shininess
	}
	return DefaultShininess
}
