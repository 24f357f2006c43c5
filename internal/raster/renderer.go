package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/lighting"
	"scene-renderer/internal/model"
	"scene-renderer/internal/texture"
)

// alphaCutoff discards nearly transparent texels.
const alphaCutoff = 0.1

// Surface describes what a mesh is drawn with.
type Surface struct {
	Diffuse  *image.NRGBA // nil uses Tint
	Specular *image.NRGBA // nil uses SpecularLevel

	Tint          mgl32.Vec3 // linear albedo without a diffuse map
	SpecularLevel float32
	Shininess     float32

	// Lights overrides the renderer's light set for this draw.
	Lights *lighting.Set
}

// SurfaceFor builds a Surface from an MTL material, resolving its maps.
func SurfaceFor(mat *model.Material, textures texture.Resolver) Surface {
	s := Surface{
		Tint:          mat.Diffuse,
		SpecularLevel: mat.Specular[0],
		Shininess:     mat.Shininess,
	}
	if textures != nil {
		s.Diffuse = textures.Resolve(mat.DiffuseMap)
		s.Specular = textures.Resolve(mat.SpecularMap)
	}
	return s
}

// Renderer draws into an HDRBuffer with the scene's camera and lights.
type Renderer struct {
	FB      *HDRBuffer
	View    mgl32.Mat4
	Proj    mgl32.Mat4
	ViewPos mgl32.Vec3
	Lights  *lighting.Set

	verts   []vertexOut
	scratch []vertexOut
}

// NewRenderer creates a renderer over fb.
func NewRenderer(fb *HDRBuffer, lights *lighting.Set) *Renderer {
	return &Renderer{
		FB:      fb,
		View:    mgl32.Ident4(),
		Proj:    mgl32.Ident4(),
		Lights:  lights,
		scratch: make([]vertexOut, 0, 4),
	}
}

// DrawMesh renders an indexed mesh with Phong lighting.
func (r *Renderer) DrawMesh(mesh *model.Mesh, m mgl32.Mat4, s Surface) {
	lights := s.Lights
	if lights == nil {
		lights = r.Lights
	}
	mvp := r.Proj.Mul4(r.View).Mul4(m)
	normalM := m.Mat3().Inv().Transpose()

	r.verts = r.verts[:0]
	white := lighting.Material{Albedo: mgl32.Vec3{1, 1, 1}, Shininess: s.Shininess}
	shiny := lighting.Material{Specular: 1, Shininess: s.Shininess}
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		pos := v.Position.Vec4(1)
		world := m.Mul4x1(pos).Vec3()
		n := normalM.Mul3x1(v.Normal)
		if l := n.Len(); l > 1e-8 {
			n = n.Mul(1 / l)
		}
		r.verts = append(r.verts, vertexOut{
			clip:     mvp.Mul4x1(pos),
			uv:       v.UV,
			diffuse:  lights.Shade(world, n, r.ViewPos, white),
			specular: lights.Shade(world, n, r.ViewPos, shiny),
		})
	}

	shade := func(uv mgl32.Vec2, diff, spec mgl32.Vec3) (mgl32.Vec3, bool) {
		albedo := s.Tint
		if s.Diffuse != nil {
			c, a := sampleLinear(s.Diffuse, uv)
			if a < alphaCutoff {
				return mgl32.Vec3{}, false
			}
			albedo = c
		}
		mask := mgl32.Vec3{s.SpecularLevel, s.SpecularLevel, s.SpecularLevel}
		if s.Specular != nil {
			mask = sampleRaw(s.Specular, uv)
		}
		return mulv(albedo, diff).Add(mulv(mask, spec)), true
	}

	n := uint32(len(r.verts))
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		tri := [3]vertexOut{r.verts[a], r.verts[b], r.verts[c]}
		r.scratch = r.FB.drawTriangle(&tri, shade, r.scratch)
	}
}

// DrawUnlit renders a non-indexed triangle list with the texture color
// only, as the card shader does.
func (r *Renderer) DrawUnlit(verts []model.Vertex, m mgl32.Mat4, tex *image.NRGBA) {
	mvp := r.Proj.Mul4(r.View).Mul4(m)
	white := mgl32.Vec3{1, 1, 1}
	shade := func(uv mgl32.Vec2, _, _ mgl32.Vec3) (mgl32.Vec3, bool) {
		if tex == nil {
			return white, true
		}
		c, a := sampleLinear(tex, uv)
		return c, a >= alphaCutoff
	}
	for i := 0; i+2 < len(verts); i += 3 {
		var tri [3]vertexOut
		for k := 0; k < 3; k++ {
			v := &verts[i+k]
			tri[k] = vertexOut{clip: mvp.Mul4x1(v.Position.Vec4(1)), uv: v.UV}
		}
		r.scratch = r.FB.drawTriangle(&tri, shade, r.scratch)
	}
}

// DrawSkybox fills every pixel no geometry was drawn to with the cube map
// sample along its view ray. Translation is stripped from the view so the
// sky stays at infinity.
func (r *Renderer) DrawSkybox(cm *texture.Cubemap) {
	if cm == nil {
		return
	}
	inv := r.Proj.Mul4(r.View.Mat3().Mat4()).Inv()
	inf := float32(math.Inf(1))
	w, h := float32(r.FB.Width), float32(r.FB.Height)

	for y := 0; y < r.FB.Height; y++ {
		ndcY := 1 - (float32(y)+0.5)/h*2
		for x := 0; x < r.FB.Width; x++ {
			idx := y*r.FB.Width + x
			if r.FB.Depth[idx] != inf {
				continue
			}
			ndcX := (float32(x)+0.5)/w*2 - 1
			p := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
			dir := p.Vec3().Mul(1 / p[3])

			face, u, v := texture.Lookup(dir)
			img := cm.Faces[face]
			if img == nil {
				continue
			}
			c, _ := sampleLinear(img, mgl32.Vec2{min(u, 0.9999), min(v, 0.9999)})
			r.FB.Set(idx, c)
		}
	}
}

func mulv(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
