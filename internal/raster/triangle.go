package raster

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// vertexOut is a vertex after the vertex stage. Diffuse is the light that
// reaches the surface for a white albedo, Specular the highlight for a full
// specular mask; both are interpolated (Gouraud).
type vertexOut struct {
	clip     mgl32.Vec4
	uv       mgl32.Vec2
	diffuse  mgl32.Vec3
	specular mgl32.Vec3
}

func lerpVertex(a, b *vertexOut, t float32) vertexOut {
	return vertexOut{
		clip:     a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		uv:       a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
		diffuse:  a.diffuse.Add(b.diffuse.Sub(a.diffuse).Mul(t)),
		specular: a.specular.Add(b.specular.Sub(a.specular).Mul(t)),
	}
}

// shadeFunc is the fragment stage. Returning false discards the fragment.
type shadeFunc func(uv mgl32.Vec2, diffuse, specular mgl32.Vec3) (mgl32.Vec3, bool)

// clipNear clips a triangle against the near plane (z >= -w) and returns
// the resulting polygon, empty when fully clipped.
func clipNear(tri *[3]vertexOut, out []vertexOut) []vertexOut {
	out = out[:0]
	for i := 0; i < 3; i++ {
		a, b := &tri[i], &tri[(i+1)%3]
		da := a.clip[2] + a.clip[3]
		db := b.clip[2] + b.clip[3]
		if da >= 0 {
			out = append(out, *a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpVertex(a, b, da/(da-db)))
		}
	}
	return out
}

// screenVert is a vertex in pixel space with attributes divided by w for
// perspective-correct interpolation.
type screenVert struct {
	x, y, z, invW float32
	uv            mgl32.Vec2
	diffuse       mgl32.Vec3
	specular      mgl32.Vec3
}

func (fb *HDRBuffer) toScreen(v *vertexOut) screenVert {
	inv := 1 / v.clip[3]
	return screenVert{
		x:        (v.clip[0]*inv*0.5 + 0.5) * float32(fb.Width),
		y:        (0.5 - v.clip[1]*inv*0.5) * float32(fb.Height),
		z:        v.clip[2] * inv,
		invW:     inv,
		uv:       v.uv.Mul(inv),
		diffuse:  v.diffuse.Mul(inv),
		specular: v.specular.Mul(inv),
	}
}

// drawTriangle clips, projects and rasterizes one triangle with a z-buffer.
// scratch is reused between calls to avoid allocation.
func (fb *HDRBuffer) drawTriangle(tri *[3]vertexOut, shade shadeFunc, scratch []vertexOut) []vertexOut {
	poly := clipNear(tri, scratch)
	if len(poly) < 3 {
		return poly
	}
	s0 := fb.toScreen(&poly[0])
	for i := 1; i+1 < len(poly); i++ {
		fb.rasterize(&s0, fb.toScreen(&poly[i]), fb.toScreen(&poly[i+1]), shade)
	}
	return poly
}

func (fb *HDRBuffer) rasterize(a *screenVert, b, c screenVert, shade shadeFunc) {
	x0, y0 := a.x, a.y
	x1, y1 := b.x, b.y
	x2, y2 := c.x, c.y

	// Bounding box
	minX := max(int(math32.Floor(min(x0, x1, x2))), 0)
	maxX := min(int(math32.Ceil(max(x0, x1, x2))), fb.Width-1)
	minY := max(int(math32.Floor(min(y0, y1, y2))), 0)
	maxY := min(int(math32.Ceil(max(y0, y1, y2))), fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -1e-4 || w1 < -1e-4 || w2 < -1e-4 {
				continue
			}

			z := w0*a.z + w1*b.z + w2*c.z
			idx := rowOff + sx
			if z > 1 || z >= fb.Depth[idx] {
				continue
			}

			persp := 1 / (w0*a.invW + w1*b.invW + w2*c.invW)
			uv := a.uv.Mul(w0).Add(b.uv.Mul(w1)).Add(c.uv.Mul(w2)).Mul(persp)
			diff := a.diffuse.Mul(w0).Add(b.diffuse.Mul(w1)).Add(c.diffuse.Mul(w2)).Mul(persp)
			spec := a.specular.Mul(w0).Add(b.specular.Mul(w1)).Add(c.specular.Mul(w2)).Mul(persp)

			col, ok := shade(uv, diff, spec)
			if !ok {
				continue
			}
			fb.Depth[idx] = z
			fb.Set(idx, col)
		}
	}
}
