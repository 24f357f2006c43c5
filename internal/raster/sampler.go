package raster

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// SampleTexture performs bilinear filtering with UV wrapping.
// Returns RGBA as uint8. Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float32) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u -= float32(int(u))
	if u < 0 {
		u += 1.0
	}
	v -= float32(int(v))
	if v < 0 {
		v += 1.0
	}

	fx := u * float32(w-1)
	fy := v * float32(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float32(x0)
	dy := fy - float32(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	mix := func(o int) uint8 {
		f := float32(pix[i00+o])*w00 + float32(pix[i10+o])*w10 + float32(pix[i01+o])*w01 + float32(pix[i11+o])*w11
		return uint8(f + 0.5)
	}
	return mix(0), mix(1), mix(2), mix(3)
}

// sampleLinear samples an sRGB encoded texture and returns linear color and
// alpha in [0,1].
func sampleLinear(tex *image.NRGBA, uv mgl32.Vec2) (mgl32.Vec3, float32) {
	r, g, b, a := SampleTexture(tex, uv[0], uv[1])
	return mgl32.Vec3{srgbToLinear[r], srgbToLinear[g], srgbToLinear[b]}, float32(a) / 255
}

// sampleRaw samples a data texture (specular masks) without decoding.
func sampleRaw(tex *image.NRGBA, uv mgl32.Vec2) mgl32.Vec3 {
	r, g, b, _ := SampleTexture(tex, uv[0], uv[1])
	return mgl32.Vec3{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}
