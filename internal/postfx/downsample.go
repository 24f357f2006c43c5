package postfx

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled frame to the w×h viewport with
// premultiplied-alpha CatmullRom filtering. The axes scale independently, so
// a frame whose aspect differs from w:h is stretched to fit. Images already
// at or below the target on both axes are returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float32(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float32(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float32(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float32(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float32(dst.Pix[i+3])
		if a > 1 {
			inv := 255.0 / a
			result.Pix[i] = clamp8(float32(dst.Pix[i]) * inv)
			result.Pix[i+1] = clamp8(float32(dst.Pix[i+1]) * inv)
			result.Pix[i+2] = clamp8(float32(dst.Pix[i+2]) * inv)
		}
		result.Pix[i+3] = dst.Pix[i+3]
	}
	return result
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
