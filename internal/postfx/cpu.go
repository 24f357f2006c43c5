package postfx

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/raster"
)

// Gamma is the display gamma applied after tonemapping.
const Gamma = 2.2

// GaussianWeights are the 9-tap separable kernel weights, center first.
var GaussianWeights = [5]float32{0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216}

// Tonemap maps an HDR color to display range with exposure tonemapping
// followed by gamma correction.
func Tonemap(c mgl32.Vec3, exposure float32) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := range c {
		mapped := 1 - math32.Exp(-c[i]*exposure)
		out[i] = math32.Pow(mapped, 1/Gamma)
	}
	return out
}

// CPU is a software Backend over a raster.HDRBuffer. After Composite the
// final image is in Out.
type CPU struct {
	FB         *raster.HDRBuffer
	ClearColor mgl32.Vec3
	Out        *image.NRGBA

	ping [2][]float32
}

// NewCPU creates a backend for a w×h frame.
func NewCPU(w, h int) *CPU {
	return &CPU{
		FB:  raster.NewHDRBuffer(w, h),
		Out: image.NewNRGBA(image.Rect(0, 0, w, h)),
		ping: [2][]float32{
			make([]float32, w*h*3),
			make([]float32, w*h*3),
		},
	}
}

// BeginScene clears the HDR buffer.
func (c *CPU) BeginScene() { c.FB.Clear(c.ClearColor) }

// EndScene is a no-op for the software path.
func (c *CPU) EndScene() {}

// Blur runs one separable Gaussian pass with clamp-to-edge sampling.
func (c *CPU) Blur(dst int, horizontal, fromScene bool) {
	src := c.ping[1-dst]
	if fromScene {
		src = c.FB.Bright
	}
	out := c.ping[dst]
	w, h := c.FB.Width, c.FB.Height

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 3
			var r, g, b float32
			for k, wt := range GaussianWeights {
				for _, sign := range [2]int{1, -1} {
					if k == 0 && sign < 0 {
						continue
					}
					sx, sy := x, y
					if horizontal {
						sx = clampInt(x+sign*k, 0, w-1)
					} else {
						sy = clampInt(y+sign*k, 0, h-1)
					}
					i := (sy*w + sx) * 3
					r += src[i] * wt
					g += src[i+1] * wt
					b += src[i+2] * wt
				}
			}
			out[o], out[o+1], out[o+2] = r, g, b
		}
	}
}

// Composite adds bloom to the scene, tonemaps and writes Out.
func (c *CPU) Composite(src int, s Settings) {
	w, h := c.FB.Width, c.FB.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			col := c.FB.At(x, y)
			if src >= 0 && s.Bloom {
				p := c.ping[src][i*3 : i*3+3]
				col = col.Add(mgl32.Vec3{p[0], p[1], p[2]})
			}
			m := Tonemap(col, s.Exposure)
			o := i * 4
			c.Out.Pix[o] = clamp8(m[0] * 255)
			c.Out.Pix[o+1] = clamp8(m[1] * 255)
			c.Out.Pix[o+2] = clamp8(m[2] * 255)
			c.Out.Pix[o+3] = 255
		}
	}
}

// Bloom returns ping-pong buffer i, for inspection.
func (c *CPU) Bloom(i int) []float32 { return c.ping[i] }

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
