package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BrightThreshold is the luminance above which a fragment also lands in the
// bright attachment.
const BrightThreshold = 1.0

// HDRBuffer is a floating point render target with two color attachments:
// Color holds the shaded scene and Bright the bloom source. Both are RGB
// interleaved, len = W*H*3. Depth holds NDC z, initialized to +Inf.
type HDRBuffer struct {
	Width  int
	Height int
	Color  []float32
	Bright []float32
	Depth  []float32
}

// NewHDRBuffer allocates a cleared buffer.
func NewHDRBuffer(w, h int) *HDRBuffer {
	n := w * h
	fb := &HDRBuffer{
		Width:  w,
		Height: h,
		Color:  make([]float32, n*3),
		Bright: make([]float32, n*3),
		Depth:  make([]float32, n),
	}
	fb.Clear(mgl32.Vec3{})
	return fb
}

// Clear fills both attachments with c and resets depth.
func (fb *HDRBuffer) Clear(c mgl32.Vec3) {
	for i := 0; i < len(fb.Color); i += 3 {
		fb.Color[i], fb.Color[i+1], fb.Color[i+2] = c[0], c[1], c[2]
		fb.Bright[i], fb.Bright[i+1], fb.Bright[i+2] = c[0], c[1], c[2]
	}
	inf := float32(math.Inf(1))
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

// Set writes a fragment color at pixel index i, copying it to Bright when
// its luminance exceeds BrightThreshold.
func (fb *HDRBuffer) Set(i int, c mgl32.Vec3) {
	o := i * 3
	fb.Color[o], fb.Color[o+1], fb.Color[o+2] = c[0], c[1], c[2]
	if Luminance(c) > BrightThreshold {
		fb.Bright[o], fb.Bright[o+1], fb.Bright[o+2] = c[0], c[1], c[2]
	} else {
		fb.Bright[o], fb.Bright[o+1], fb.Bright[o+2] = 0, 0, 0
	}
}

// At returns the scene color at (x, y).
func (fb *HDRBuffer) At(x, y int) mgl32.Vec3 {
	o := (y*fb.Width + x) * 3
	return mgl32.Vec3{fb.Color[o], fb.Color[o+1], fb.Color[o+2]}
}

// BrightAt returns the bright attachment at (x, y).
func (fb *HDRBuffer) BrightAt(x, y int) mgl32.Vec3 {
	o := (y*fb.Width + x) * 3
	return mgl32.Vec3{fb.Bright[o], fb.Bright[o+1], fb.Bright[o+2]}
}

// Luminance is the Rec. 709 relative luminance of a linear color.
func Luminance(c mgl32.Vec3) float32 {
	return c.Dot(mgl32.Vec3{0.2126, 0.7152, 0.0722})
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float32

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = float32(math.Pow(float64(i)/255.0, 2.2))
	}
}
