package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Load decodes an image file into NRGBA. flipY mirrors rows so row 0 is the
// bottom of the image, matching OpenGL's texture origin.
func Load(path string, flipY bool) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	out := toNRGBA(img)
	if flipY {
		FlipVertical(out)
	}
	return out, nil
}

// decode picks the TGA decoder by extension. TGA has no magic number, so it
// is never registered with image.Decode.
func decode(f *os.File, path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return tga.Decode(f)
	}
	img, _, err := image.Decode(f)
	return img, err
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Rect.Dx()*4)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+len(row)]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+len(row)]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}

// toNRGBA converts any image to a zero-origin NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.RGBA:
		// opaque or premultiplied sources: draw handles conversion
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}

// Components reports how many channels the GL upload should use: 1 for
// grayscale, 3 for opaque color, 4 when any texel is translucent.
func Components(img *image.NRGBA) int {
	gray, opaque := true, true
	for i := 0; i < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4]
		if p[3] != 255 {
			opaque = false
		}
		if p[0] != p[1] || p[1] != p[2] {
			gray = false
		}
		if !gray && !opaque {
			break
		}
	}
	switch {
	case !opaque:
		return 4
	case gray:
		return 1
	default:
		return 3
	}
}
