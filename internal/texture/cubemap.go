package texture

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube face order, matching GL_TEXTURE_CUBE_MAP_POSITIVE_X + i.
const (
	PosX = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Cubemap holds six face images. Faces are stored top row first, as cube
// map faces are never flipped.
type Cubemap struct {
	Faces [6]*image.NRGBA
}

// LoadCubemap loads six faces from dir in PosX..NegZ order. A failed face
// aborts the load.
func LoadCubemap(dir string, names [6]string) (*Cubemap, error) {
	cm := &Cubemap{}
	for i, name := range names {
		img, err := Load(filepath.Join(dir, name), false)
		if err != nil {
			return nil, fmt.Errorf("texture: cubemap face %d: %w", i, err)
		}
		cm.Faces[i] = img
	}
	return cm, nil
}

// Lookup maps a direction to a face and its texture coordinates in [0,1],
// following the OpenGL cube map selection rules.
func Lookup(dir mgl32.Vec3) (face int, u, v float32) {
	x, y, z := dir[0], dir[1], dir[2]
	ax, ay, az := math32.Abs(x), math32.Abs(y), math32.Abs(z)

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			face, sc, tc = PosX, -z, -y
		} else {
			face, sc, tc = NegX, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			face, sc, tc = PosY, x, z
		} else {
			face, sc, tc = NegY, x, -z
		}
	default:
		ma = az
		if z > 0 {
			face, sc, tc = PosZ, x, -y
		} else {
			face, sc, tc = NegZ, -x, -y
		}
	}
	if ma == 0 {
		return PosZ, 0.5, 0.5
	}
	return face, (sc/ma + 1) / 2, (tc/ma + 1) / 2
}
