package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/game"
	"scene-renderer/internal/model"
)

// TableSlots are the card positions on the table, addressed by keys 1..8.
var TableSlots = [game.NumCards]mgl32.Vec3{
	{2.8, 3.6, 5.4},
	{2.8, 3.6, 6.2},
	{2.8, 3.6, 7.0},
	{2.8, 3.6, 7.8},
	{1.5, 3.6, 5.4},
	{1.5, 3.6, 6.2},
	{1.5, 3.6, 7.0},
	{1.5, 3.6, 7.8},
}

// PileSlots is the stack matched cards move to, two per pair.
var PileSlots = func() [game.NumCards]mgl32.Vec3 {
	var p [game.NumCards]mgl32.Vec3
	for i := range p {
		p[i] = mgl32.Vec3{3.5, 3.6 + 0.11*float32(i), 8.8}
	}
	return p
}()

// Card textures, relative to the resource directory.
const (
	CardBackTexture    = "textures/container.jpg"
	CardOverlayTexture = "textures/awesomeface.png"
)

// CardFaceTextures holds one face texture per pair.
var CardFaceTextures = [game.NumPairs]string{
	"textures/c++.png",
	"textures/haskell.png",
	"textures/java.png",
	"textures/python.png",
}

// CardBackVertices is the number of leading CardVertices drawn with the
// back texture; the rest show the pair face.
const CardBackVertices = 18

// CardVertices is the card box as a triangle list. Only the two large
// faces at x = ±0.05 carry texture coordinates.
var CardVertices = func() []model.Vertex {
	raw := [...][5]float32{
		{-0.05, -0.5, -0.25, 0, 0}, {0.05, -0.5, -0.25, 0, 0}, {0.05, 0.5, -0.25, 0, 0},
		{0.05, 0.5, -0.25, 0, 0}, {-0.05, 0.5, -0.25, 0, 0}, {-0.05, -0.5, -0.25, 0, 0},

		{-0.05, -0.5, 0.25, 0, 0}, {0.05, -0.5, 0.25, 0, 0}, {0.05, 0.5, 0.25, 0, 0},
		{0.05, 0.5, 0.25, 0, 0}, {-0.05, 0.5, 0.25, 0, 0}, {-0.05, -0.5, 0.25, 0, 0},

		{-0.05, 0.5, 0.25, 1, 0}, {-0.05, 0.5, -0.25, 1, 1}, {-0.05, -0.5, -0.25, 0, 1},
		{-0.05, -0.5, -0.25, 0, 1}, {-0.05, -0.5, 0.25, 0, 0}, {-0.05, 0.5, 0.25, 1, 0},

		{0.05, 0.5, 0.25, 1, 0}, {0.05, 0.5, -0.25, 1, 1}, {0.05, -0.5, -0.25, 0, 1},
		{0.05, -0.5, -0.25, 0, 1}, {0.05, -0.5, 0.25, 0, 0}, {0.05, 0.5, 0.25, 1, 0},

		{-0.05, -0.5, -0.25, 0, 0}, {0.05, -0.5, -0.25, 0, 0}, {0.05, -0.5, 0.25, 0, 0},
		{0.05, -0.5, 0.25, 0, 0}, {-0.05, -0.5, 0.25, 0, 0}, {-0.05, -0.5, -0.25, 0, 0},

		{-0.05, 0.5, -0.25, 0, 0}, {0.05, 0.5, -0.25, 0, 0}, {0.05, 0.5, 0.25, 0, 0},
		{0.05, 0.5, 0.25, 0, 0}, {-0.05, 0.5, 0.25, 0, 0}, {-0.05, 0.5, -0.25, 0, 0},
	}
	out := make([]model.Vertex, len(raw))
	for i, r := range raw {
		out[i] = model.Vertex{
			Position: mgl32.Vec3{r[0], r[1], r[2]},
			UV:       mgl32.Vec2{r[3], r[4]},
		}
	}
	return out
}()

// CardScale is the uniform scale applied to the card box.
const CardScale = 0.7

// CardMatrix lays a card flat on the table at pos, flipped by rotation
// degrees around its long axis.
func CardMatrix(pos mgl32.Vec3, rotation float32) mgl32.Mat4 {
	m := mgl32.Translate3D(pos[0], pos[1], pos[2])
	m = m.Mul4(rotY(90)).Mul4(rotX(90)).Mul4(rotY(90)).Mul4(rotY(rotation))
	return m.Mul4(mgl32.Scale3D(CardScale, CardScale, CardScale))
}
