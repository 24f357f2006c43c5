package overlay

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-renderer/internal/camera"
	"scene-renderer/internal/game"
)

func TestCameraLines(t *testing.T) {
	c := camera.New(mgl32.Vec3{1, 2, 3})
	lines := cameraLines(&c)
	require.Len(t, lines, 3)
	assert.Equal(t, "Camera position: (1.000000, 2.000000, 3.000000)", lines[0])
	assert.Equal(t, "(Yaw, Pitch): (-90.000000, 0.000000)", lines[1])
	assert.Contains(t, lines[2], "-1.000000)")
}

func TestGameLines(t *testing.T) {
	var slots, pile [game.NumCards]mgl32.Vec3
	g := game.New(rand.New(rand.NewPCG(1, 2)), slots, pile)
	lines := gameLines(g)
	assert.Equal(t, []string{"Pairs: 0/4", "Phase: idle"}, lines)

	g.Pairs = game.NumPairs
	for i := range g.Cards {
		g.Cards[i].Used = true
		g.Cards[i].Matched = true
	}
	lines = gameLines(g)
	require.Len(t, lines, 3)
	assert.Equal(t, "Pairs: 4/4", lines[0])
}

func TestOrthoProjectionCorners(t *testing.T) {
	m := orthoProjection(800, 600)
	tl := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	br := m.Mul4x1(mgl32.Vec4{800, 600, 0, 1})
	assert.InDelta(t, -1, tl.X(), 1e-6)
	assert.InDelta(t, 1, tl.Y(), 1e-6)
	assert.InDelta(t, 1, br.X(), 1e-6)
	assert.InDelta(t, -1, br.Y(), 1e-6)
}
