package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestNewLooksDownNegativeZ(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Front)
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.Right)
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.Up)
}

func TestMove(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Move(Forward, 1)
	assertVec(t, mgl32.Vec3{0, 0, -DefaultSpeed}, c.Position)
	c.Move(Right, 2)
	assertVec(t, mgl32.Vec3{2 * DefaultSpeed, 0, -DefaultSpeed}, c.Position)
	c.Move(Up, 1)
	assert.InDelta(t, DefaultSpeed, c.Position.Y(), 1e-5)
	c.Move(Down, 1)
	c.Move(Backward, 1)
	c.Move(Left, 2)
	assertVec(t, mgl32.Vec3{}, c.Position)
}

func TestTurnChangesYaw(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Move(TurnRight, 1.5)
	assert.InDelta(t, DefaultYaw+90, c.Yaw, 1e-4)
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.Front)
}

func TestLookClampsPitch(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Look(0, 10000)
	assert.Equal(t, float32(89), c.Pitch)
	c.Look(0, -100000)
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestScrollClampsZoom(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Scroll(10)
	assert.Equal(t, float32(35), c.Zoom)
	c.Scroll(100)
	assert.Equal(t, float32(1), c.Zoom)
	c.Scroll(-100)
	assert.Equal(t, float32(45), c.Zoom)
}

func TestSetFrontRoundTrips(t *testing.T) {
	c := New(mgl32.Vec3{})
	front := mgl32.Vec3{0.3, -0.4, 0.5}.Normalize()
	c.SetFront(front)
	assertVec(t, front, c.Front)

	// a zero-length front is ignored
	c.SetFront(mgl32.Vec3{})
	assertVec(t, front, c.Front)

	// and the next look continues from the restored orientation
	c.Look(0, 0)
	assertVec(t, front, c.Front)
}

func TestViewMapsTargetOntoAxis(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	p := c.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertVec(t, mgl32.Vec3{0, 0, -3}, p.Vec3())
}
