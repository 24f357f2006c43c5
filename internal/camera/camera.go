package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard-driven camera motion.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
	TurnLeft
	TurnRight
)

// Defaults for a fresh camera.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0
	// TurnRate is the yaw speed of TurnLeft/TurnRight in degrees per second.
	TurnRate = 60.0

	NearPlane = 0.1
	FarPlane  = 100.0
)

// Camera is a free-fly camera using Euler angles.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	Zoom        float32
}

// New returns a camera at position looking down -Z.
func New(position mgl32.Vec3) Camera {
	c := Camera{
		Position:    position,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Zoom:        DefaultZoom,
	}
	c.updateVectors()
	return c
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, NearPlane, FarPlane)
}

// Move applies a keyboard movement over dt seconds.
func (c *Camera) Move(m Movement, dt float32) {
	v := c.Speed * dt
	switch m {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(v))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(v))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(v))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(v))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(v))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(v))
	case TurnLeft:
		c.Yaw -= TurnRate * dt
		c.updateVectors()
	case TurnRight:
		c.Yaw += TurnRate * dt
		c.updateVectors()
	}
}

// Look applies a mouse offset in screen pixels. Pitch is clamped so the
// view never flips over the poles.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = clamp(c.Pitch, -89, 89)
	c.updateVectors()
}

// Scroll narrows or widens the field of view.
func (c *Camera) Scroll(dy float32) {
	c.Zoom = clamp(c.Zoom-dy, 1, 45)
}

// SetFront points the camera along front and re-derives yaw and pitch.
func (c *Camera) SetFront(front mgl32.Vec3) {
	if front.Len() < 1e-6 {
		return
	}
	f := front.Normalize()
	c.Pitch = clamp(mgl32.RadToDeg(math32.Asin(clamp(f.Y(), -1, 1))), -89, 89)
	c.Yaw = mgl32.RadToDeg(math32.Atan2(f.Z(), f.X()))
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
