package controls

import (
	"scene-renderer/internal/camera"
	"scene-renderer/internal/game"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/state"
)

// Action is what a key does. The viewer owns the key-to-action table.
type Action int

const (
	None Action = iota

	// held every frame
	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	TurnLeft
	TurnRight
	Sprint

	// fired once per press
	ToggleOverlay
	SelectCard // Slot carries the table slot
	ResetGame
	ToggleBloom
	ExposureDown
	ExposureUp
	Quit
)

// SprintFactor multiplies the frame time while Sprint is held.
const SprintFactor = 5

// ExposureStep is the exposure change per N/M press.
const ExposureStep = 0.1

var movements = []struct {
	action Action
	move   camera.Movement
}{
	{MoveForward, camera.Forward},
	{MoveBackward, camera.Backward},
	{MoveLeft, camera.Left},
	{MoveRight, camera.Right},
	{MoveUp, camera.Up},
	{MoveDown, camera.Down},
	{TurnLeft, camera.TurnLeft},
	{TurnRight, camera.TurnRight},
}

// Controller applies input to the program, game and post-processing state.
type Controller struct {
	State *state.ProgramState
	Game  *game.Game
	Post  *postfx.Settings

	// SetCursorFree is called when the overlay toggles so the viewer can
	// release or capture the mouse cursor.
	SetCursorFree func(free bool)

	quit bool
}

// Trigger handles a key press. slot is only read for SelectCard; now is the
// frame clock in seconds.
func (c *Controller) Trigger(a Action, slot int, now float64) {
	switch a {
	case ToggleOverlay:
		s := c.State
		s.OverlayEnabled = !s.OverlayEnabled
		if s.OverlayEnabled {
			s.CameraMouseUpdate = false
		}
		if c.SetCursorFree != nil {
			c.SetCursorFree(s.OverlayEnabled)
		}
	case SelectCard:
		c.Game.Select(slot, now)
	case ResetGame:
		c.Game.RequestReset()
	case ToggleBloom:
		c.Post.Bloom = !c.Post.Bloom
	case ExposureDown:
		c.Post.AdjustExposure(-ExposureStep)
	case ExposureUp:
		c.Post.AdjustExposure(ExposureStep)
	case Quit:
		c.quit = true
	}
}

// Hold applies continuous movement for the actions reported as held.
func (c *Controller) Hold(held func(Action) bool, dt float32) {
	if held(Sprint) {
		dt *= SprintFactor
	}
	for _, m := range movements {
		if held(m.action) {
			c.State.Camera.Move(m.move, dt)
		}
	}
}

// Look forwards a mouse offset to the camera unless the overlay owns the
// mouse.
func (c *Controller) Look(dx, dy float32) {
	if c.State.CameraMouseUpdate {
		c.State.Camera.Look(dx, dy)
	}
}

// ShouldQuit reports whether Quit was triggered.
func (c *Controller) ShouldQuit() bool {
	return c.quit
}
