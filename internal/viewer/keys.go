package viewer

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-renderer/internal/controls"
)

// heldKeys are polled every frame.
var heldKeys = map[controls.Action]glfw.Key{
	controls.MoveForward:  glfw.KeyW,
	controls.MoveBackward: glfw.KeyS,
	controls.MoveLeft:     glfw.KeyA,
	controls.MoveRight:    glfw.KeyD,
	controls.MoveUp:       glfw.KeySpace,
	controls.MoveDown:     glfw.KeyLeftControl,
	controls.TurnLeft:     glfw.KeyQ,
	controls.TurnRight:    glfw.KeyE,
	controls.Sprint:       glfw.KeyLeftShift,
}

// pressKeys fire once on press.
var pressKeys = map[glfw.Key]controls.Action{
	glfw.KeyF1:     controls.ToggleOverlay,
	glfw.KeyR:      controls.ResetGame,
	glfw.KeyB:      controls.ToggleBloom,
	glfw.KeyN:      controls.ExposureDown,
	glfw.KeyM:      controls.ExposureUp,
	glfw.KeyEscape: controls.Quit,
}

// pressAction maps a pressed key to its action. Digit keys 1..8 select the
// card slot 0..7.
func pressAction(key glfw.Key) (controls.Action, int) {
	if key >= glfw.Key1 && key <= glfw.Key8 {
		return controls.SelectCard, int(key - glfw.Key1)
	}
	if a, ok := pressKeys[key]; ok {
		return a, 0
	}
	return controls.None, 0
}
