package overlay

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	"scene-renderer/internal/camera"
	"scene-renderer/internal/game"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/state"
)

// Panels draws the debug windows over the program state.
type Panels struct {
	State *state.ProgramState
	Game  *game.Game
	Post  *postfx.Settings

	slider float32
}

// Build emits the windows for one frame.
func (p *Panels) Build() {
	s := p.State

	imgui.Begin("Hello window")
	imgui.Text("Hello text")
	imgui.SliderFloat("Float slider", &p.slider, 0, 1)
	imgui.ColorEdit3("Background color", (*[3]float32)(&s.ClearColor))
	imgui.DragFloat3("Backpack position", (*[3]float32)(&s.BackpackPosition))
	imgui.DragFloatV("Backpack scale", &s.BackpackScale, 0.05, 0.1, 4.0, "%.3f", imgui.SliderFlagsNone)

	pl := &s.Lights.Point
	imgui.DragFloatV("pointLight.constant", &pl.Constant, 0.05, 0, 1, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloatV("pointLight.linear", &pl.Linear, 0.05, 0, 1, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloatV("pointLight.quadratic", &pl.Quadratic, 0.05, 0, 1, "%.3f", imgui.SliderFlagsNone)
	imgui.End()

	imgui.Begin("Camera info")
	for _, line := range cameraLines(&s.Camera) {
		imgui.Text(line)
	}
	imgui.Checkbox("Camera mouse update", &s.CameraMouseUpdate)
	imgui.End()

	imgui.Begin("Game")
	for _, line := range gameLines(p.Game) {
		imgui.Text(line)
	}
	imgui.Separator()
	imgui.Checkbox("Bloom", &p.Post.Bloom)
	imgui.SliderFloat("Exposure", &p.Post.Exposure, postfx.MinExposure, 5)
	passes := int32(p.Post.BlurPasses)
	if imgui.SliderInt("Blur passes", &passes, 0, 20) {
		p.Post.BlurPasses = int(passes)
	}
	imgui.End()
}

func cameraLines(c *camera.Camera) []string {
	return []string{
		fmt.Sprintf("Camera position: (%f, %f, %f)", c.Position[0], c.Position[1], c.Position[2]),
		fmt.Sprintf("(Yaw, Pitch): (%f, %f)", c.Yaw, c.Pitch),
		fmt.Sprintf("Camera front: (%f, %f, %f)", c.Front[0], c.Front[1], c.Front[2]),
	}
}

func gameLines(g *game.Game) []string {
	lines := []string{
		fmt.Sprintf("Pairs: %d/%d", g.Pairs, game.NumPairs),
		fmt.Sprintf("Phase: %s", g.Phase),
	}
	if g.Won() {
		lines = append(lines, "All pairs found, press R to play again")
	}
	return lines
}
