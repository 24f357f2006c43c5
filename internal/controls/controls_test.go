package controls

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"scene-renderer/internal/game"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/state"
)

func newController() (*Controller, *[]bool) {
	var slots, pile [game.NumCards]mgl32.Vec3
	post := postfx.Default()
	var cursor []bool
	c := &Controller{
		State: state.New(),
		Game:  game.New(rand.New(rand.NewPCG(1, 2)), slots, pile),
		Post:  &post,
		SetCursorFree: func(free bool) {
			cursor = append(cursor, free)
		},
	}
	return c, &cursor
}

func TestToggleOverlayFreesCursor(t *testing.T) {
	c, cursor := newController()
	assert.True(t, c.State.CameraMouseUpdate)

	c.Trigger(ToggleOverlay, 0, 0)
	assert.True(t, c.State.OverlayEnabled)
	assert.False(t, c.State.CameraMouseUpdate)

	c.Trigger(ToggleOverlay, 0, 0)
	assert.False(t, c.State.OverlayEnabled)
	assert.Equal(t, []bool{true, false}, *cursor)
}

func TestLookHonorsMouseUpdate(t *testing.T) {
	c, _ := newController()
	yaw := c.State.Camera.Yaw
	c.Look(10, 0)
	assert.NotEqual(t, yaw, c.State.Camera.Yaw)

	c.State.CameraMouseUpdate = false
	yaw = c.State.Camera.Yaw
	c.Look(10, 0)
	assert.Equal(t, yaw, c.State.Camera.Yaw)
}

func TestHoldSprintMultipliesSpeed(t *testing.T) {
	walk, _ := newController()
	walk.Hold(func(a Action) bool { return a == MoveForward }, 0.1)

	run, _ := newController()
	run.Hold(func(a Action) bool { return a == MoveForward || a == Sprint }, 0.1)

	start := state.New().Camera.Position
	walked := walk.State.Camera.Position.Sub(start).Len()
	ran := run.State.Camera.Position.Sub(start).Len()
	assert.Greater(t, walked, float32(0))
	assert.InDelta(t, walked*SprintFactor, ran, 1e-4)
}

func TestBloomAndExposureKeys(t *testing.T) {
	c, _ := newController()
	c.Trigger(ToggleBloom, 0, 0)
	assert.False(t, c.Post.Bloom)

	c.Trigger(ExposureUp, 0, 0)
	assert.InDelta(t, 1.1, c.Post.Exposure, 1e-6)
	c.Trigger(ExposureDown, 0, 0)
	c.Trigger(ExposureDown, 0, 0)
	assert.InDelta(t, 0.9, c.Post.Exposure, 1e-6)
}

func TestSelectAndReset(t *testing.T) {
	c, _ := newController()
	c.Trigger(SelectCard, 3, 0)
	assert.Equal(t, game.FirstPicked, c.Game.Phase)
	assert.True(t, c.Game.Cards[c.Game.CardAt(3)].Used)

	c.Trigger(ResetGame, 0, 0)
	assert.True(t, c.Game.NeedsShuffle)
	c.Game.Update(0.1, 0.1)
	assert.Equal(t, game.Idle, c.Game.Phase)
}

func TestQuit(t *testing.T) {
	c, _ := newController()
	assert.False(t, c.ShouldQuit())
	c.Trigger(Quit, 0, 0)
	assert.True(t, c.ShouldQuit())
}
