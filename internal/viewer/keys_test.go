package viewer

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"scene-renderer/internal/controls"
)

func TestPressActionDigits(t *testing.T) {
	for i, k := range []glfw.Key{glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5, glfw.Key6, glfw.Key7, glfw.Key8} {
		a, slot := pressAction(k)
		assert.Equal(t, controls.SelectCard, a)
		assert.Equal(t, i, slot)
	}
	a, _ := pressAction(glfw.Key9)
	assert.Equal(t, controls.None, a)
	a, _ = pressAction(glfw.Key0)
	assert.Equal(t, controls.None, a)
}

func TestPressActionBindings(t *testing.T) {
	cases := map[glfw.Key]controls.Action{
		glfw.KeyF1:     controls.ToggleOverlay,
		glfw.KeyR:      controls.ResetGame,
		glfw.KeyB:      controls.ToggleBloom,
		glfw.KeyN:      controls.ExposureDown,
		glfw.KeyM:      controls.ExposureUp,
		glfw.KeyEscape: controls.Quit,
		glfw.KeyW:      controls.None,
	}
	for k, want := range cases {
		got, _ := pressAction(k)
		assert.Equal(t, want, got, "key %d", k)
	}
}

func TestHeldKeysAreNotPressKeys(t *testing.T) {
	for _, k := range heldKeys {
		_, ok := pressKeys[k]
		assert.False(t, ok, "key %d bound twice", k)
	}
	assert.Len(t, heldKeys, 9)
}
