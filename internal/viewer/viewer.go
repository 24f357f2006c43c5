// Package viewer runs the interactive window: input, the match game, the
// HDR scene pass with bloom and the debug overlay.
package viewer

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-renderer/internal/batch"
	"scene-renderer/internal/config"
	"scene-renderer/internal/controls"
	"scene-renderer/internal/game"
	"scene-renderer/internal/gfx"
	"scene-renderer/internal/overlay"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/scene"
	"scene-renderer/internal/state"
	"scene-renderer/internal/texture"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type viewer struct {
	cfg    *config.Config
	window *glfw.Window

	state *state.ProgramState
	game  *game.Game
	post  postfx.Settings
	ctrl  *controls.Controller

	programs *gfx.Library
	bloom    *gfx.Bloom
	pipeline *postfx.Pipeline
	scene    *glScene
	overlay  *overlay.Overlay
	panels   *overlay.Panels
	watcher  *gfx.Watcher

	width, height int
	lastX, lastY  float64
	firstMouse    bool
}

// Run opens the window and blocks until it is closed. Program state is
// loaded from cfg.StateFile at start and written back on exit.
func Run(cfg *config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("viewer: glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("viewer: create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	if *cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("viewer: gl init: %w", err)
	}
	slog.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	v, err := newViewer(cfg, window)
	if err != nil {
		return err
	}
	defer v.close()

	v.loop()

	if err := v.state.Save(cfg.StateFile); err != nil {
		return err
	}
	slog.Info("program state saved", "path", cfg.StateFile)
	return nil
}

func newViewer(cfg *config.Config, window *glfw.Window) (*viewer, error) {
	v := &viewer{
		cfg:        cfg,
		window:     window,
		state:      state.New(),
		firstMouse: true,
		post: postfx.Settings{
			Bloom:      *cfg.Post.Bloom,
			Exposure:   cfg.Post.Exposure,
			BlurPasses: cfg.Post.BlurPasses,
		},
	}
	v.state.Load(cfg.StateFile)

	seed := uint64(time.Now().UnixNano())
	v.game = game.New(rand.New(rand.NewPCG(seed, seed>>1)), scene.TableSlots, scene.PileSlots)
	v.ctrl = &controls.Controller{
		State:         v.state,
		Game:          v.game,
		Post:          &v.post,
		SetCursorFree: v.setCursorFree,
	}

	var err error
	v.programs, err = gfx.NewLibrary(gfx.Sources{Dir: cfg.ShaderDir})
	if err != nil {
		return nil, err
	}
	v.width, v.height = window.GetFramebufferSize()
	v.bloom = gfx.NewBloom(v.programs, v.width, v.height)
	v.pipeline = &postfx.Pipeline{Backend: v.bloom, Settings: &v.post}

	textures := texture.NewCache(cfg.ResourceDir, true)
	assets := batch.LoadAssets(cfg.ResourceDir, textures)
	v.scene = uploadScene(v.programs, assets)
	slog.Info("scene uploaded", "models", len(v.scene.models), "textures", textures.Len())

	v.overlay = overlay.New(window, v.programs)
	v.panels = &overlay.Panels{State: v.state, Game: v.game, Post: &v.post}

	if cfg.ShaderDir != "" {
		if v.watcher, err = gfx.WatchShaders(cfg.ShaderDir); err != nil {
			slog.Warn("shader hot reload disabled", "err", err)
		}
	}

	v.setCursorFree(v.state.OverlayEnabled)
	window.SetFramebufferSizeCallback(v.onResize)
	window.SetCursorPosCallback(v.onCursor)
	window.SetScrollCallback(v.onScroll)
	window.SetKeyCallback(v.onKey)
	window.SetCharCallback(v.onChar)
	window.SetMouseButtonCallback(v.onMouseButton)

	gl.Enable(gl.DEPTH_TEST)
	return v, nil
}

func (v *viewer) loop() {
	last := glfw.GetTime()
	for !v.window.ShouldClose() && !v.ctrl.ShouldQuit() {
		now := glfw.GetTime()
		dt := now - last
		last = now

		v.ctrl.Hold(v.held, float32(dt))
		v.game.Update(now, dt)
		v.reloadShaders()

		aspect := float32(v.width) / float32(max(v.height, 1))
		f := &frame{
			view:    v.state.Camera.View(),
			proj:    v.state.Camera.Projection(aspect),
			viewPos: v.state.Camera.Position,
			lights:  &v.state.Lights,
			game:    v.game,
			time:    float32(now),
		}
		v.bloom.ClearColor = v.state.ClearColor
		v.pipeline.Run(func() { v.scene.draw(f) })

		if v.state.OverlayEnabled {
			v.overlay.Draw(v.panels.Build)
		}

		v.window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (v *viewer) reloadShaders() {
	if v.watcher == nil {
		return
	}
	select {
	case <-v.watcher.Changed():
		n := v.programs.Reload()
		slog.Info("shaders reloaded", "programs", n)
	default:
	}
}

func (v *viewer) held(a controls.Action) bool {
	if v.state.OverlayEnabled && v.overlay.WantsKeyboard() {
		return false
	}
	k, ok := heldKeys[a]
	return ok && v.window.GetKey(k) == glfw.Press
}

func (v *viewer) setCursorFree(free bool) {
	if free {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		v.firstMouse = true
	}
}

func (v *viewer) onResize(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		return
	}
	v.width, v.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	v.bloom.Resize(width, height)
}

func (v *viewer) onCursor(_ *glfw.Window, x, y float64) {
	if v.firstMouse {
		v.lastX, v.lastY = x, y
		v.firstMouse = false
	}
	dx := x - v.lastX
	dy := v.lastY - y
	v.lastX, v.lastY = x, y
	v.ctrl.Look(float32(dx), float32(dy))
}

func (v *viewer) onScroll(_ *glfw.Window, x, y float64) {
	if v.state.OverlayEnabled {
		v.overlay.Scroll(x, y)
		if v.overlay.WantsMouse() {
			return
		}
	}
	v.state.Camera.Scroll(float32(y))
}

func (v *viewer) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if v.state.OverlayEnabled {
		v.overlay.Key(key, action)
		if v.overlay.WantsKeyboard() && key != glfw.KeyF1 {
			return
		}
	}
	if action != glfw.Press {
		return
	}
	a, slot := pressAction(key)
	if a == controls.None {
		return
	}
	v.ctrl.Trigger(a, slot, glfw.GetTime())
	if a == controls.SelectCard || a == controls.ResetGame {
		slog.Debug("game input", "action", a, "slot", slot, "phase", v.game.Phase, "pairs", v.game.Pairs)
	}
}

func (v *viewer) onChar(_ *glfw.Window, r rune) {
	if v.state.OverlayEnabled {
		v.overlay.Char(r)
	}
}

func (v *viewer) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if v.state.OverlayEnabled {
		v.overlay.MouseButton(button, action)
	}
}

func (v *viewer) close() {
	if v.watcher != nil {
		v.watcher.Close()
	}
	v.overlay.Destroy()
	v.scene.delete()
	v.bloom.Delete()
	v.programs.Delete()
}
