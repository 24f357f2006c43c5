package overlay

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

// platform feeds GLFW window state and events into the imgui IO.
type platform struct {
	io     imgui.IO
	window *glfw.Window

	time             float64
	mouseJustPressed [3]bool
}

var glfwButtons = [3]glfw.MouseButton{glfw.MouseButtonLeft, glfw.MouseButtonRight, glfw.MouseButtonMiddle}

func newPlatform(io imgui.IO, window *glfw.Window) *platform {
	p := &platform{io: io, window: window}
	p.mapKeys()
	return p
}

func (p *platform) mapKeys() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for k, v := range keys {
		p.io.KeyMap(k, int(v))
	}
}

// newFrame updates display size, frame time and mouse state.
func (p *platform) newFrame() {
	w, h := p.window.GetSize()
	p.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	now := glfw.GetTime()
	if p.time > 0 {
		p.io.SetDeltaTime(float32(now - p.time))
	}
	p.time = now

	if p.window.GetAttrib(glfw.Focused) != 0 {
		x, y := p.window.GetCursorPos()
		p.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for i, b := range glfwButtons {
		down := p.mouseJustPressed[i] || p.window.GetMouseButton(b) == glfw.Press
		p.io.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}
}

func (p *platform) mouseButton(button glfw.MouseButton, action glfw.Action) {
	if action != glfw.Press {
		return
	}
	for i, b := range glfwButtons {
		if b == button {
			p.mouseJustPressed[i] = true
		}
	}
}

func (p *platform) scroll(x, y float64) {
	p.io.AddMouseWheelDelta(float32(x), float32(y))
}

func (p *platform) key(key glfw.Key, action glfw.Action) {
	if action == glfw.Press {
		p.io.KeyPress(int(key))
	}
	if action == glfw.Release {
		p.io.KeyRelease(int(key))
	}
	p.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	p.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	p.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	p.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (p *platform) char(r rune) {
	p.io.AddInputCharacters(string(r))
}
