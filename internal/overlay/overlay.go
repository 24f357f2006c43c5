// Package overlay is the ImGui debug UI toggled with F1.
package overlay

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"scene-renderer/internal/gfx"
)

// Overlay owns the imgui context and its GLFW and OpenGL backends.
type Overlay struct {
	ctx      *imgui.Context
	io       imgui.IO
	platform *platform
	renderer *renderer
	window   *glfw.Window
}

// New creates the imgui context for window. programs must contain the
// imgui shader.
func New(window *glfw.Window, programs *gfx.Library) *Overlay {
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	return &Overlay{
		ctx:      ctx,
		io:       io,
		platform: newPlatform(io, window),
		renderer: newRenderer(io, programs),
		window:   window,
	}
}

// Event forwarding; the viewer calls these from its GLFW callbacks.

func (o *Overlay) Key(key glfw.Key, action glfw.Action) { o.platform.key(key, action) }
func (o *Overlay) Char(r rune)                          { o.platform.char(r) }
func (o *Overlay) Scroll(x, y float64)                  { o.platform.scroll(x, y) }

func (o *Overlay) MouseButton(button glfw.MouseButton, action glfw.Action) {
	o.platform.mouseButton(button, action)
}

// WantsMouse reports whether imgui is using the mouse this frame.
func (o *Overlay) WantsMouse() bool { return o.io.WantCaptureMouse() }

// WantsKeyboard reports whether a text field has focus.
func (o *Overlay) WantsKeyboard() bool { return o.io.WantCaptureKeyboard() }

// Draw builds one frame with build and renders it over the current
// framebuffer.
func (o *Overlay) Draw(build func()) {
	o.platform.newFrame()
	imgui.NewFrame()
	build()
	imgui.Render()

	w, h := o.window.GetSize()
	fw, fh := o.window.GetFramebufferSize()
	o.renderer.render(
		[2]float32{float32(w), float32(h)},
		[2]float32{float32(fw), float32(fh)},
		imgui.RenderedDrawData(),
	)
}

// Destroy frees GL objects and the context.
func (o *Overlay) Destroy() {
	o.renderer.destroy()
	o.ctx.Destroy()
}
