package gfx

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/postfx"
)

// Bloom owns the HDR render target (scene color plus bright-pass color and
// a depth renderbuffer) and the two ping-pong blur targets. It implements
// postfx.Backend.
type Bloom struct {
	Programs   *Library
	ClearColor mgl32.Vec3

	width, height int32

	hdrFBO     uint32
	colors     [2]uint32 // 0 scene, 1 bright
	depthRBO   uint32
	pingFBO    [2]uint32
	pingColors [2]uint32
	quad       *VertexArray
	complete   bool
}

var _ postfx.Backend = (*Bloom)(nil)

// NewBloom allocates the framebuffers at the given size. An incomplete
// framebuffer is logged and the targets are kept; rendering goes on.
func NewBloom(programs *Library, width, height int) *Bloom {
	b := &Bloom{Programs: programs, quad: newQuad()}
	b.Resize(width, height)
	return b
}

// Resize reallocates every attachment. Zero sizes (a minimized window) are
// ignored. It reports whether all three framebuffers are complete.
func (b *Bloom) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return b.complete
	}
	if b.complete && int32(width) == b.width && int32(height) == b.height {
		return true
	}
	b.deleteTargets()
	b.width, b.height = int32(width), int32(height)

	gl.GenFramebuffers(1, &b.hdrFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.hdrFBO)
	gl.GenTextures(2, &b.colors[0])
	for i, tex := range b.colors {
		allocFloatTarget(tex, b.width, b.height)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, tex, 0)
	}
	gl.GenRenderbuffers(1, &b.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, b.width, b.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depthRBO)
	attachments := [2]uint32{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT1}
	gl.DrawBuffers(2, &attachments[0])
	complete := checkFramebuffer("hdr")

	gl.GenFramebuffers(2, &b.pingFBO[0])
	gl.GenTextures(2, &b.pingColors[0])
	for i := range b.pingFBO {
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.pingFBO[i])
		allocFloatTarget(b.pingColors[i], b.width, b.height)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.pingColors[i], 0)
		if !checkFramebuffer(fmt.Sprintf("pingpong %d", i)) {
			complete = false
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	b.complete = complete
	slog.Debug("gfx: bloom targets allocated", "width", width, "height", height, "complete", complete)
	return complete
}

func allocFloatTarget(tex uint32, w, h int32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, w, h, 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func checkFramebuffer(name string) bool {
	return reportFramebuffer(name, gl.CheckFramebufferStatus(gl.FRAMEBUFFER))
}

// reportFramebuffer logs an incomplete status. It never fails the caller.
func reportFramebuffer(name string, status uint32) bool {
	if status == gl.FRAMEBUFFER_COMPLETE {
		return true
	}
	slog.Error("gfx: framebuffer incomplete", "framebuffer", name, "status", fmt.Sprintf("0x%x", status))
	return false
}

// BeginScene binds the HDR target and clears both color attachments and
// depth.
func (b *Bloom) BeginScene() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.hdrFBO)
	gl.Viewport(0, 0, b.width, b.height)
	gl.ClearColor(b.ClearColor[0], b.ClearColor[1], b.ClearColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
}

// EndScene returns to the default framebuffer.
func (b *Bloom) EndScene() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Blur runs one separable Gaussian pass into ping-pong target dst.
func (b *Bloom) Blur(dst int, horizontal, fromScene bool) {
	p := b.Programs.Get(BlurShader)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.pingFBO[dst])
	p.Use()
	p.SetBool("horizontal", horizontal)
	p.SetInt("image", 0)
	src := b.pingColors[1-dst]
	if fromScene {
		src = b.colors[1]
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, src)
	b.quad.drawStrip()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Composite tonemaps onto the default framebuffer.
func (b *Bloom) Composite(src int, s postfx.Settings) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, b.width, b.height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := b.Programs.Get(CompositeShader)
	p.Use()
	p.SetInt("scene", 0)
	p.SetInt("bloomBlur", 1)
	p.SetBool("bloom", src >= 0)
	p.SetFloat("exposure", s.Exposure)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.colors[0])
	gl.ActiveTexture(gl.TEXTURE1)
	if src >= 0 {
		gl.BindTexture(gl.TEXTURE_2D, b.pingColors[src])
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	b.quad.drawStrip()
	gl.Enable(gl.DEPTH_TEST)
}

func (b *Bloom) deleteTargets() {
	if b.hdrFBO == 0 {
		return
	}
	gl.DeleteFramebuffers(1, &b.hdrFBO)
	gl.DeleteTextures(2, &b.colors[0])
	gl.DeleteRenderbuffers(1, &b.depthRBO)
	gl.DeleteFramebuffers(2, &b.pingFBO[0])
	gl.DeleteTextures(2, &b.pingColors[0])
	b.hdrFBO = 0
	b.width, b.height = 0, 0
	b.complete = false
}

// Delete frees all framebuffers and the fullscreen quad.
func (b *Bloom) Delete() {
	b.deleteTargets()
	if b.quad != nil {
		b.quad.Delete()
		b.quad = nil
	}
}
