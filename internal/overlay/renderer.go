package overlay

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"scene-renderer/internal/gfx"
)

// renderer draws imgui draw lists with the gfx imgui program.
type renderer struct {
	programs *gfx.Library

	fontTexture uint32
	vao         uint32
	vbo, ebo    uint32
}

func newRenderer(io imgui.IO, programs *gfx.Library) *renderer {
	r := &renderer{programs: programs}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	p := programs.Get(gfx.ImGuiShader)
	size, posOff, uvOff, colOff := imgui.VertexBufferLayout()
	pos := uint32(gl.GetAttribLocation(p.ID, gl.Str("Position\x00")))
	uv := uint32(gl.GetAttribLocation(p.ID, gl.Str("UV\x00")))
	col := uint32(gl.GetAttribLocation(p.ID, gl.Str("Color\x00")))
	gl.EnableVertexAttribArray(pos)
	gl.EnableVertexAttribArray(uv)
	gl.EnableVertexAttribArray(col)
	gl.VertexAttribPointer(pos, 2, gl.FLOAT, false, int32(size), gl.PtrOffset(posOff))
	gl.VertexAttribPointer(uv, 2, gl.FLOAT, false, int32(size), gl.PtrOffset(uvOff))
	gl.VertexAttribPointer(col, 4, gl.UNSIGNED_BYTE, true, int32(size), gl.PtrOffset(colOff))
	gl.BindVertexArray(0)

	image := io.Fonts().TextureDataAlpha8()
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))
	return r
}

// orthoProjection maps imgui's top-left pixel space to clip space.
func orthoProjection(w, h float32) mgl32.Mat4 {
	return mgl32.Mat4{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

func (r *renderer) render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	dw, dh := displaySize[0], displaySize[1]
	fw, fh := framebufferSize[0], framebufferSize[1]
	if fw <= 0 || fh <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{X: fw / dw, Y: fh / dh})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fw), int32(fh))

	p := r.programs.Get(gfx.ImGuiShader)
	p.Use()
	p.SetInt("Texture", 0)
	p.SetMat4("ProjMtx", orthoProjection(dw, dh))
	gl.BindSampler(0, 0)

	gl.BindVertexArray(r.vao)
	gl.ActiveTexture(gl.TEXTURE0)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		var offset int

		vb, vbSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vbSize, vb, gl.STREAM_DRAW)

		ib, ibSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, ibSize, ib, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fh)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, gl.PtrOffset(offset))
			}
			offset += cmd.ElementCount() * indexSize
		}
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *renderer) destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteTextures(1, &r.fontTexture)
}
