package gfx

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"scene-renderer/internal/model"
)

// Attribute locations shared by the scene, card and skybox shaders.
const (
	attrPosition = 0
	attrNormal   = 1
	attrUV       = 2
)

// VertexArray is a VAO with its buffers.
type VertexArray struct {
	VAO, VBO, EBO uint32
	Count         int32 // indices when EBO != 0, else vertices
}

// NewMeshArray uploads an indexed mesh in the model.Vertex layout.
func NewMeshArray(m *model.Mesh) *VertexArray {
	va := newVertexArray(m.Vertices)
	gl.GenBuffers(1, &va.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	va.Count = int32(len(m.Indices))
	gl.BindVertexArray(0)
	return va
}

// NewTriangleArray uploads a non-indexed triangle list.
func NewTriangleArray(verts []model.Vertex) *VertexArray {
	va := newVertexArray(verts)
	va.Count = int32(len(verts))
	gl.BindVertexArray(0)
	return va
}

func newVertexArray(verts []model.Vertex) *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.VAO)
	gl.BindVertexArray(va.VAO)
	gl.GenBuffers(1, &va.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*model.VertexStride, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointer(attrPosition, 3, gl.FLOAT, false, model.VertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attrNormal)
	gl.VertexAttribPointer(attrNormal, 3, gl.FLOAT, false, model.VertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(attrUV)
	gl.VertexAttribPointer(attrUV, 2, gl.FLOAT, false, model.VertexStride, gl.PtrOffset(6*4))
	return va
}

// NewPositionArray uploads tightly packed vec3 positions (the skybox cube).
func NewPositionArray(positions []float32) *VertexArray {
	va := &VertexArray{Count: int32(len(positions) / 3)}
	gl.GenVertexArrays(1, &va.VAO)
	gl.BindVertexArray(va.VAO)
	gl.GenBuffers(1, &va.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointer(attrPosition, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return va
}

// quadVertices is a fullscreen triangle strip: position xyz, uv.
var quadVertices = []float32{
	-1, 1, 0, 0, 1,
	-1, -1, 0, 0, 0,
	1, 1, 0, 1, 1,
	1, -1, 0, 1, 0,
}

func newQuad() *VertexArray {
	va := &VertexArray{Count: 4}
	gl.GenVertexArrays(1, &va.VAO)
	gl.BindVertexArray(va.VAO)
	gl.GenBuffers(1, &va.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.BindVertexArray(0)
	return va
}

// Draw issues the draw call for the whole array.
func (va *VertexArray) Draw() {
	gl.BindVertexArray(va.VAO)
	if va.EBO != 0 {
		gl.DrawElements(gl.TRIANGLES, va.Count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, va.Count)
	}
	gl.BindVertexArray(0)
}

// DrawRange draws count vertices starting at first from a non-indexed array.
func (va *VertexArray) DrawRange(first, count int32) {
	gl.BindVertexArray(va.VAO)
	gl.DrawArrays(gl.TRIANGLES, first, count)
	gl.BindVertexArray(0)
}

func (va *VertexArray) drawStrip() {
	gl.BindVertexArray(va.VAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, va.Count)
	gl.BindVertexArray(0)
}

// Delete frees the VAO and its buffers.
func (va *VertexArray) Delete() {
	if va.EBO != 0 {
		gl.DeleteBuffers(1, &va.EBO)
	}
	gl.DeleteBuffers(1, &va.VBO)
	gl.DeleteVertexArrays(1, &va.VAO)
	*va = VertexArray{}
}
