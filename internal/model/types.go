package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout uploaded to the GPU: position, normal,
// texture coordinate. 8 float32s, no padding.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 8 * 4

// Material holds the subset of MTL properties the scene shader reads.
// Map paths are resolved against the model directory.
type Material struct {
	Name        string
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Shininess   float32
	DiffuseMap  string
	SpecularMap string
}

// DefaultMaterial is used when a mesh names no material or the MTL file
// cannot be read.
var DefaultMaterial = Material{
	Name:      "default",
	Diffuse:   mgl32.Vec3{0.63, 0.63, 0.63},
	Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
	Shininess: 32,
}

// Mesh is one draw call: indexed triangles sharing a material.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// Model is a loaded OBJ file.
type Model struct {
	Path   string
	Meshes []Mesh
}

// TriangleCount returns the number of triangles over all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Indices) / 3
	}
	return n
}
