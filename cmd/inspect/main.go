package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/model"
	"scene-renderer/internal/texture"
)

// inspect prints per-mesh geometry and material details of OBJ files.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect model.obj...")
		os.Exit(2)
	}
	cache := texture.NewCache("", false)

	for _, arg := range os.Args[1:] {
		m, err := model.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			continue
		}
		fmt.Printf("\n=== %s (meshes=%d triangles=%d) ===\n", arg, len(m.Meshes), m.TriangleCount())
		printMeshes(m.Meshes, cache)
	}
}

func printMeshes(meshes []model.Mesh, cache *texture.Cache) {
	for i := range meshes {
		m := &meshes[i]
		mat := &m.Material
		fmt.Printf("  Mesh[%d] %q: v=%d t=%d mtl=%q Kd=(%.2f,%.2f,%.2f) Ns=%.0f\n",
			i, m.Name, len(m.Vertices), len(m.Indices)/3, mat.Name,
			mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Shininess)
		fmt.Printf("    diffuse:  %s\n", mapInfo(mat.DiffuseMap, cache))
		fmt.Printf("    specular: %s\n", mapInfo(mat.SpecularMap, cache))

		if len(m.Vertices) == 0 {
			continue
		}
		minV, maxV := m.Vertices[0].Position, m.Vertices[0].Position
		for _, v := range m.Vertices[1:] {
			for k := 0; k < 3; k++ {
				minV[k] = min(minV[k], v.Position[k])
				maxV[k] = max(maxV[k], v.Position[k])
			}
		}
		size := maxV.Sub(minV)
		fmt.Printf("    bbox=(%.2f,%.2f,%.2f) min=(%.2f,%.2f,%.2f) max=(%.2f,%.2f,%.2f) unnormalized=%d\n",
			size[0], size[1], size[2],
			minV[0], minV[1], minV[2],
			maxV[0], maxV[1], maxV[2],
			badNormals(m.Vertices))
	}
}

// mapInfo describes a texture map: its file, size, channels and mean
// brightness.
func mapInfo(path string, cache *texture.Cache) string {
	if path == "" {
		return "-"
	}
	tex := cache.Resolve(path)
	if tex == nil {
		return fmt.Sprintf("%s MISSING", filepath.Base(path))
	}
	b := tex.Bounds()
	total := 0.0
	count := len(tex.Pix) / 4
	for j := 0; j < len(tex.Pix); j += 4 {
		total += float64(int(tex.Pix[j])+int(tex.Pix[j+1])+int(tex.Pix[j+2])) / 3.0
	}
	bright := 0.0
	if count > 0 {
		bright = total / float64(count)
	}
	return fmt.Sprintf("%s %dx%d ch=%d bright=%.0f", filepath.Base(path), b.Dx(), b.Dy(), texture.Components(tex), bright)
}

func badNormals(verts []model.Vertex) int {
	n := 0
	for _, v := range verts {
		if l := v.Normal.Len(); math.Abs(float64(l)-1) > 1e-3 || v.Normal == (mgl32.Vec3{}) {
			n++
		}
	}
	return n
}
