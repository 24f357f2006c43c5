// Package gfx wraps the OpenGL 4.1 core objects the viewer draws with:
// shader programs, textures, vertex arrays and the HDR bloom framebuffers.
// Every function that touches GL must run on the thread owning the context.
package gfx

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed shaders/*
var embedded embed.FS

// Shader program names. Each maps to <name>.vert and <name>.frag, except
// blur and composite which share quad.vert.
const (
	SceneShader     = "scene"
	CardShader      = "card"
	SkyboxShader    = "skybox"
	BlurShader      = "blur"
	CompositeShader = "composite"
	ImGuiShader     = "imgui"
)

// ShaderNames lists the programs Library builds.
var ShaderNames = []string{SceneShader, CardShader, SkyboxShader, BlurShader, CompositeShader, ImGuiShader}

// Sources reads shader files from dir when it is set, falling back to the
// embedded copies for files dir does not contain.
type Sources struct {
	Dir string
}

// ReadFile returns the contents of one shader file, e.g. "scene.frag".
func (s Sources) ReadFile(name string) (string, error) {
	if s.Dir != "" {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("gfx: read shader %s: %w", name, err)
		}
	}
	data, err := fs.ReadFile(embedded, "shaders/"+name)
	if err != nil {
		return "", fmt.Errorf("gfx: no shader %s: %w", name, err)
	}
	return string(data), nil
}

// Pair returns the vertex and fragment source of program name.
func (s Sources) Pair(name string) (vert, frag string, err error) {
	vname := name + ".vert"
	if name == BlurShader || name == CompositeShader {
		vname = "quad.vert"
	}
	if vert, err = s.ReadFile(vname); err != nil {
		return "", "", err
	}
	if frag, err = s.ReadFile(name + ".frag"); err != nil {
		return "", "", err
	}
	return vert, frag, nil
}
