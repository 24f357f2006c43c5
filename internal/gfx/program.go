package gfx

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with cached uniform locations.
type Program struct {
	Name     string
	ID       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a vertex/fragment pair.
func NewProgram(name, vertSrc, fragSrc string) (*Program, error) {
	vs, err := compile(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("gfx: %s vertex shader: %w", name, err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compile(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("gfx: %s fragment shader: %w", name, err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(id, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("gfx: link %s: %s", name, log)
	}
	return &Program{Name: name, ID: id, uniforms: map[string]int32{}}, nil
}

func compile(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile: %s", log)
	}
	return sh, nil
}

func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "(no log)"
	}
	buf := strings.Repeat("\x00", int(n+1))
	getLog(id, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00\n")
}

// Use makes p current.
func (p *Program) Use() { gl.UseProgram(p.ID) }

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Location returns the uniform location of name, -1 when the program has
// no such active uniform.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Debug("gfx: inactive uniform", "program", p.Name, "uniform", name)
	}
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetInt(name string, v int32) { gl.Uniform1i(p.Location(name), v) }

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Location(name), i)
}

func (p *Program) SetFloat(name string, v float32) { gl.Uniform1f(p.Location(name), v) }

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Location(name), v[0], v[1], v[2])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

// Library holds every named program and rebuilds them from Sources.
type Library struct {
	Sources  Sources
	programs map[string]*Program
}

// NewLibrary compiles all ShaderNames. A failure here is fatal to the caller.
func NewLibrary(src Sources) (*Library, error) {
	l := &Library{Sources: src, programs: map[string]*Program{}}
	for _, name := range ShaderNames {
		p, err := l.build(name)
		if err != nil {
			l.Delete()
			return nil, err
		}
		l.programs[name] = p
	}
	return l, nil
}

func (l *Library) build(name string) (*Program, error) {
	vert, frag, err := l.Sources.Pair(name)
	if err != nil {
		return nil, err
	}
	return NewProgram(name, vert, frag)
}

// Get returns a program by name.
func (l *Library) Get(name string) *Program { return l.programs[name] }

// Reload rebuilds every program. Programs that fail to compile keep their
// previous version and the error is logged.
func (l *Library) Reload() int {
	n := 0
	for _, name := range ShaderNames {
		p, err := l.build(name)
		if err != nil {
			slog.Error("gfx: shader reload failed, keeping previous program", "program", name, "err", err)
			continue
		}
		l.programs[name].Delete()
		l.programs[name] = p
		n++
	}
	return n
}

// Delete frees all programs.
func (l *Library) Delete() {
	for _, p := range l.programs {
		p.Delete()
	}
}
