package model

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Load reads a Wavefront OBJ file and the MTL library it references.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("model: decode %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// faceKey identifies a unique vertex within a mesh.
type faceKey struct{ v, vt, vn int }

type meshBuilder struct {
	mesh    Mesh
	index   map[faceKey]uint32
	smooth  []bool // vertex normal is accumulated from faces
	matName string
}

type decoder struct {
	dir       string
	positions []mgl32.Vec3
	uvs       []mgl32.Vec2
	normals   []mgl32.Vec3
	materials map[string]Material
	builders  []*meshBuilder
	cur       *meshBuilder
	name      string
	line      int
}

// Decode parses OBJ data. dir is used to resolve mtllib and texture paths.
func Decode(r io.Reader, dir string) (*Model, error) {
	d := &decoder{dir: dir, materials: map[string]Material{}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		d.line++
		if err := d.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", d.line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	m := &Model{}
	for _, b := range d.builders {
		if len(b.mesh.Indices) == 0 {
			continue
		}
		for i, s := range b.smooth {
			if s {
				b.mesh.Vertices[i].Normal = b.mesh.Vertices[i].Normal.Normalize()
			}
		}
		if mat, ok := d.materials[b.matName]; ok {
			b.mesh.Material = mat
		} else {
			b.mesh.Material = DefaultMaterial
		}
		m.Meshes = append(m.Meshes, b.mesh)
	}
	return m, nil
}

func (d *decoder) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil
	}
	fields := strings.Fields(line)
	args := fields[1:]

	switch fields[0] {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		d.positions = append(d.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		d.uvs = append(d.uvs, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		d.normals = append(d.normals, mgl32.Vec3{v[0], v[1], v[2]}.Normalize())
	case "f":
		return d.parseFace(args)
	case "o", "g":
		if len(args) > 0 {
			d.name = args[0]
		}
		d.cur = nil
	case "usemtl":
		if len(args) == 0 {
			return fmt.Errorf("usemtl without name")
		}
		if d.cur != nil && len(d.cur.mesh.Indices) > 0 {
			d.cur = nil
		}
		d.builder().matName = args[0]
	case "mtllib":
		for _, lib := range args {
			d.loadMaterials(lib)
		}
	case "s", "l", "p":
		// smoothing groups and line/point elements are ignored
	}
	return nil
}

// builder returns the current mesh, starting a new one when needed.
func (d *decoder) builder() *meshBuilder {
	if d.cur == nil {
		d.cur = &meshBuilder{index: map[faceKey]uint32{}}
		d.cur.mesh.Name = d.name
		if n := len(d.builders); n > 0 {
			d.cur.matName = d.builders[n-1].matName
		}
		d.builders = append(d.builders, d.cur)
	}
	return d.cur
}

func (d *decoder) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face with %d vertices", len(args))
	}
	keys := make([]faceKey, len(args))
	for i, a := range args {
		k, err := d.parseFaceVertex(a)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	b := d.builder()
	// flat normal for vertices without vn
	p0, p1, p2 := d.positions[keys[0].v], d.positions[keys[1].v], d.positions[keys[2].v]
	faceN := p1.Sub(p0).Cross(p2.Sub(p0))

	idx := make([]uint32, len(keys))
	for i, k := range keys {
		idx[i] = b.vertex(d, k, faceN)
	}
	// triangle fan
	for i := 1; i+1 < len(idx); i++ {
		b.mesh.Indices = append(b.mesh.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

func (b *meshBuilder) vertex(d *decoder, k faceKey, faceN mgl32.Vec3) uint32 {
	if i, ok := b.index[k]; ok {
		if b.smooth[i] {
			b.mesh.Vertices[i].Normal = b.mesh.Vertices[i].Normal.Add(faceN)
		}
		return i
	}
	v := Vertex{Position: d.positions[k.v]}
	if k.vt >= 0 {
		v.UV = d.uvs[k.vt]
	}
	smooth := k.vn < 0
	if smooth {
		v.Normal = faceN
	} else {
		v.Normal = d.normals[k.vn]
	}
	i := uint32(len(b.mesh.Vertices))
	b.mesh.Vertices = append(b.mesh.Vertices, v)
	b.smooth = append(b.smooth, smooth)
	b.index[k] = i
	return i
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// indices, -1 for absent parts. Negative OBJ indices count from the end.
func (d *decoder) parseFaceVertex(s string) (faceKey, error) {
	parts := strings.Split(s, "/")
	k := faceKey{-1, -1, -1}
	var err error
	if k.v, err = resolveIndex(parts[0], len(d.positions)); err != nil {
		return k, fmt.Errorf("vertex index %q: %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if k.vt, err = resolveIndex(parts[1], len(d.uvs)); err != nil {
			return k, fmt.Errorf("uv index %q: %w", s, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if k.vn, err = resolveIndex(parts[2], len(d.normals)); err != nil {
			return k, fmt.Errorf("normal index %q: %w", s, err)
		}
	}
	return k, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return -1, fmt.Errorf("index 0")
	}
	if i < 0 || i >= n {
		return -1, fmt.Errorf("out of range (have %d)", n)
	}
	return i, nil
}

func (d *decoder) loadMaterials(lib string) {
	path := filepath.Join(d.dir, lib)
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("model: material library not found, using default material", "path", path)
		return
	}
	defer f.Close()

	mats, err := DecodeMaterials(f, d.dir)
	if err != nil {
		slog.Warn("model: cannot parse material library", "path", path, "err", err)
		return
	}
	for k, v := range mats {
		d.materials[k] = v
	}
}

// DecodeMaterials parses an MTL library.
func DecodeMaterials(r io.Reader, dir string) (map[string]Material, error) {
	mats := map[string]Material{}
	var cur *Material
	flush := func() {
		if cur != nil {
			mats[cur.Name] = *cur
		}
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		args := fields[1:]
		if fields[0] == "newmtl" {
			flush()
			m := DefaultMaterial
			m.Name = strings.Join(args, " ")
			cur = &m
			continue
		}
		if cur == nil {
			continue
		}
		var err error
		switch fields[0] {
		case "Kd":
			cur.Diffuse, err = parseVec3(args)
		case "Ks":
			cur.Specular, err = parseVec3(args)
		case "Ns":
			var v []float32
			v, err = parseFloats(args, 1)
			if err == nil {
				cur.Shininess = v[0]
			}
		case "map_Kd":
			cur.DiffuseMap = mapPath(dir, args)
		case "map_Ks":
			cur.SpecularMap = mapPath(dir, args)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	flush()
	return mats, sc.Err()
}

// mapPath takes the last argument as the file name, skipping map options.
func mapPath(dir string, args []string) string {
	if len(args) == 0 {
		return ""
	}
	name := strings.ReplaceAll(args[len(args)-1], "\\", "/")
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func parseVec3(args []string) (mgl32.Vec3, error) {
	v, err := parseFloats(args, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
