package gfx

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"scene-renderer/internal/texture"
)

// Texture is an uploaded 2D texture or cubemap.
type Texture struct {
	ID     uint32
	Target uint32
}

// Bind binds t to texture unit unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.Target, t.ID)
}

// Delete frees the GL texture.
func (t *Texture) Delete() {
	if t != nil && t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// UploadTexture creates a mipmapped 2D texture. srgb selects an sRGB
// internal format for color maps; specular maps pass false. Images with an
// alpha channel clamp at the edges so cut-out borders do not bleed.
func UploadTexture(img *image.NRGBA, srgb bool) *Texture {
	t := &Texture{Target: gl.TEXTURE_2D}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	internal := int32(gl.RGBA8)
	if srgb {
		internal = gl.SRGB8_ALPHA8
	}
	b := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	wrap := int32(gl.REPEAT)
	if texture.Components(img) == 4 {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return t
}

// UploadCubemap creates a cubemap from six faces in +X, -X, +Y, -Y, +Z, -Z
// order.
func UploadCubemap(cm *texture.Cubemap) *Texture {
	t := &Texture{Target: gl.TEXTURE_CUBE_MAP}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, face := range cm.Faces {
		b := face.Bounds()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.SRGB8_ALPHA8,
			int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	return t
}

// TextureSet uploads images from a Resolver once and hands out the GL
// handle for each path.
type TextureSet struct {
	Images texture.Resolver
	items  map[string]*Texture
}

// NewTextureSet wraps a resolver.
func NewTextureSet(images texture.Resolver) *TextureSet {
	return &TextureSet{Images: images, items: map[string]*Texture{}}
}

// Get returns the texture for path, nil when it cannot be loaded.
func (s *TextureSet) Get(path string, srgb bool) *Texture {
	if path == "" {
		return nil
	}
	if t, ok := s.items[path]; ok {
		return t
	}
	var t *Texture
	if img := s.Images.Resolve(path); img != nil {
		t = UploadTexture(img, srgb)
	}
	s.items[path] = t
	return t
}

// Delete frees every uploaded texture.
func (s *TextureSet) Delete() {
	for _, t := range s.items {
		t.Delete()
	}
}
