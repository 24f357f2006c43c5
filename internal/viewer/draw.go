package viewer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/batch"
	"scene-renderer/internal/game"
	"scene-renderer/internal/gfx"
	"scene-renderer/internal/lighting"
	"scene-renderer/internal/model"
	"scene-renderer/internal/scene"
)

type glMesh struct {
	va       *gfx.VertexArray
	diffuse  *gfx.Texture
	specular *gfx.Texture
	material model.Material
}

type glModel struct {
	placement *scene.Placement
	meshes    []glMesh
}

// glScene is the GPU copy of the loaded assets.
type glScene struct {
	programs *gfx.Library
	textures *gfx.TextureSet

	models []glModel

	card        *gfx.VertexArray
	cardBack    *gfx.Texture
	cardOverlay *gfx.Texture
	cardFaces   [game.NumPairs]*gfx.Texture

	sky    *gfx.VertexArray
	skyTex *gfx.Texture
}

func uploadScene(programs *gfx.Library, a *batch.Assets) *glScene {
	s := &glScene{
		programs: programs,
		textures: gfx.NewTextureSet(a.Textures),
		card:     gfx.NewTriangleArray(scene.CardVertices),
		sky:      gfx.NewPositionArray(scene.SkyboxVertices),
	}
	for _, l := range a.Models {
		m := glModel{placement: l.Placement}
		for i := range l.Model.Meshes {
			mesh := &l.Model.Meshes[i]
			m.meshes = append(m.meshes, glMesh{
				va:       gfx.NewMeshArray(mesh),
				diffuse:  s.textures.Get(mesh.Material.DiffuseMap, true),
				specular: s.textures.Get(mesh.Material.SpecularMap, false),
				material: mesh.Material,
			})
		}
		s.models = append(s.models, m)
	}

	s.cardBack = s.textures.Get(scene.CardBackTexture, true)
	s.cardOverlay = s.textures.Get(scene.CardOverlayTexture, true)
	for i, name := range scene.CardFaceTextures {
		s.cardFaces[i] = s.textures.Get(name, true)
	}
	if a.Sky != nil {
		s.skyTex = gfx.UploadCubemap(a.Sky)
	}
	return s
}

// frame is the per-frame input of draw.
type frame struct {
	view, proj mgl32.Mat4
	viewPos    mgl32.Vec3
	lights     *lighting.Set
	game       *game.Game
	time       float32
}

// draw renders models, cards and the skybox into the bound HDR target.
func (s *glScene) draw(f *frame) {
	p := s.programs.Get(gfx.SceneShader)
	p.Use()
	p.SetMat4("view", f.view)
	p.SetMat4("projection", f.proj)
	p.SetVec3("viewPosition", f.viewPos)
	p.SetInt("material.texture_diffuse1", 0)
	p.SetInt("material.texture_specular1", 1)
	for _, m := range s.models {
		pl := m.placement
		setLights(p, pl.Lights(f.lights))
		p.SetFloat("material.shininess", pl.SpecularExponent())
		p.SetMat4("model", pl.Matrix(f.time))
		for i := range m.meshes {
			s.drawMesh(p, &m.meshes[i])
		}
	}

	s.drawCards(f)
	s.drawSkybox(f)
}

func (s *glScene) drawMesh(p *gfx.Program, mesh *glMesh) {
	p.SetBool("material.hasDiffuse", mesh.diffuse != nil)
	p.SetBool("material.hasSpecular", mesh.specular != nil)
	p.SetVec3("material.tint", mesh.material.Diffuse)
	p.SetFloat("material.specularLevel", mesh.material.Specular[0])
	if mesh.diffuse != nil {
		mesh.diffuse.Bind(0)
	}
	if mesh.specular != nil {
		mesh.specular.Bind(1)
	}
	mesh.va.Draw()
}

func (s *glScene) drawCards(f *frame) {
	if s.cardBack == nil {
		return
	}
	p := s.programs.Get(gfx.CardShader)
	p.Use()
	p.SetMat4("view", f.view)
	p.SetMat4("projection", f.proj)
	p.SetInt("back", 0)
	p.SetInt("overlay", 1)
	p.SetInt("face", 2)
	s.cardBack.Bind(0)
	if s.cardOverlay != nil {
		s.cardOverlay.Bind(1)
	} else {
		s.cardBack.Bind(1)
	}

	for i := range f.game.Cards {
		c := &f.game.Cards[i]
		p.SetMat4("model", scene.CardMatrix(c.Position, c.Rotation))

		p.SetBool("side", false)
		s.card.DrawRange(0, scene.CardBackVertices)

		face := s.cardFaces[game.PairOf(i)]
		if face == nil {
			continue
		}
		face.Bind(2)
		p.SetBool("side", true)
		s.card.DrawRange(scene.CardBackVertices, int32(len(scene.CardVertices))-scene.CardBackVertices)
	}
}

func (s *glScene) drawSkybox(f *frame) {
	if s.skyTex == nil {
		return
	}
	gl.DepthFunc(gl.LEQUAL)
	p := s.programs.Get(gfx.SkyboxShader)
	p.Use()
	p.SetInt("skybox", 0)
	p.SetMat4("view", f.view.Mat3().Mat4())
	p.SetMat4("projection", f.proj)
	s.skyTex.Bind(0)
	s.sky.Draw()
	gl.DepthFunc(gl.LESS)
}

func setLights(p *gfx.Program, l *lighting.Set) {
	p.SetVec3("dirLight.direction", l.Dir.Direction)
	p.SetVec3("dirLight.ambient", l.Dir.Ambient)
	p.SetVec3("dirLight.diffuse", l.Dir.Diffuse)
	p.SetVec3("dirLight.specular", l.Dir.Specular)

	setPoint(p, "pointLight", &l.Point)
	setPoint(p, "spotLight", &l.Spot.PointLight)
	p.SetVec3("spotLight.direction", l.Spot.Direction)
	p.SetFloat("spotLight.cutOff", l.Spot.CutOff)
	p.SetFloat("spotLight.outerCutOff", l.Spot.OuterCutOff)
}

func setPoint(p *gfx.Program, name string, pl *lighting.PointLight) {
	p.SetVec3(name+".position", pl.Position)
	p.SetVec3(name+".ambient", pl.Ambient)
	p.SetVec3(name+".diffuse", pl.Diffuse)
	p.SetVec3(name+".specular", pl.Specular)
	p.SetFloat(name+".constant", pl.Constant)
	p.SetFloat(name+".linear", pl.Linear)
	p.SetFloat(name+".quadratic", pl.Quadratic)
}

func (s *glScene) delete() {
	for _, m := range s.models {
		for _, mesh := range m.meshes {
			mesh.va.Delete()
		}
	}
	s.textures.Delete()
	s.card.Delete()
	s.sky.Delete()
	s.skyTex.Delete()
}
