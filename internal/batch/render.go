package batch

import (
	"image"
	"log/slog"
	"math/rand/v2"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/camera"
	"scene-renderer/internal/game"
	"scene-renderer/internal/lighting"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/raster"
	"scene-renderer/internal/scene"
	"scene-renderer/internal/texture"
)

// Assets are the resources shared by all shots. They are read-only once
// loaded.
type Assets struct {
	Models    []scene.Loaded
	Textures  texture.Resolver
	Sky       *texture.Cubemap
	CardBack  *image.NRGBA
	CardFaces [game.NumPairs]*image.NRGBA
}

// LoadAssets loads models, card textures and the skybox from root. Missing
// pieces are logged and left out of the render.
func LoadAssets(root string, textures texture.Resolver) *Assets {
	a := &Assets{
		Models:   scene.LoadModels(root),
		Textures: textures,
		CardBack: textures.Resolve(scene.CardBackTexture),
	}
	for i, name := range scene.CardFaceTextures {
		a.CardFaces[i] = textures.Resolve(name)
	}
	sky, err := texture.LoadCubemap(filepath.Join(root, scene.SkyboxDir), scene.SkyboxFaces)
	if err != nil {
		slog.Warn("skybox failed to load", "err", err)
	}
	a.Sky = sky
	return a
}

// settleTime is how long the game runs after each pick so flips finish.
// It is shorter than the cooldown so the last pair stays face-up.
const settleTime = 0.5

// dealGame replays the shot's picks on a seeded deal.
func dealGame(shot *Shot) *game.Game {
	g := game.New(rand.New(rand.NewPCG(shot.Seed, shot.Seed^0x9e3779b97f4a7c15)), scene.TableSlots, scene.PileSlots)
	now := 0.0
	const dt = 0.05
	for i, slot := range shot.Picks {
		g.Select(slot, now)
		for end := now + settleTime; now < end; now += dt {
			g.Update(now, dt)
		}
		if i < len(shot.Picks)-1 {
			// let a finished pair resolve before the next pick
			for end := now + 2*game.CooldownSeconds; now < end && g.CoolingDown(); now += dt {
				g.Update(now, dt)
			}
		}
	}
	return g
}

// Options are the per-run render parameters.
type Options struct {
	Post        postfx.Settings
	Width       int
	Height      int
	Supersample int
	ClearColor  mgl32.Vec3
}

// Render draws one shot through the software rasterizer and CPU bloom,
// supersampled when opts.Supersample > 1.
func Render(a *Assets, shot *Shot, opts Options) (*image.NRGBA, *game.Game) {
	post := opts.Post
	ss := max(opts.Supersample, 1)
	w, h := opts.Width*ss, opts.Height*ss

	if shot.Bloom != nil {
		post.Bloom = *shot.Bloom
	}
	if shot.Exposure > 0 {
		post.Exposure = shot.Exposure
	}

	cam := camera.New(shot.Position)
	cam.SetFront(shot.Front)
	if shot.Zoom > 0 {
		cam.Zoom = shot.Zoom
	}
	lights := lighting.Default()

	backend := postfx.NewCPU(w, h)
	backend.ClearColor = opts.ClearColor
	r := raster.NewRenderer(backend.FB, &lights)
	r.View = cam.View()
	r.Proj = cam.Projection(float32(w) / float32(h))
	r.ViewPos = cam.Position

	g := dealGame(shot)
	pipeline := &postfx.Pipeline{Backend: backend, Settings: &post}
	pipeline.Run(func() {
		DrawScene(r, a, g, shot.Time)
	})
	out := backend.Out
	if ss > 1 {
		out = postfx.Downsample(out, opts.Width, opts.Height)
	}
	return out, g
}

// DrawScene rasterizes models, cards and the skybox, in that order.
func DrawScene(r *raster.Renderer, a *Assets, g *game.Game, t float32) {
	for _, l := range a.Models {
		p := l.Placement
		m := p.Matrix(t)
		for i := range l.Model.Meshes {
			mesh := &l.Model.Meshes[i]
			s := raster.SurfaceFor(&mesh.Material, a.Textures)
			s.Shininess = p.SpecularExponent()
			s.Lights = p.Lights(r.Lights)
			r.DrawMesh(mesh, m, s)
		}
	}

	back := scene.CardVertices[:scene.CardBackVertices]
	face := scene.CardVertices[scene.CardBackVertices:]
	for i := range g.Cards {
		c := &g.Cards[i]
		m := scene.CardMatrix(c.Position, c.Rotation)
		r.DrawUnlit(back, m, a.CardBack)
		r.DrawUnlit(face, m, a.CardFaces[game.PairOf(i)])
	}

	r.DrawSkybox(a.Sky)
}
