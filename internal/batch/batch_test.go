package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-renderer/internal/game"
	"scene-renderer/internal/postfx"
	"scene-renderer/internal/texture"
)

func emptyAssets(t *testing.T) *Assets {
	dir := t.TempDir()
	return LoadAssets(dir, texture.NewCache(dir, true))
}

func TestLoadAssetsToleratesMissingResources(t *testing.T) {
	a := emptyAssets(t)
	assert.Empty(t, a.Models)
	assert.Nil(t, a.Sky)
	assert.Nil(t, a.CardBack)
}

func TestDealGameReplaysPicks(t *testing.T) {
	probe := dealGame(&Shot{Seed: 7})
	first := probe.Cards[0].Slot
	second := probe.Cards[1].Slot

	g := dealGame(&Shot{Seed: 7, Picks: []int{first, second}})
	assert.Equal(t, 0, g.Pairs, "last pair is still cooling down")
	assert.True(t, g.CoolingDown())
	assert.Equal(t, float32(game.FaceUp), g.Cards[0].Rotation)

	other := probe.Cards[2].Slot
	g = dealGame(&Shot{Seed: 7, Picks: []int{first, second, other}})
	assert.Equal(t, 1, g.Pairs)
	assert.True(t, g.Cards[2].Used)
}

func TestRenderProducesFrame(t *testing.T) {
	shot := &Shot{Name: "t", Position: mgl32.Vec3{2.2, 6.5, 10.5}, Front: mgl32.Vec3{0, -0.8, -0.6}, Seed: 1}
	opts := Options{Post: postfx.Default(), Width: 32, Height: 24, Supersample: 2}
	img, g := Render(emptyAssets(t), shot, opts)
	require.NotNil(t, g)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())

	// cards are drawn white and unlit somewhere in view
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 128 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

func TestRunWritesImagesAndManifest(t *testing.T) {
	out := t.TempDir()
	shots := []Shot{
		{Name: "a", Position: mgl32.Vec3{0, 4, 22}, Front: mgl32.Vec3{0, 0, -1}, Seed: 1},
		{Name: "b", Position: mgl32.Vec3{0, 4, 22}, Front: mgl32.Vec3{0, 0, -1}, Seed: 2, Picks: []int{0}},
	}
	cfg := Config{
		Assets:    emptyAssets(t),
		OutputDir: out,
		Options:   Options{Post: postfx.Default(), Width: 16, Height: 12, Supersample: 1},
		Workers:   2,
	}
	results := Run(cfg, shots)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success, r.Error)
		assert.FileExists(t, filepath.Join(out, r.Image))
	}

	path := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(path, shots, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "b.webp", entries[1].Image)
	assert.Equal(t, []int{0}, entries[1].Picks)
}

func TestLoadShots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[shot]]
name = "close"
position = [1, 2, 3]
front = [0, 0, -1]
seed = 9
picks = [0, 1]
bloom = false

[[shot]]
position = [0, 0, 0]
front = [1, 0, 0]
`), 0o644))

	shots, err := LoadShots(path)
	require.NoError(t, err)
	require.Len(t, shots, 2)
	assert.Equal(t, "close", shots[0].Name)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, shots[0].Position)
	assert.Equal(t, []int{0, 1}, shots[0].Picks)
	require.NotNil(t, shots[0].Bloom)
	assert.False(t, *shots[0].Bloom)
	assert.Equal(t, "shot-1", shots[1].Name)
}

func TestLoadShotsRejectsShortVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[shot]]\nposition = [1, 2]\nfront = [0, 0, -1]\n"), 0o644))
	_, err := LoadShots(path)
	assert.Error(t, err)
}

func TestLoadShotsRejectsPathNames(t *testing.T) {
	for _, name := range []string{"../x", "a/b", `a\b`, ".."} {
		path := filepath.Join(t.TempDir(), "shots.toml")
		body := "[[shot]]\nname = '" + name + "'\nposition = [0, 0, 0]\nfront = [0, 0, -1]\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := LoadShots(path)
		assert.Error(t, err, name)
	}
}

func TestRunKeepsImagesInsideOutputDir(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	cfg := Config{
		Assets:    emptyAssets(t),
		OutputDir: out,
		Options:   Options{Post: postfx.Default(), Width: 8, Height: 6, Supersample: 1},
		Workers:   1,
	}
	results := Run(cfg, []Shot{{Name: "../escape", Front: mgl32.Vec3{0, 0, -1}}})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "invalid shot name")
	assert.NoFileExists(t, filepath.Join(root, "escape.webp"))
}
