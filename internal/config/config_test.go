package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
resource_dir = "/data/res"
state_file = "state.txt"

[window]
width = 1280
title = "night"

[post]
bloom = false
exposure = 0.5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/res", cfg.ResourceDir)
	assert.Equal(t, 1280, cfg.Window.Width)
	require.NotNil(t, cfg.Post.Bloom)
	assert.False(t, *cfg.Post.Bloom)

	cfg.Resolve(Flags{})
	assert.Equal(t, filepath.Join("/data/res", "state.txt"), cfg.StateFile)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.False(t, *cfg.Post.Bloom, "explicit false survives defaults")
	assert.Equal(t, float32(0.5), cfg.Post.Exposure)
	assert.Equal(t, 10, cfg.Post.BlurPasses)
	assert.Equal(t, 1280, cfg.Snapshot.Width)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("window = [\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	cfg := Config{ResourceDir: "/res"}
	cfg.Resolve(Flags{})
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.True(t, *cfg.Window.VSync)
	assert.True(t, *cfg.Post.Bloom)
	assert.Equal(t, float32(1), cfg.Post.Exposure)
	assert.Equal(t, filepath.Join("/res", "program_state.txt"), cfg.StateFile)
	assert.Equal(t, filepath.Join("/res", "snapshots"), cfg.Snapshot.OutputDir)
	assert.Equal(t, 1, cfg.Snapshot.Supersample)
	assert.Greater(t, cfg.Snapshot.Workers, 0)
}

func TestFlagsOverride(t *testing.T) {
	cfg := Config{ResourceDir: "/res", Window: Window{Width: 1024}}
	cfg.Resolve(Flags{ResourceDir: "/other", Width: 320, Height: 240, Workers: 3, OutputDir: "/out"})
	assert.Equal(t, "/other", cfg.ResourceDir)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Snapshot.Height)
	assert.Equal(t, 3, cfg.Snapshot.Workers)
	assert.Equal(t, "/out", cfg.Snapshot.OutputDir)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCENE_RESOURCES=/env/res\nSCENE_WIDTH=640\n"), 0o644))

	lookup, err := EnvLookup(path)
	require.NoError(t, err)

	cfg := Config{ResourceDir: "/file/res"}
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "/env/res", cfg.ResourceDir)
	assert.Equal(t, 640, cfg.Window.Width)
}

func TestEnvMissingFileAndBadNumber(t *testing.T) {
	lookup, err := EnvLookup(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	require.NotNil(t, lookup)

	cfg := Config{}
	err = cfg.ApplyEnv(func(key string) (string, bool) {
		if key == EnvHeight {
			return "tall", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestResolveMakesResourceDirAbsolute(t *testing.T) {
	cfg := Config{ResourceDir: "resources"}
	cfg.Resolve(Flags{})
	assert.True(t, filepath.IsAbs(cfg.ResourceDir))
	assert.Equal(t, "resources", filepath.Base(cfg.ResourceDir))
	assert.Equal(t, filepath.Join(cfg.ResourceDir, "program_state.txt"), cfg.StateFile)
}
