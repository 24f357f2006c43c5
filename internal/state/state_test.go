package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesTenLines(t *testing.T) {
	s := New()
	s.ClearColor = mgl32.Vec3{0.1, 0.2, 0.3}
	s.OverlayEnabled = true
	s.Camera.Position = mgl32.Vec3{1, 2, 3}

	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, []string{"0.1", "0.2", "0.3", "1", "1", "2", "3"}, lines[:7])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	s.ClearColor = mgl32.Vec3{0.25, 0.5, 0.75}
	s.OverlayEnabled = true
	s.Camera.Position = mgl32.Vec3{-3, 4.5, 12}
	s.Camera.SetFront(mgl32.Vec3{1, -1, 0})

	path := filepath.Join(t.TempDir(), "state.txt")
	require.NoError(t, s.Save(path))

	got := New()
	got.Load(path)
	assert.Equal(t, s.ClearColor, got.ClearColor)
	assert.True(t, got.OverlayEnabled)
	assert.Equal(t, s.Camera.Position, got.Camera.Position)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, s.Camera.Front[i], got.Camera.Front[i], 1e-5)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	s := New()
	s.Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Equal(t, New().ClearColor, s.ClearColor)
	assert.Equal(t, New().Camera.Position, s.Camera.Position)
}

func TestLoadStopsAtMalformedField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.5\n0.5\n0.5\n1\n7\nbogus\n9\n0\n0\n-1\n"), 0o644))

	s := New()
	s.Load(path)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, s.ClearColor)
	assert.True(t, s.OverlayEnabled)
	assert.Equal(t, float32(7), s.Camera.Position.X())
	assert.Equal(t, float32(0), s.Camera.Position.Y(), "fields after the bad token keep defaults")
	assert.Equal(t, float32(3), s.Camera.Position.Z())
	assert.InDelta(t, -1, s.Camera.Front.Z(), 1e-5, "front is untouched")
}

func TestLoadKeepsPartialFront(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.1 0.2 0.3 1 1 2 3 0.5 bad 0\n"), 0o644))

	s := New()
	before := s.Camera.Front
	s.Load(path)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, s.Camera.Position)

	want := mgl32.Vec3{0.5, before.Y(), before.Z()}.Normalize()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], s.Camera.Front[i], 1e-5)
	}
}
