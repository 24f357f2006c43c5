package batch

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Shot is one headless render: a camera pose, a game deal and the cards
// picked before the frame is taken.
type Shot struct {
	Name     string
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Zoom     float32 // degrees, 0 uses the camera default
	Time     float32 // scene clock, drives the rocking chair
	Seed     uint64  // shuffle seed
	Picks    []int   // table slots selected in order, 0-based
	Bloom    *bool   // nil uses the run default
	Exposure float32 // 0 uses the run default
}

// DefaultShots is rendered when no shot file is given.
var DefaultShots = []Shot{
	{Name: "overview", Position: mgl32.Vec3{0, 4, 22}, Front: mgl32.Vec3{0.2, -0.1, -1}, Seed: 1},
	{Name: "table", Position: mgl32.Vec3{2.2, 6.5, 10.5}, Front: mgl32.Vec3{0, -0.8, -0.6}, Seed: 1, Picks: []int{0, 5}},
	{Name: "moon", Position: mgl32.Vec3{0, 2, 5}, Front: mgl32.Vec3{0.2, 0.4, -1}, Seed: 2},
}

type shotFile struct {
	Shot []struct {
		Name     string    `toml:"name"`
		Position []float32 `toml:"position"`
		Front    []float32 `toml:"front"`
		Zoom     float32   `toml:"zoom"`
		Time     float32   `toml:"time"`
		Seed     uint64    `toml:"seed"`
		Picks    []int     `toml:"picks"`
		Bloom    *bool     `toml:"bloom"`
		Exposure float32   `toml:"exposure"`
	} `toml:"shot"`
}

// LoadShots reads [[shot]] tables from a TOML file.
func LoadShots(path string) ([]Shot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var f shotFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}

	shots := make([]Shot, 0, len(f.Shot))
	for i, s := range f.Shot {
		pos, err := vec3(s.Position)
		if err != nil {
			return nil, fmt.Errorf("batch: shot %d position: %w", i, err)
		}
		front, err := vec3(s.Front)
		if err != nil {
			return nil, fmt.Errorf("batch: shot %d front: %w", i, err)
		}
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("shot-%d", i)
		}
		if err := checkName(name); err != nil {
			return nil, fmt.Errorf("batch: shot %d: %w", i, err)
		}
		shots = append(shots, Shot{
			Name: name, Position: pos, Front: front, Zoom: s.Zoom, Time: s.Time,
			Seed: s.Seed, Picks: s.Picks, Bloom: s.Bloom, Exposure: s.Exposure,
		})
	}
	return shots, nil
}

// checkName rejects shot names that would place the image outside the
// output directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid shot name %q", name)
	}
	return nil
}

func vec3(v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}
