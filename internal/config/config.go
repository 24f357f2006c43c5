package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	ResourceDir string `toml:"resource_dir"`
	StateFile   string `toml:"state_file"`
	ShaderDir   string `toml:"shader_dir"` // empty uses the embedded shaders

	Window   Window   `toml:"window"`
	Post     Post     `toml:"post"`
	Snapshot Snapshot `toml:"snapshot"`
}

// Window configures the interactive viewer.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  *bool  `toml:"vsync"`
}

// Post holds the start-up post-processing settings.
type Post struct {
	Bloom      *bool   `toml:"bloom"`
	Exposure   float32 `toml:"exposure"`
	BlurPasses int     `toml:"blur_passes"`
}

// Snapshot configures headless renders.
type Snapshot struct {
	OutputDir   string `toml:"output_dir"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Supersample int    `toml:"supersample"`
	Workers     int    `toml:"workers"`
}

// Load reads a TOML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvResources = "SCENE_RESOURCES"
	EnvStateFile = "SCENE_STATE_FILE"
	EnvWidth     = "SCENE_WIDTH"
	EnvHeight    = "SCENE_HEIGHT"
)

// EnvLookup returns a lookup over the dotenv file at path, falling back to
// the process environment. A missing file is not an error.
func EnvLookup(path string) (func(string) (string, bool), error) {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := file[key]; ok {
			return v, true
		}
		return os.LookupEnv(key)
	}, nil
}

// ApplyEnv overrides file values with SCENE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvResources); ok && v != "" {
		c.ResourceDir = v
	}
	if v, ok := lookup(EnvStateFile); ok && v != "" {
		c.StateFile = v
	}
	for key, dst := range map[string]*int{EnvWidth: &c.Window.Width, EnvHeight: &c.Window.Height} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ResourceDir string
	StateFile   string
	ShaderDir   string
	OutputDir   string
	Width       int
	Height      int
	Workers     int
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.ResourceDir != "" {
		c.ResourceDir = flags.ResourceDir
	}
	if flags.StateFile != "" {
		c.StateFile = flags.StateFile
	}
	if flags.ShaderDir != "" {
		c.ShaderDir = flags.ShaderDir
	}
	if flags.OutputDir != "" {
		c.Snapshot.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Window.Width = flags.Width
		c.Snapshot.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Window.Height = flags.Height
		c.Snapshot.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Snapshot.Workers = flags.Workers
	}

	if c.ResourceDir == "" {
		c.ResourceDir = detectResourceDir()
	}
	if c.ResourceDir != "" {
		// material map paths already contain the root; keep it absolute so
		// the texture cache does not join it twice
		if abs, err := filepath.Abs(c.ResourceDir); err == nil {
			c.ResourceDir = abs
		}
		if c.StateFile == "" {
			c.StateFile = filepath.Join(c.ResourceDir, "program_state.txt")
		} else if !filepath.IsAbs(c.StateFile) {
			c.StateFile = filepath.Join(c.ResourceDir, c.StateFile)
		}
		if c.Snapshot.OutputDir == "" {
			c.Snapshot.OutputDir = filepath.Join(c.ResourceDir, "snapshots")
		}
	}

	// Window defaults
	if c.Window.Width <= 0 {
		c.Window.Width = 800
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 600
	}
	if c.Window.Title == "" {
		c.Window.Title = "scene"
	}
	if c.Window.VSync == nil {
		c.Window.VSync = ptr(true)
	}

	// Post-processing defaults
	if c.Post.Bloom == nil {
		c.Post.Bloom = ptr(true)
	}
	if c.Post.Exposure <= 0 {
		c.Post.Exposure = 1.0
	}
	if c.Post.BlurPasses <= 0 {
		c.Post.BlurPasses = 10
	}

	// Snapshot defaults
	if c.Snapshot.Width <= 0 {
		c.Snapshot.Width = c.Window.Width
	}
	if c.Snapshot.Height <= 0 {
		c.Snapshot.Height = c.Window.Height
	}
	if c.Snapshot.Supersample <= 0 {
		c.Snapshot.Supersample = 1
	}
	if c.Snapshot.Workers <= 0 {
		c.Snapshot.Workers = runtime.NumCPU()
	}
}

func ptr[T any](v T) *T { return &v }

// detectResourceDir looks for a resources/ directory next to the
// executable, then in the working directory and its parent.
func detectResourceDir() string {
	var bases []string
	if exe, _ := os.Executable(); exe != "" {
		dir := filepath.Dir(exe)
		bases = append(bases, dir, filepath.Dir(dir))
	}
	if cwd, err := os.Getwd(); err == nil {
		bases = append(bases, cwd, filepath.Dir(cwd))
	}
	for _, base := range bases {
		dir := filepath.Join(base, "resources")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
