package state

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"scene-renderer/internal/camera"
	"scene-renderer/internal/lighting"
)

// ProgramState is the process-wide state shown in the debug overlay. Only
// the clear color, overlay flag and camera pose survive a restart.
type ProgramState struct {
	ClearColor        mgl32.Vec3
	OverlayEnabled    bool
	Camera            camera.Camera
	CameraMouseUpdate bool
	BackpackPosition  mgl32.Vec3
	BackpackScale     float32
	Lights            lighting.Set
}

// New returns the start-up defaults.
func New() *ProgramState {
	return &ProgramState{
		Camera:            camera.New(mgl32.Vec3{0, 0, 3}),
		CameraMouseUpdate: true,
		BackpackScale:     1,
		Lights:            lighting.Default(),
	}
}

// Save writes the ten persisted fields, one per line.
func (s *ProgramState) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("state: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	overlay := 0
	if s.OverlayEnabled {
		overlay = 1
	}
	fields := []string{
		formatFloat(s.ClearColor[0]),
		formatFloat(s.ClearColor[1]),
		formatFloat(s.ClearColor[2]),
		strconv.Itoa(overlay),
		formatFloat(s.Camera.Position[0]),
		formatFloat(s.Camera.Position[1]),
		formatFloat(s.Camera.Position[2]),
		formatFloat(s.Camera.Front[0]),
		formatFloat(s.Camera.Front[1]),
		formatFloat(s.Camera.Front[2]),
	}
	for _, v := range fields {
		fmt.Fprintln(w, v)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("state: write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads the fields written by Save. A missing file leaves s untouched;
// parsing stops at the first malformed field, keeping what was read so far.
func (s *ProgramState) Load(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)

	front := s.Camera.Front
	frontRead := 0
	targets := []func(string) bool{
		floatInto(&s.ClearColor[0]),
		floatInto(&s.ClearColor[1]),
		floatInto(&s.ClearColor[2]),
		func(tok string) bool {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return false
			}
			s.OverlayEnabled = v != 0
			return true
		},
		floatInto(&s.Camera.Position[0]),
		floatInto(&s.Camera.Position[1]),
		floatInto(&s.Camera.Position[2]),
		countInto(floatInto(&front[0]), &frontRead),
		countInto(floatInto(&front[1]), &frontRead),
		countInto(floatInto(&front[2]), &frontRead),
	}
	for _, set := range targets {
		if !sc.Scan() || !set(sc.Text()) {
			break
		}
	}
	if frontRead > 0 {
		s.Camera.SetFront(front)
	}
}

func floatInto(dst *float32) func(string) bool {
	return func(tok string) bool {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return false
		}
		*dst = float32(v)
		return true
	}
}

func countInto(set func(string) bool, n *int) func(string) bool {
	return func(tok string) bool {
		if !set(tok) {
			return false
		}
		*n++
		return true
	}
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
