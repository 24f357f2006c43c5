// Package postfx sequences the HDR bloom pipeline: capture the scene into a
// two-attachment float target, blur the bright attachment with alternating
// separable Gaussian passes, then tonemap scene plus bloom to the screen.
package postfx

// Defaults for a fresh Settings.
const (
	DefaultExposure   = 1.0
	DefaultBlurPasses = 10
	MinExposure       = 0.05
)

// Settings are the user-adjustable post-processing parameters.
type Settings struct {
	Bloom      bool
	Exposure   float32
	BlurPasses int
}

// Default returns bloom on, exposure 1 and ten blur passes.
func Default() Settings {
	return Settings{Bloom: true, Exposure: DefaultExposure, BlurPasses: DefaultBlurPasses}
}

// AdjustExposure adds delta, never going below MinExposure.
func (s *Settings) AdjustExposure(delta float32) {
	s.Exposure = max(s.Exposure+delta, MinExposure)
}

// Backend performs the GPU (or CPU) work of each stage.
type Backend interface {
	// BeginScene binds the HDR target and clears it.
	BeginScene()
	// EndScene unbinds the HDR target.
	EndScene()
	// Blur runs one Gaussian pass into ping-pong buffer dst. The source is
	// the scene's bright attachment when fromScene is set, otherwise the
	// other ping-pong buffer.
	Blur(dst int, horizontal, fromScene bool)
	// Composite tonemaps the scene plus ping-pong buffer src onto the
	// default target. src is -1 when no bloom is applied.
	Composite(src int, s Settings)
}

// Pipeline runs a frame through a Backend.
type Pipeline struct {
	Backend  Backend
	Settings *Settings
}

// Run draws the scene with drawScene between the capture calls, then blurs
// and composites. It returns the ping-pong buffer used as bloom, or -1.
func (p *Pipeline) Run(drawScene func()) int {
	s := *p.Settings

	p.Backend.BeginScene()
	drawScene()
	p.Backend.EndScene()

	src := -1
	if s.Bloom {
		horizontal := true
		for i := 0; i < s.BlurPasses; i++ {
			dst := 0
			if horizontal {
				dst = 1
			}
			p.Backend.Blur(dst, horizontal, i == 0)
			src = dst
			horizontal = !horizontal
		}
	}
	p.Backend.Composite(src, s)
	return src
}
