// Package renderer implements the visual models of the instrument.
// Each renderer maps a frequency, live amplitude and harmonic content
// into one animated pattern per Render call. The computational core
// lives in the pattern package; this package owns the raylib side.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/pattern"
)

// Renderer is the contract the host drives. Render draws exactly one
// frame and advances internal state by the elapsed time between calls;
// Unload is idempotent.
type Renderer interface {
	Name() string
	UpdateFrequency(hz float64)
	SetAmplitude(a float64)
	SetHarmonicRatios(ratios []float64)
	Render(t float64)
	Resize(w, h int)
	Unload()
}

// maxFrameDt caps the per-frame time step so dropped frames never
// destabilize damping or particle integration.
const maxFrameDt = 0.05

// frameDt returns the clamped elapsed time and the new last-timestamp.
func frameDt(t, lastT float64, started bool) (dt, newLast float64) {
	if !started {
		return 0, t
	}
	dt = t - lastT
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	return dt, t
}

// toColor converts a pattern color plus alpha into a raylib color.
func toColor(c pattern.RGB, alpha float64) rl.Color {
	r, g, b := c.Bytes()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return rl.Color{R: r, G: g, B: b, A: uint8(alpha * 255)}
}
