package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

// WaveInterferenceRenderer sums the sinusoidal fields of a few moving
// point sources into a color-mapped fringe pattern. Evaluation is
// block-subsampled on the CPU and streamed to a texture.
type WaveInterferenceRenderer struct {
	cfg config.InterferenceConfig

	sources []pattern.WaveSource
	anchors []rl.Vector2 // home positions the sources wander around
	noise   opensimplex.Noise

	freq      float64
	amplitude float64

	width, height int
	tex           *streamTexture
}

// NewWaveInterferenceRenderer builds the renderer. The source set is
// created once; resize repositions sources instead of recreating them.
func NewWaveInterferenceRenderer(cfg *config.Config, seed int64) (*WaveInterferenceRenderer, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("interference renderer: no window surface available")
	}

	w := cfg.Screen.Width
	h := cfg.Screen.Height

	r := &WaveInterferenceRenderer{
		cfg:     cfg.Interference,
		noise:   opensimplex.New(seed),
		freq:    cfg.Audio.DefaultFrequency,
		width:   w,
		height:  h,
		tex:     newStreamTexture(w, h),
		sources: make([]pattern.WaveSource, cfg.Interference.SourceCount),
		anchors: make([]rl.Vector2, cfg.Interference.SourceCount),
	}

	r.placeSources()
	return r, nil
}

// placeSources arranges the home positions in a ring around the center
// and seeds each source's phase and speed.
func (r *WaveInterferenceRenderer) placeSources() {
	n := len(r.sources)
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2
	radius := math.Min(cx, cy) * 0.45

	for i := range r.sources {
		angle := 2 * math.Pi * float64(i) / float64(n)
		r.anchors[i] = rl.Vector2{
			X: float32(cx + math.Cos(angle)*radius),
			Y: float32(cy + math.Sin(angle)*radius),
		}
		r.sources[i].X = float64(r.anchors[i].X)
		r.sources[i].Y = float64(r.anchors[i].Y)
		r.sources[i].Phase = 2 * math.Pi * float64(i) / float64(n)
		r.sources[i].SpeedMultiplier = 0.7 + 0.3*float64(i)
	}
}

// Name identifies the renderer in logs and telemetry.
func (r *WaveInterferenceRenderer) Name() string { return "interference" }

// UpdateFrequency changes the wavelength of all sources.
func (r *WaveInterferenceRenderer) UpdateFrequency(hz float64) {
	r.freq = hz
}

// SetAmplitude feeds the live loudness estimate.
func (r *WaveInterferenceRenderer) SetAmplitude(a float64) {
	r.amplitude = a
}

// SetHarmonicRatios is accepted for interface symmetry.
func (r *WaveInterferenceRenderer) SetHarmonicRatios(ratios []float64) {}

// Render wanders the sources, rasterizes the summed field and draws the
// pulsing source glows on top.
func (r *WaveInterferenceRenderer) Render(t float64) {
	wanderRange := math.Min(float64(r.width), float64(r.height)) * r.cfg.WanderScale
	for i := range r.sources {
		// Two decorrelated noise channels per source.
		nx := r.noise.Eval2(t*r.cfg.WanderSpeed, float64(i)*7.31)
		ny := r.noise.Eval2(t*r.cfg.WanderSpeed, float64(i)*7.31+101.7)
		r.sources[i].X = float64(r.anchors[i].X) + nx*wanderRange
		r.sources[i].Y = float64(r.anchors[i].Y) + ny*wanderRange
	}

	wavelength := pattern.WavelengthFor(r.freq, r.cfg.MinWavelength)
	pattern.RasterizeInterference(r.tex.Pixels, r.width, r.height, r.cfg.RasterStride,
		r.sources, wavelength, r.amplitude, t, r.cfg.ContrastExponent)
	r.tex.Draw()

	r.drawSourceGlows(t)
}

func (r *WaveInterferenceRenderer) drawSourceGlows(t float64) {
	for i := range r.sources {
		s := &r.sources[i]
		pulse := 0.5 + 0.5*math.Sin(t*3.0+s.Phase)
		radius := 4.0 + 6.0*pulse*r.amplitude

		core := rl.Color{R: 220, G: 245, B: 255, A: 230}
		halo := rl.Color{R: 120, G: 200, B: 255, A: uint8(60 + 80*r.amplitude)}

		rl.DrawCircle(int32(s.X), int32(s.Y), float32(radius*2), halo)
		rl.DrawCircle(int32(s.X), int32(s.Y), float32(radius), core)
	}
}

// Resize repositions the sources for the new surface.
func (r *WaveInterferenceRenderer) Resize(w, h int) {
	r.width = w
	r.height = h
	r.tex.Resize(w, h)
	r.placeSources()
}

// Unload releases the streaming texture. Idempotent.
func (r *WaveInterferenceRenderer) Unload() {
	r.tex.Unload()
}
