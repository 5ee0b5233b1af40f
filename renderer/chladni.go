package renderer

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

// ChladniRenderer draws standing-wave nodal patterns: a field layer
// (GPU fragment pass, or a coarser software raster when no shader is
// available) under a pool of particles that settle onto the nodal
// lines.
type ChladniRenderer struct {
	cfg     config.ChladniConfig
	shading pattern.ChladniShading

	mapper  pattern.ModeMapper
	current pattern.ModeState
	target  pattern.ModeState

	particles    *pattern.ParticleField
	lastRetarget pattern.ModeState
	retargets    int

	freq      float64
	amplitude float64

	lastT   float64
	started bool

	width, height int

	gpu  *fieldShader   // nil on the software path
	soft *streamTexture // nil on the GPU path
}

// NewChladniRenderer builds the renderer for the current window.
// Fails fast when no drawing surface exists; a missing GPU shader is a
// supported degraded mode, not an error.
func NewChladniRenderer(cfg *config.Config, seed int64) (*ChladniRenderer, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("chladni renderer: no window surface available")
	}

	w := cfg.Screen.Width
	h := cfg.Screen.Height

	mapper := pattern.ModeMapper{
		ReferenceHz:   cfg.Chladni.ReferenceFrequency,
		BaseN:         cfg.Chladni.BaseN,
		BaseM:         cfg.Chladni.BaseM,
		Asymmetry:     cfg.Chladni.Asymmetry,
		ModeMin:       cfg.Chladni.ModeMin,
		ModeMax:       cfg.Chladni.ModeMax,
		SnapThreshold: cfg.Chladni.SnapThreshold,
		SnapStrength:  cfg.Chladni.SnapStrength,
	}

	params := pattern.ParticleParams{
		Count:              cfg.Particles.Count,
		SamplesPerRetarget: cfg.Particles.SamplesPerRetarget,
		TargetTolerance:    cfg.Particles.TargetTolerance,
		SteerForce:         cfg.Particles.SteerForce,
		MaxSpeed:           cfg.Particles.MaxSpeed,
		Damping:            cfg.Particles.Damping,
		Jitter:             cfg.Particles.Jitter,
		WrapMargin:         cfg.Particles.WrapMargin,
	}

	r := &ChladniRenderer{
		cfg: cfg.Chladni,
		shading: pattern.ChladniShading{
			LineThickness: cfg.Chladni.LineThickness,
			VignetteInner: cfg.Chladni.VignetteInner,
			VignetteOuter: cfg.Chladni.VignetteOuter,
			AmbientWobble: cfg.Chladni.AmbientWobble,
		},
		mapper:    mapper,
		particles: pattern.NewParticleField(params, float64(w), float64(h), seed),
		freq:      cfg.Audio.DefaultFrequency,
		width:     w,
		height:    h,
	}

	r.target = mapper.Map(r.freq)
	r.current = r.target
	r.lastRetarget = r.target
	r.particles.Retarget(r.current.N, r.current.M)

	if cfg.GPU.Enabled {
		gpu, err := newFieldShader(&cfg.Chladni, w, h)
		if err != nil {
			slog.Warn("gpu field pass unavailable, using software raster", "error", err)
		} else {
			r.gpu = gpu
		}
	}
	if r.gpu == nil {
		r.soft = newStreamTexture(w, h)
	}

	return r, nil
}

// Name identifies the renderer in logs and telemetry.
func (r *ChladniRenderer) Name() string { return "chladni" }

// UpdateFrequency retargets the mode numbers; the visible state damps
// toward them over the following frames.
func (r *ChladniRenderer) UpdateFrequency(hz float64) {
	r.freq = hz
	r.target = r.mapper.Map(hz)
}

// SetAmplitude feeds the live loudness estimate.
func (r *ChladniRenderer) SetAmplitude(a float64) {
	r.amplitude = a
}

// SetHarmonicRatios is accepted for interface symmetry; the nodal field
// depends only on the fundamental.
func (r *ChladniRenderer) SetHarmonicRatios(ratios []float64) {}

// Render advances the damped mode state and draws one frame: the field
// layer first, then the particle overlay. State commits only after the
// frame's drawing is submitted, so a panicking draw never leaves
// half-updated mode numbers behind.
func (r *ChladniRenderer) Render(t float64) {
	var dt float64
	dt, r.lastT = frameDt(t, r.lastT, r.started)
	r.started = true

	next := pattern.AdvanceMode(r.current, r.target, r.cfg.ApproachRate, dt)
	col := pattern.ChladniColor(next.N, next.M)

	if r.gpu != nil {
		r.gpu.Draw(next, r.amplitude, t, col)
	} else {
		pattern.RasterizeChladni(r.soft.Pixels, r.width, r.height, r.cfg.RasterStride,
			next.N, next.M, r.amplitude, t, r.shading, col)
		r.soft.Draw()
	}

	// Re-sampling every particle each frame is wasteful once the field
	// is stable; only retarget after a meaningful mode change.
	if next.Delta(r.lastRetarget) > r.cfg.RetargetDelta {
		r.particles.Retarget(next.N, next.M)
		r.lastRetarget = next
		r.retargets++
	}

	r.particles.Advance(dt, r.amplitude, t)
	r.drawParticles(col)

	r.current = next
}

// Mode returns the currently displayed mode numbers.
func (r *ChladniRenderer) Mode() pattern.ModeState { return r.current }

// TakeRetargets returns the particle retargets since the last call and
// resets the counter. Used by the telemetry window.
func (r *ChladniRenderer) TakeRetargets() int {
	n := r.retargets
	r.retargets = 0
	return n
}

func (r *ChladniRenderer) drawParticles(col pattern.RGB) {
	r.particles.ForEach(func(x, y, size, brightness float64) {
		c := toColor(pattern.RGB{
			R: 0.75 + 0.25*col.R,
			G: 0.75 + 0.25*col.G,
			B: 0.75 + 0.25*col.B,
		}, brightness)
		rl.DrawCircle(int32(x), int32(y), float32(size), c)
	})
}

// Resize propagates the new surface size to every layer.
func (r *ChladniRenderer) Resize(w, h int) {
	r.width = w
	r.height = h
	r.particles.Resize(float64(w), float64(h))
	r.particles.Retarget(r.current.N, r.current.M)
	if r.gpu != nil {
		r.gpu.Resize(w, h)
	}
	if r.soft != nil {
		r.soft.Resize(w, h)
	}
}

// Unload releases GPU resources. Idempotent.
func (r *ChladniRenderer) Unload() {
	if r.gpu != nil {
		r.gpu.Unload()
	}
	if r.soft != nil {
		r.soft.Unload()
	}
}
