// Package app wires the audio engine, the renderers and the control
// surface into one instrument loop.
package app

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/audio"
	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
	"github.com/pthm-cable/resonant/renderer"
	"github.com/pthm-cable/resonant/telemetry"
)

// headlessDt is the fixed step used when no display clock exists.
const headlessDt = 1.0 / 60.0

// Options configures instrument creation.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	Mute           bool
}

// Host owns the full instrument state and drives one renderer at a time.
type Host struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	engine *audio.Engine

	renderers []renderer.Renderer
	active    int

	// Concrete handles for telemetry state that the Renderer interface
	// does not expose.
	chladni  *renderer.ChladniRenderer
	geometry *renderer.SacredGeometryRenderer

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	panel panelState

	screenWidth  int
	screenHeight int

	frames       int
	headlessTime float64
}

// NewHost builds the instrument. In graphical mode the window must
// already exist; in headless mode no raylib call is made and the audio
// engine is pumped manually.
func NewHost(cfg *config.Config, opts Options) (*Host, error) {
	h := &Host{
		cfg:           cfg,
		opts:          opts,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		engine:        audio.NewEngine(&cfg.Audio),
		collector:     telemetry.NewCollector(opts.StatsWindowSec),
		perfCollector: telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		screenWidth:   cfg.Screen.Width,
		screenHeight:  cfg.Screen.Height,
		panel:         newPanelState(cfg),
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	h.outputManager = om
	if err := h.outputManager.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	if !opts.Mute && !opts.Headless {
		if err := h.engine.Start(cfg.Audio.BufferMs); err != nil {
			// The visual instrument still works without a sound device.
			slog.Warn("audio device unavailable, running silent", "error", err)
		}
	}

	if !opts.Headless {
		if err := h.buildRenderers(); err != nil {
			h.Unload()
			return nil, err
		}
	}

	slog.Info("instrument ready",
		"seed", opts.Seed,
		"frequency", cfg.Audio.DefaultFrequency,
		"mode", cfg.Audio.DefaultMode,
		"headless", opts.Headless,
	)

	return h, nil
}

func (h *Host) buildRenderers() error {
	chl, err := renderer.NewChladniRenderer(h.cfg, h.rng.Int63())
	if err != nil {
		return fmt.Errorf("creating chladni renderer: %w", err)
	}
	wave, err := renderer.NewWaveInterferenceRenderer(h.cfg, h.rng.Int63())
	if err != nil {
		chl.Unload()
		return fmt.Errorf("creating interference renderer: %w", err)
	}
	geo, err := renderer.NewSacredGeometryRenderer(h.cfg, h.rng.Int63())
	if err != nil {
		chl.Unload()
		wave.Unload()
		return fmt.Errorf("creating geometry renderer: %w", err)
	}

	h.chladni = chl
	h.geometry = geo
	h.renderers = []renderer.Renderer{chl, wave, geo}
	h.active = 0
	h.pushAudioState()
	return nil
}

// activeRenderer returns the currently selected renderer, or nil in
// headless mode.
func (h *Host) activeRenderer() renderer.Renderer {
	if len(h.renderers) == 0 {
		return nil
	}
	return h.renderers[h.active]
}

// switchRenderer selects renderer idx and primes it with the current
// audio state.
func (h *Host) switchRenderer(idx int) {
	if idx < 0 || idx >= len(h.renderers) || idx == h.active {
		return
	}
	h.active = idx
	h.pushAudioState()
	slog.Info("renderer switched", "renderer", h.renderers[idx].Name())
}

// pushAudioState propagates frequency and harmonic content to every
// renderer so a later switch starts from coherent state.
func (h *Host) pushAudioState() {
	freq := h.engine.Frequency()
	ratios := h.engine.HarmonicRatios()
	for _, r := range h.renderers {
		r.UpdateFrequency(freq)
		r.SetHarmonicRatios(ratios)
	}
}

// SetFrequency retunes the engine and every renderer.
func (h *Host) SetFrequency(hz float64) {
	h.engine.SetFrequency(hz)
	h.pushAudioState()
}

// Update runs one frame of input, audio plumbing and telemetry.
// Drawing happens in Draw.
func (h *Host) Update() {
	h.perfCollector.StartFrame()

	h.perfCollector.StartPhase(telemetry.PhaseUI)
	h.handleInput()

	h.perfCollector.StartPhase(telemetry.PhaseAudio)
	h.advanceAudio(float64(rl.GetFrameTime()))
}

// advanceAudio pumps the engine and pushes the loudness estimate to the
// active renderer. Pump is a no-op while a sound device is streaming,
// so muted or silent-fallback sessions keep a live amplitude envelope
// through the same path.
func (h *Host) advanceAudio(dt float64) float64 {
	h.engine.Pump(dt)
	amp := h.engine.Amplitude()
	if r := h.activeRenderer(); r != nil {
		r.SetAmplitude(amp)
	}
	return amp
}

// Draw renders one frame and closes out the frame's telemetry.
func (h *Host) Draw() {
	t := rl.GetTime()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 6, G: 6, B: 12, A: 255})

	h.perfCollector.StartPhase(telemetry.PhaseDraw)
	if r := h.activeRenderer(); r != nil {
		r.Render(t)
	}

	h.perfCollector.StartPhase(telemetry.PhaseUI)
	h.drawPanel()
	h.drawHUD()

	rl.EndDrawing()

	h.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	h.perfCollector.EndFrame()
	h.recordFrame(t, rl.GetFrameTime())
	h.frames++
}

// UpdateHeadless advances the instrument one fixed step without a
// display: the audio engine is pumped so the amplitude envelope and
// telemetry stay live.
func (h *Host) UpdateHeadless() {
	h.perfCollector.StartFrame()

	h.perfCollector.StartPhase(telemetry.PhaseAudio)
	h.advanceAudio(headlessDt)

	h.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	h.perfCollector.EndFrame()

	h.headlessTime += headlessDt
	h.recordFrame(h.headlessTime, float32(headlessDt))
	h.frames++
}

// Frames returns the number of frames processed so far.
func (h *Host) Frames() int { return h.frames }

// recordFrame feeds the telemetry collector and flushes a window when due.
func (h *Host) recordFrame(t float64, frameDt float32) {
	sample := telemetry.FrameSample{
		Time:      t,
		FrameMs:   float64(frameDt) * 1000,
		Amplitude: h.engine.Amplitude(),
		Renderer:  "none",
		Frequency: h.engine.Frequency(),
	}
	if r := h.activeRenderer(); r != nil {
		sample.Renderer = r.Name()
	}
	if h.chladni != nil {
		mode := h.chladni.Mode()
		sample.ModeN = mode.N
		sample.ModeM = mode.M
		sample.Retargets = h.chladni.TakeRetargets()
	}
	if h.geometry != nil {
		sample.FormStage = h.geometry.FormStage()
	}

	stats, done := h.collector.Record(sample)
	if !done {
		return
	}

	perfStats := h.perfCollector.Stats()

	if h.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if h.outputManager != nil {
		if err := h.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := h.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// capture snapshots the current tuning to captures.csv.
func (h *Host) capture(t float64) {
	c := telemetry.Capture{
		Time:      t,
		Renderer:  "none",
		Frequency: h.engine.Frequency(),
		Beat:      h.panel.beat,
		Mode:      h.panel.synthMode,
		Volume:    h.panel.volume,
		Amplitude: h.engine.Amplitude(),
	}
	if r := h.activeRenderer(); r != nil {
		c.Renderer = r.Name()
	}
	if h.chladni != nil {
		mode := h.chladni.Mode()
		c.ModeN = mode.N
		c.ModeM = mode.M
	}
	if h.geometry != nil {
		c.FormStage = h.geometry.FormStage()
	}

	c.LogCapture()
	if h.outputManager != nil {
		if err := h.outputManager.WriteCapture(c); err != nil {
			slog.Error("failed to write capture", "error", err)
		}
	}
}

// Unload releases every owned resource. Idempotent.
func (h *Host) Unload() {
	for _, r := range h.renderers {
		r.Unload()
	}
	h.renderers = nil

	if h.engine != nil {
		h.engine.Close()
	}
	if h.outputManager != nil {
		if err := h.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		h.outputManager = nil
	}
}

// anchorByIndex returns the i-th solfeggio anchor, clamped.
func anchorByIndex(i int) pattern.Anchor {
	anchors := pattern.Anchors()
	if i < 0 {
		i = 0
	}
	if i >= len(anchors) {
		i = len(anchors) - 1
	}
	return anchors[i]
}
