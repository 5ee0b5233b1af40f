// Package audio implements the synthesis collaborator: a process-wide
// engine producing the instrument's tones and a smoothed amplitude
// estimate for the visual layer. Renderers receive the engine, they
// never own it.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/resonant/config"
)

// Engine owns the voice streamer and the amplitude tap. With a speaker
// it plays live; without one (headless, muted) the host pumps it
// manually so the amplitude envelope still moves.
type Engine struct {
	sr   beep.SampleRate
	tone *toneSource
	tap  *amplitudeTap

	mu        sync.Mutex
	freq      float64
	beat      float64
	mode      string
	volume    float64
	speakerOn bool

	// Scratch buffer for pumped (speakerless) operation.
	pumpBuf [][2]float64
}

// NewEngine builds the engine from config. It does not open the
// speaker; call Start for live playback or Pump per frame without it.
func NewEngine(cfg *config.AudioConfig) *Engine {
	sr := beep.SampleRate(cfg.SampleRate)
	windowSamples := sr.N(time.Duration(cfg.AmplitudeWindowMs) * time.Millisecond)

	tone := newToneSource(sr, cfg.DefaultFrequency, cfg.DefaultBeat, cfg.Volume, cfg.DefaultMode)
	tap := newAmplitudeTap(tone, windowSamples, cfg.AmplitudeSpringFreq, cfg.AmplitudeSpringDamping, cfg.SampleRate)

	return &Engine{
		sr:      sr,
		tone:    tone,
		tap:     tap,
		freq:    cfg.DefaultFrequency,
		beat:    cfg.DefaultBeat,
		mode:    cfg.DefaultMode,
		volume:  cfg.Volume,
		pumpBuf: make([][2]float64, 512),
	}
}

// Start opens the speaker and begins live playback.
func (e *Engine) Start(bufferMs int) error {
	buf := e.sr.N(time.Duration(bufferMs) * time.Millisecond)
	if err := speaker.Init(e.sr, buf); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(e.tap)

	e.mu.Lock()
	e.speakerOn = true
	e.mu.Unlock()

	slog.Info("audio engine started",
		"sample_rate", int(e.sr),
		"mode", e.mode,
		"frequency", e.freq,
	)
	return nil
}

// Close stops playback. Safe to call when Start was never called.
func (e *Engine) Close() {
	e.mu.Lock()
	on := e.speakerOn
	e.speakerOn = false
	e.mu.Unlock()

	if on {
		speaker.Close()
	}
}

// Pump advances the synthesis by dt without a speaker, keeping the
// amplitude envelope live in muted or headless runs.
func (e *Engine) Pump(dt float64) {
	e.mu.Lock()
	on := e.speakerOn
	e.mu.Unlock()
	if on {
		return // the speaker goroutine is already pulling samples
	}

	remaining := e.sr.N(time.Duration(dt * float64(time.Second)))
	for remaining > 0 {
		chunk := remaining
		if chunk > len(e.pumpBuf) {
			chunk = len(e.pumpBuf)
		}
		e.tap.Stream(e.pumpBuf[:chunk])
		remaining -= chunk
	}
}

// SetFrequency retunes the fundamental. Values are clamped downstream;
// the engine accepts anything finite.
func (e *Engine) SetFrequency(hz float64) {
	e.mu.Lock()
	e.freq = hz
	e.mu.Unlock()
	e.tone.SetFrequency(hz)
}

// Frequency returns the current fundamental in Hz.
func (e *Engine) Frequency() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.freq
}

// SetBeat sets the binaural beat offset in Hz.
func (e *Engine) SetBeat(hz float64) {
	e.mu.Lock()
	e.beat = hz
	e.mu.Unlock()
	e.tone.SetBeat(hz)
}

// SetMode switches the voice: pure, binaural, harmonic or noise.
func (e *Engine) SetMode(mode string) {
	switch mode {
	case ModePure, ModeBinaural, ModeHarmonic, ModeNoise:
	default:
		slog.Warn("unknown synthesis mode, keeping current", "mode", mode)
		return
	}
	e.mu.Lock()
	e.mode = mode
	e.mu.Unlock()
	e.tone.SetMode(mode)
}

// Mode returns the active synthesis mode.
func (e *Engine) Mode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetVolume sets master gain in [0,1].
func (e *Engine) SetVolume(v float64) {
	v = clampUnit(v)
	e.mu.Lock()
	e.volume = v
	e.mu.Unlock()
	e.tone.SetGain(v)
}

// Volume returns the master gain.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// Amplitude returns the smoothed short-window RMS loudness in [0,1].
func (e *Engine) Amplitude() float64 {
	return e.tap.Amplitude()
}

// HarmonicRatios reports the active partial ratios relative to the
// fundamental. Empty for the noise texture.
func (e *Engine) HarmonicRatios() []float64 {
	switch e.Mode() {
	case ModeHarmonic:
		out := make([]float64, len(harmonicRatios))
		copy(out, harmonicRatios)
		return out
	case ModePure, ModeBinaural:
		return []float64{1}
	default:
		return nil
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
