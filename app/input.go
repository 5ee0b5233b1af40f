package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/audio"
	"github.com/pthm-cable/resonant/pattern"
)

// handleInput processes keyboard input.
func (h *Host) handleInput() {
	h.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Renderer selection
	if rl.IsKeyPressed(rl.KeyOne) {
		h.switchRenderer(0)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		h.switchRenderer(1)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		h.switchRenderer(2)
	}

	// Control panel toggle
	if rl.IsKeyPressed(rl.KeyTab) {
		h.panel.visible = !h.panel.visible
	}

	// Capture the current tuning
	if rl.IsKeyPressed(rl.KeyC) {
		h.capture(rl.GetTime())
	}

	// Octave jumps
	if rl.IsKeyPressed(rl.KeyUp) {
		h.nudgeFrequency(2)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		h.nudgeFrequency(0.5)
	}

	// Fine tuning, one semitone per press
	if rl.IsKeyPressed(rl.KeyRight) {
		h.nudgeFrequency(math.Pow(2, 1.0/12))
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		h.nudgeFrequency(math.Pow(2, -1.0/12))
	}

	// Synthesis mode cycling
	if rl.IsKeyPressed(rl.KeyM) {
		h.cycleSynthMode()
	}

	// Anchor presets on the F-row
	anchorKeys := []int32{rl.KeyF1, rl.KeyF2, rl.KeyF3, rl.KeyF4, rl.KeyF5, rl.KeyF6, rl.KeyF7}
	for i, key := range anchorKeys {
		if rl.IsKeyPressed(key) {
			h.SetFrequency(anchorByIndex(i).FreqHz)
			h.panel.syncFrequency(h.engine.Frequency())
		}
	}
}

// nudgeFrequency multiplies the tuning by ratio, clamped to the audible
// mapping range.
func (h *Host) nudgeFrequency(ratio float64) {
	hz := h.engine.Frequency() * ratio
	if hz < pattern.MinFrequency {
		hz = pattern.MinFrequency
	}
	if hz > pattern.MaxFrequency {
		hz = pattern.MaxFrequency
	}
	h.SetFrequency(hz)
	h.panel.syncFrequency(hz)
}

// cycleSynthMode steps through the synthesis modes in a fixed order.
func (h *Host) cycleSynthMode() {
	modes := []string{audio.ModePure, audio.ModeBinaural, audio.ModeHarmonic, audio.ModeNoise}
	for i, m := range modes {
		if m == h.panel.synthMode {
			h.setSynthMode(modes[(i+1)%len(modes)])
			return
		}
	}
	h.setSynthMode(audio.ModePure)
}

// setSynthMode applies a synthesis mode and refreshes harmonic content
// on the renderers.
func (h *Host) setSynthMode(mode string) {
	h.engine.SetMode(mode)
	h.panel.synthMode = h.engine.Mode()
	h.pushAudioState()
}

// handleResize checks for window resize and propagates new dimensions.
func (h *Host) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := rl.GetScreenWidth()
	hh := rl.GetScreenHeight()
	if w == h.screenWidth && hh == h.screenHeight {
		return
	}
	h.screenWidth = w
	h.screenHeight = hh

	for _, r := range h.renderers {
		r.Resize(w, hh)
	}
}
