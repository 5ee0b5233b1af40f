package app

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/resonant/audio"
	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

// Panel layout constants.
const (
	panelWidth   = 280
	panelPadding = 14
	sliderHeight = 20
	rowGap       = 35
)

// panelState holds the control panel's widget values. The frequency
// slider works in log space so octaves get equal travel.
type panelState struct {
	visible bool

	logFreq   float32 // log10 of the tuned frequency
	beat      float64
	volume    float64
	synthMode string
}

func newPanelState(cfg *config.Config) panelState {
	return panelState{
		visible:   true,
		logFreq:   float32(math.Log10(cfg.Audio.DefaultFrequency)),
		beat:      cfg.Audio.DefaultBeat,
		volume:    cfg.Audio.Volume,
		synthMode: cfg.Audio.DefaultMode,
	}
}

// syncFrequency updates the slider position after a keyboard or preset
// retune so the panel never fights the key bindings.
func (p *panelState) syncFrequency(hz float64) {
	p.logFreq = float32(math.Log10(hz))
}

// drawPanel renders the control panel and applies any widget changes.
func (h *Host) drawPanel() {
	if !h.panel.visible {
		return
	}

	panelX := float32(h.screenWidth - panelWidth - 10)
	panelY := float32(10)

	rl.DrawRectangle(int32(panelX)-panelPadding/2, int32(panelY)-6,
		panelWidth+panelPadding, 470, rl.Color{R: 10, G: 10, B: 18, A: 215})

	rl.DrawText("Tuning", int32(panelX), int32(panelY), 20, rl.RayWhite)
	panelY += 35

	// Frequency slider (log scale, 20 Hz - 2 kHz)
	freq := h.engine.Frequency()
	rl.DrawText("Frequency", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newLogFreq := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: sliderHeight},
		"20", "2k",
		h.panel.logFreq, float32(math.Log10(20)), float32(math.Log10(2000)),
	)
	rl.DrawText(fmt.Sprintf("%.1f Hz", freq), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
	if newLogFreq != h.panel.logFreq {
		h.panel.logFreq = newLogFreq
		h.SetFrequency(math.Pow(10, float64(newLogFreq)))
	}
	panelY += rowGap

	// Binaural beat slider
	rl.DrawText("Binaural beat", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newBeat := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: sliderHeight},
		"0", "40",
		float32(h.panel.beat), 0, 40,
	)
	rl.DrawText(fmt.Sprintf("%.1f Hz", h.panel.beat), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
	if float64(newBeat) != h.panel.beat {
		h.panel.beat = float64(newBeat)
		h.engine.SetBeat(h.panel.beat)
	}
	panelY += rowGap

	// Volume slider
	rl.DrawText("Volume", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newVolume := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: sliderHeight},
		"0", "1",
		float32(h.panel.volume), 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.2f", h.panel.volume), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
	if float64(newVolume) != h.panel.volume {
		h.panel.volume = float64(newVolume)
		h.engine.SetVolume(h.panel.volume)
	}
	panelY += rowGap

	// Amplitude meter
	rl.DrawText("Amplitude", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	amp := h.engine.Amplitude()
	rl.DrawRectangle(int32(panelX), int32(panelY), panelWidth-80, sliderHeight, rl.Color{R: 30, G: 30, B: 44, A: 255})
	rl.DrawRectangle(int32(panelX), int32(panelY),
		int32(amp*float64(panelWidth-80)), sliderHeight, rl.Color{R: 120, G: 200, B: 160, A: 255})
	panelY += rowGap

	// Synthesis mode buttons
	rl.DrawText("Synthesis", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	panelY = h.drawModeButtons(panelX, panelY)
	panelY += 10

	// Anchor presets
	rl.DrawText("Presets", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	h.drawPresetButtons(panelX, panelY)
}

// drawModeButtons renders one toggle-style button per synthesis mode.
func (h *Host) drawModeButtons(panelX, panelY float32) float32 {
	modes := []string{audio.ModePure, audio.ModeBinaural, audio.ModeHarmonic, audio.ModeNoise}

	const buttonW = (panelWidth - 30) / 2
	for i, mode := range modes {
		x := panelX + float32(i%2)*(buttonW+10)
		y := panelY + float32(i/2)*30

		label := mode
		if mode == h.panel.synthMode {
			label = "> " + mode
		}
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: 26}, label) {
			h.setSynthMode(mode)
		}
	}
	return panelY + 2*30
}

// drawPresetButtons renders one button per solfeggio anchor.
func (h *Host) drawPresetButtons(panelX, panelY float32) {
	anchors := pattern.Anchors()

	const buttonW = (panelWidth - 40) / 3
	for i, a := range anchors {
		x := panelX + float32(i%3)*(buttonW+10)
		y := panelY + float32(i/3)*30

		label := fmt.Sprintf("%.0f", a.FreqHz)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: 26}, label) {
			h.SetFrequency(a.FreqHz)
			h.panel.syncFrequency(a.FreqHz)
		}
	}
}

// drawHUD renders the always-on status line.
func (h *Host) drawHUD() {
	y := int32(h.screenHeight) - 26

	name := "none"
	if r := h.activeRenderer(); r != nil {
		name = r.Name()
	}

	status := fmt.Sprintf("[%s]  %.1f Hz  %s", name, h.engine.Frequency(), h.panel.synthMode)
	if h.chladni != nil && name == "chladni" {
		mode := h.chladni.Mode()
		status += fmt.Sprintf("  n=%.2f m=%.2f", mode.N, mode.M)
	}
	if h.geometry != nil && name == "geometry" {
		status += fmt.Sprintf("  %s (stage %.2f)",
			pattern.BracketName(pattern.Anchors(), h.engine.Frequency()), h.geometry.FormStage())
	}

	rl.DrawText(status, 10, y, 16, rl.Gray)
	rl.DrawText("1/2/3 renderer  TAB panel  F1-F7 presets  M mode  C capture", 10, y-20, 12, rl.DarkGray)
	rl.DrawFPS(int32(h.screenWidth)-90, 10)
}
