package pattern

import (
	"image/color"
	"math"
	"testing"
)

func TestWavelengthForGuards(t *testing.T) {
	tests := []struct {
		name string
		freq float64
	}{
		{"zero", 0},
		{"negative", -100},
		{"tiny", 0.001},
		{"huge", 1e9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wl := WavelengthFor(tt.freq, 4.0)
			if wl < 4.0 || math.IsNaN(wl) || math.IsInf(wl, 0) {
				t.Errorf("WavelengthFor(%v) = %v, want finite >= 4", tt.freq, wl)
			}
		})
	}
}

func TestWavelengthShrinksWithFrequency(t *testing.T) {
	lo := WavelengthFor(200, 4)
	hi := WavelengthFor(800, 4)
	if hi >= lo {
		t.Errorf("wavelength at 800 Hz (%v) not shorter than at 200 Hz (%v)", hi, lo)
	}
}

func TestSumInterferenceNormalized(t *testing.T) {
	sources := []WaveSource{
		{X: 100, Y: 100, Phase: 0, SpeedMultiplier: 1},
		{X: 300, Y: 150, Phase: 1.2, SpeedMultiplier: 0.8},
		{X: 200, Y: 350, Phase: 2.4, SpeedMultiplier: 1.3},
	}

	for px := 0.0; px < 400; px += 37 {
		for py := 0.0; py < 400; py += 41 {
			v := SumInterference(px, py, sources, 40, 1.5)
			if v < -1 || v > 1 {
				t.Errorf("sum at (%v,%v) = %v outside [-1,1]", px, py, v)
			}
		}
	}
}

func TestSumInterferenceNoSources(t *testing.T) {
	if v := SumInterference(10, 10, nil, 40, 0); v != 0 {
		t.Errorf("empty source sum = %v, want 0", v)
	}
}

func TestInterferenceColorNeverBlack(t *testing.T) {
	// Amplitude 0 must still render a visible deep blue, not black.
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		c := InterferenceColor(v, 0, 1.5)
		if c.B < 0.2 {
			t.Errorf("color at value %v, amp 0 = %+v; blue floor lost", v, c)
		}
	}
}

func TestInterferenceColorRamp(t *testing.T) {
	low := InterferenceColor(-1, 1, 1.5)
	high := InterferenceColor(1, 1, 1.5)

	if low.B <= low.R {
		t.Errorf("trough color %+v not blue-dominant", low)
	}
	// Crest approaches white.
	if high.R < 0.9 || high.G < 0.9 || high.B < 0.9 {
		t.Errorf("crest color %+v not near white", high)
	}
}

func TestRasterizeInterferenceFillsBuffer(t *testing.T) {
	w, h := 64, 48
	pixels := make([]color.RGBA, w*h)
	sources := []WaveSource{
		{X: 20, Y: 20, SpeedMultiplier: 1},
		{X: 50, Y: 30, Phase: 2, SpeedMultiplier: 0.7},
	}

	RasterizeInterference(pixels, w, h, 3, sources, 20, 0, 0.5, 1.5)

	// Every pixel, including the stride remainder at the edges, must be
	// opaque and non-black (scenario: silent audio still shows fringes).
	for i, p := range pixels {
		if p.A != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i, p.A)
		}
		if p.R == 0 && p.G == 0 && p.B == 0 {
			t.Fatalf("pixel %d is pure black", i)
		}
	}
}

func TestRasterizeChladniVignetteDark(t *testing.T) {
	w, h := 64, 64
	pixels := make([]color.RGBA, w*h)
	RasterizeChladni(pixels, w, h, 2, 3.2, 4.1, 0.5, 1.0, DefaultShading(), RGB{R: 0.8, G: 0.7, B: 0.4})

	// Corners are outside the circular vignette and must be black.
	corner := pixels[0]
	if corner.R != 0 || corner.G != 0 || corner.B != 0 {
		t.Errorf("corner pixel = %+v, want black", corner)
	}
	if corner.A != 255 {
		t.Errorf("corner alpha = %d, want opaque", corner.A)
	}

	// The center region must contain lit pixels.
	lit := false
	for y := h/2 - 8; y < h/2+8 && !lit; y++ {
		for x := w/2 - 8; x < w/2+8; x++ {
			p := pixels[y*w+x]
			if p.R > 0 || p.G > 0 || p.B > 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("no lit pixels near center")
	}
}
