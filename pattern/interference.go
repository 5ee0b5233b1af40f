package pattern

import "math"

// WaveSource is one moving emitter in the interference model. Sources
// are created once and repositioned on resize, never recreated.
type WaveSource struct {
	X, Y            float64
	Phase           float64
	SpeedMultiplier float64
}

// WavelengthFor derives a pixel wavelength from a frequency: higher
// frequency means shorter wavelength and finer fringes. The result is
// floored at minWavelength so the per-pixel division is always safe.
func WavelengthFor(freqHz, minWavelength float64) float64 {
	freqHz = clampFloat(freqHz, MinFrequency, MaxFrequency)
	// 200 Hz maps to a comfortable 60 px wavelength.
	wl := 60.0 * 200.0 / freqHz
	if wl < minWavelength {
		wl = minWavelength
	}
	return wl
}

// SumInterference evaluates the summed sinusoidal field of all sources
// at a pixel, normalized to [-1,1].
func SumInterference(px, py float64, sources []WaveSource, wavelength, time float64) float64 {
	if len(sources) == 0 {
		return 0
	}
	var sum float64
	for i := range sources {
		s := &sources[i]
		dx := px - s.X
		dy := py - s.Y
		d := math.Sqrt(dx*dx + dy*dy)
		sum += math.Sin(2*math.Pi*(d/wavelength-time*s.SpeedMultiplier) + s.Phase)
	}
	return sum / float64(len(sources))
}

// InterferenceColor maps a normalized field value through the three-stop
// deep blue -> cyan -> white ramp, sharpened by the contrast exponent
// and weighted by amplitude. The low end of the ramp is a visible deep
// blue rather than black, so a silent signal still shows the pattern.
func InterferenceColor(value, amplitude, exponent float64) RGB {
	// Shift [-1,1] to [0,1] and sharpen.
	t := math.Pow(clamp01((value+1)*0.5), exponent)

	deep := RGB{R: 0.04, G: 0.09, B: 0.30}
	cyan := RGB{R: 0.10, G: 0.75, B: 0.85}
	white := RGB{R: 1.0, G: 1.0, B: 1.0}

	var c RGB
	if t < 0.5 {
		c = LerpRGB(deep, cyan, t*2)
	} else {
		c = LerpRGB(cyan, white, (t-0.5)*2)
	}

	// Amplitude lifts brightness but never drops below the deep stop.
	gain := 0.65 + 0.35*clamp01(amplitude)
	return RGB{
		R: math.Max(c.R*gain, deep.R),
		G: math.Max(c.G*gain, deep.G),
		B: math.Max(c.B*gain, deep.B),
	}
}
