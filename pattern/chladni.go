package pattern

import "math"

// ChladniValue evaluates the two-mode plate superposition at normalized
// coordinates x,y in [-1,1]:
//
//	cos(nπx)cos(mπy) − cos(mπx)cos(nπy)
//
// Its zero set approximates the nodal lines of a vibrating plate.
// The function is antisymmetric under swapping n and m.
func ChladniValue(x, y, n, m float64) float64 {
	return math.Cos(n*math.Pi*x)*math.Cos(m*math.Pi*y) -
		math.Cos(m*math.Pi*x)*math.Cos(n*math.Pi*y)
}

// ChladniShading controls how raw field values become pixel intensity.
type ChladniShading struct {
	LineThickness float64 // falloff width around the zero set
	VignetteInner float64 // normalized radius where the edge fade starts
	VignetteOuter float64 // normalized radius where intensity reaches zero
	AmbientWobble float64 // amplitude of the slow time wobble added to the field
}

// DefaultShading returns the shading constants used by both the software
// raster path and the fragment shader.
func DefaultShading() ChladniShading {
	return ChladniShading{
		LineThickness: 0.08,
		VignetteInner: 0.7,
		VignetteOuter: 0.9,
		AmbientWobble: 0.05,
	}
}

// Intensity maps a raw field value at normalized radius r to a [0,1]
// brightness. Nodal lines (field near zero) are bright; intensity fades
// with |value| over the thickness width plus a soft exponential halo.
// Amplitude subtly scales the field and widens the line so the pattern
// reacts to audio without ever vanishing or saturating.
func (s ChladniShading) Intensity(value, r, amplitude, time float64) float64 {
	// Slow ambient drift keeps the pattern alive under flat audio.
	value += math.Sin(time*0.7) * s.AmbientWobble

	// Subtle audio reactivity: scale the field down slightly as
	// amplitude rises (widening the apparent lines) and widen the
	// falloff directly.
	value *= 1.0 - 0.25*clamp01(amplitude)
	thickness := s.LineThickness * (1.0 + 0.8*clamp01(amplitude))

	av := math.Abs(value)
	line := 1.0 / (1.0 + (av/thickness)*(av/thickness))
	glow := 0.35 * math.Exp(-av*3.0)
	intensity := line + glow

	// Circular vignette: full inside the inner radius, zero past the outer.
	if r >= s.VignetteOuter {
		return 0
	}
	if r > s.VignetteInner {
		fade := 1.0 - (r-s.VignetteInner)/(s.VignetteOuter-s.VignetteInner)
		intensity *= fade
	}

	return clamp01(intensity)
}

// ChladniColor derives the field display color from the mode numbers:
// a linear blend between a warm and a cool anchor keyed by (n+m), so
// the palette cools as frequency rises.
func ChladniColor(n, m float64) RGB {
	warm := RGB{R: 0.95, G: 0.72, B: 0.35}
	cool := RGB{R: 0.35, G: 0.65, B: 0.95}

	// Mode numbers live in [2,8] each, so n+m spans [4,16].
	t := clamp01((n + m - 4.0) / 12.0)
	return LerpRGB(warm, cool, t)
}
