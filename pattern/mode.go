// Package pattern implements the computational core of the instrument:
// the frequency-to-structure mappings, field equations, anchor-state
// interpolation and the particle pool that renderers draw each frame.
// Nothing in this package touches a drawing surface.
package pattern

import "math"

// Audible frequency bounds; inputs are clamped here before any mapping.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
)

// ModeState holds the continuous mode numbers of the standing-wave
// equation. Fractional values are intended: they parameterize a
// continuously morphing field rather than a discrete mode switch.
type ModeState struct {
	N float64
	M float64
}

// ModeMapper converts a frequency into octave-aware mode numbers.
// Frequencies one octave apart map to mode numbers one step apart,
// matching how plate mode density grows with frequency.
type ModeMapper struct {
	ReferenceHz   float64 // frequency at which N == BaseN
	BaseN         float64
	BaseM         float64
	Asymmetry     float64 // m advances at this fraction of n's rate
	ModeMin       float64
	ModeMax       float64
	SnapThreshold float64 // fractional octave above which targets lean toward the next step
	SnapStrength  float64
}

// NewModeMapper returns a mapper with the locked default constants:
// 200 Hz reference, base modes (3,3), asymmetry 0.8, clamp [2,8].
func NewModeMapper() ModeMapper {
	return ModeMapper{
		ReferenceHz:   200.0,
		BaseN:         3.0,
		BaseM:         3.0,
		Asymmetry:     0.8,
		ModeMin:       2.0,
		ModeMax:       8.0,
		SnapThreshold: 0.7,
		SnapStrength:  0.15,
	}
}

// Map converts a frequency in Hz to continuous mode numbers.
// Out-of-range frequencies are clamped, never rejected.
func (mm ModeMapper) Map(freqHz float64) ModeState {
	freqHz = clampFloat(freqHz, MinFrequency, MaxFrequency)

	octaves := math.Log2(freqHz / mm.ReferenceHz)
	n := mm.BaseN + octaves
	m := mm.BaseM + octaves*mm.Asymmetry

	// Near the top of an octave, lean both targets toward the next
	// integer step so the jump at the transition is smaller.
	frac := octaves - math.Floor(octaves)
	if frac > mm.SnapThreshold {
		lead := (frac - mm.SnapThreshold) / (1 - mm.SnapThreshold) * mm.SnapStrength
		n += lead
		m += lead * mm.Asymmetry
	}

	return ModeState{
		N: clampFloat(n, mm.ModeMin, mm.ModeMax),
		M: clampFloat(m, mm.ModeMin, mm.ModeMax),
	}
}

// AdvanceMode moves current toward target with dt-based exponential
// damping, clamped so large jumps never overshoot. Pure function: the
// caller holds the state between frames.
func AdvanceMode(current, target ModeState, rate, dt float64) ModeState {
	return ModeState{
		N: approach(current.N, target.N, rate, dt),
		M: approach(current.M, target.M, rate, dt),
	}
}

// Delta returns the combined absolute mode difference, used to decide
// when particle retargeting is worthwhile.
func (s ModeState) Delta(o ModeState) float64 {
	return math.Abs(s.N-o.N) + math.Abs(s.M-o.M)
}
