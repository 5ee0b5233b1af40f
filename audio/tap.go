package audio

import (
	"math"
	"sync/atomic"

	"github.com/charmbracelet/harmonica"
	"github.com/gopxl/beep"
)

// envelopeRateHz is how often the smoothing spring advances. The rate
// is counted in streamed samples, so it does not depend on the size of
// the buffers the speaker (or a manual pump) happens to pull.
const envelopeRateHz = 120

// amplitudeTap passes samples through while publishing a short-window
// RMS loudness estimate, smoothed with a damped spring so the visual
// layer sees a stable envelope rather than raw buffer jitter.
type amplitudeTap struct {
	src beep.Streamer

	window    []float64 // ring of squared sample energy
	pos       int
	sumSq     float64
	published atomic.Uint64 // float64 bits

	spring      harmonica.Spring
	springPos   float64
	springVel   float64
	springEvery int // samples between spring updates
	sinceSpring int
}

// newAmplitudeTap wraps src with a windowSamples-long RMS window.
// springFreq/springDamping tune the envelope smoothing.
func newAmplitudeTap(src beep.Streamer, windowSamples int, springFreq, springDamping float64, sampleRate int) *amplitudeTap {
	if windowSamples < 1 {
		windowSamples = 1
	}
	return &amplitudeTap{
		src:         src,
		window:      make([]float64, windowSamples),
		spring:      harmonica.NewSpring(harmonica.FPS(envelopeRateHz), springFreq, springDamping),
		springEvery: maxInt(sampleRate/envelopeRateHz, 1),
	}
}

func (a *amplitudeTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := a.src.Stream(samples)

	for i := range samples[:n] {
		// Mono energy of the stereo frame.
		s := (samples[i][0] + samples[i][1]) * 0.5
		sq := s * s

		a.sumSq += sq - a.window[a.pos]
		a.window[a.pos] = sq
		a.pos++
		if a.pos == len(a.window) {
			a.pos = 0
		}

		a.sinceSpring++
		if a.sinceSpring >= a.springEvery {
			a.sinceSpring = 0
			a.advanceSpring()
		}
	}

	return n, ok
}

func (a *amplitudeTap) advanceSpring() {
	// Rounding drift in the running sum accumulates over hours; floor it.
	if a.sumSq < 0 {
		a.sumSq = 0
	}

	rms := math.Sqrt(a.sumSq / float64(len(a.window)))
	// Sine RMS is 1/sqrt(2); rescale so a full-scale tone reads ~1.
	target := clampUnit(rms * math.Sqrt2)

	a.springPos, a.springVel = a.spring.Update(a.springPos, a.springVel, target)
	a.published.Store(math.Float64bits(clampUnit(a.springPos)))
}

func (a *amplitudeTap) Err() error {
	return a.src.Err()
}

// Amplitude returns the latest smoothed loudness in [0,1]. Safe to call
// from the render thread while the speaker goroutine streams.
func (a *amplitudeTap) Amplitude() float64 {
	return math.Float64frombits(a.published.Load())
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
