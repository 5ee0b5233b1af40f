// Package telemetry aggregates per-frame instrument samples into
// windowed statistics and writes them to CSV for offline analysis.
package telemetry

import "sort"

// FrameSample captures one frame's worth of instrument state.
type FrameSample struct {
	Time      float64 // seconds since start
	FrameMs   float64
	Amplitude float64
	Renderer  string
	Frequency float64
	ModeN     float64
	ModeM     float64
	FormStage float64
	Retargets int
}

// Collector accumulates frame samples and flushes them into WindowStats
// once the configured window elapses.
type Collector struct {
	windowSec   float64
	windowStart float64
	started     bool

	frameMs    []float64
	amplitudes []float64
	retargets  int
	last       FrameSample
}

// NewCollector creates a collector that aggregates over windowSec
// seconds of instrument time.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// Record adds one frame sample. It returns aggregated stats and true
// exactly when the sample closes a window.
func (c *Collector) Record(s FrameSample) (WindowStats, bool) {
	if !c.started {
		c.windowStart = s.Time
		c.started = true
	}

	c.frameMs = append(c.frameMs, s.FrameMs)
	c.amplitudes = append(c.amplitudes, s.Amplitude)
	c.retargets += s.Retargets
	c.last = s

	if s.Time-c.windowStart < c.windowSec {
		return WindowStats{}, false
	}
	return c.flush(s.Time), true
}

// flush builds the window record and resets the accumulators.
func (c *Collector) flush(now float64) WindowStats {
	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Frames:      len(c.frameMs),
		Renderer:    c.last.Renderer,
		Frequency:   c.last.Frequency,
		ModeN:       c.last.ModeN,
		ModeM:       c.last.ModeM,
		FormStage:   c.last.FormStage,
		Retargets:   c.retargets,
	}

	stats.FrameMsMean, _, stats.FrameMsP50, stats.FrameMsP90 = ComputeDistribution(c.frameMs)
	stats.AmplitudeMean, stats.AmplitudeP10, stats.AmplitudeP50, stats.AmplitudeP90 = ComputeDistribution(c.amplitudes)

	if len(c.frameMs) > 0 {
		sorted := make([]float64, len(c.frameMs))
		copy(sorted, c.frameMs)
		sort.Float64s(sorted)
		stats.FrameMsMax = sorted[len(sorted)-1]
	}
	if stats.FrameMsMean > 0 {
		stats.FPS = 1000 / stats.FrameMsMean
	}

	c.frameMs = c.frameMs[:0]
	c.amplitudes = c.amplitudes[:0]
	c.retargets = 0
	c.windowStart = now

	return stats
}
