package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated instrument statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Frames      int     `csv:"frames"`

	// Frame timing in milliseconds
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsP50  float64 `csv:"frame_ms_p50"`
	FrameMsP90  float64 `csv:"frame_ms_p90"`
	FrameMsMax  float64 `csv:"frame_ms_max"`
	FPS         float64 `csv:"fps"`

	// Amplitude envelope distribution over the window
	AmplitudeMean float64 `csv:"amplitude_mean"`
	AmplitudeP10  float64 `csv:"amplitude_p10"`
	AmplitudeP50  float64 `csv:"amplitude_p50"`
	AmplitudeP90  float64 `csv:"amplitude_p90"`

	// Instrument state at window end
	Renderer  string  `csv:"renderer"`
	Frequency float64 `csv:"frequency"`
	ModeN     float64 `csv:"mode_n"`
	ModeM     float64 `csv:"mode_m"`
	FormStage float64 `csv:"form_stage"`

	// Events during the window
	Retargets int `csv:"retargets"`
}

// Percentile calculates the p-th percentile of a sorted slice by
// linear interpolation between order statistics, so the median of an
// even-length slice sits halfway between the two middle values.
// p should be in [0, 1]. Returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and the three working percentiles
// from raw samples. The input is not modified.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Float64("frame_ms_mean", s.FrameMsMean),
		slog.Float64("frame_ms_p90", s.FrameMsP90),
		slog.Float64("fps", s.FPS),
		slog.Float64("amplitude_mean", s.AmplitudeMean),
		slog.String("renderer", s.Renderer),
		slog.Float64("frequency", s.Frequency),
		slog.Float64("mode_n", s.ModeN),
		slog.Float64("mode_m", s.ModeM),
		slog.Float64("form_stage", s.FormStage),
		slog.Int("retargets", s.Retargets),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"frames", s.Frames,
		"frame_ms_mean", s.FrameMsMean,
		"frame_ms_p50", s.FrameMsP50,
		"frame_ms_p90", s.FrameMsP90,
		"frame_ms_max", s.FrameMsMax,
		"fps", s.FPS,
		"amplitude_mean", s.AmplitudeMean,
		"amplitude_p10", s.AmplitudeP10,
		"amplitude_p50", s.AmplitudeP50,
		"amplitude_p90", s.AmplitudeP90,
		"renderer", s.Renderer,
		"frequency", s.Frequency,
		"mode_n", s.ModeN,
		"mode_m", s.ModeM,
		"form_stage", s.FormStage,
		"retargets", s.Retargets,
	)
}
