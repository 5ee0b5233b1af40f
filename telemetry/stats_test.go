package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"min", 0, 1},
		{"max", 1, 10},
		{"median", 0.5, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(sorted, tt.p)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("Percentile(empty) = %v, want 0", got)
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{2, 4, 6, 8}

	mean, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-5) > 0.001 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if p10 >= p50 || p50 >= p90 {
		t.Errorf("percentiles not ordered: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
	if p10 < 2 || p90 > 8 {
		t.Errorf("percentiles outside data range: p10=%v p90=%v", p10, p90)
	}
}

func TestComputeDistributionDoesNotMutate(t *testing.T) {
	values := []float64{5, 1, 3}
	ComputeDistribution(values)
	if values[0] != 5 || values[1] != 1 || values[2] != 3 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector(1.0)

	// Samples inside the window should not flush.
	for i := 0; i < 9; i++ {
		_, done := c.Record(FrameSample{
			Time:      float64(i) * 0.1,
			FrameMs:   16,
			Amplitude: 0.5,
			Renderer:  "chladni",
			Retargets: 1,
		})
		if done {
			t.Fatalf("window flushed early at sample %d", i)
		}
	}

	stats, done := c.Record(FrameSample{
		Time:      1.0,
		FrameMs:   16,
		Amplitude: 0.5,
		Renderer:  "chladni",
		Frequency: 432,
		Retargets: 1,
	})
	if !done {
		t.Fatal("window did not flush at 1.0s")
	}

	if stats.Frames != 10 {
		t.Errorf("Frames = %d, want 10", stats.Frames)
	}
	if stats.Retargets != 10 {
		t.Errorf("Retargets = %d, want 10", stats.Retargets)
	}
	if math.Abs(stats.FrameMsMean-16) > 0.001 {
		t.Errorf("FrameMsMean = %v, want 16", stats.FrameMsMean)
	}
	if math.Abs(stats.FPS-62.5) > 0.1 {
		t.Errorf("FPS = %v, want 62.5", stats.FPS)
	}
	if stats.Renderer != "chladni" || stats.Frequency != 432 {
		t.Errorf("window-end state not carried: %+v", stats)
	}
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector(1.0)

	c.Record(FrameSample{Time: 0, FrameMs: 16})
	_, done := c.Record(FrameSample{Time: 1.0, FrameMs: 16})
	if !done {
		t.Fatal("first window did not flush")
	}

	// A fresh window should not carry the previous accumulators.
	stats, done := c.Record(FrameSample{Time: 2.0, FrameMs: 32})
	if !done {
		t.Fatal("second window did not flush")
	}
	if stats.Frames != 1 {
		t.Errorf("Frames = %d, want 1 after reset", stats.Frames)
	}
	if math.Abs(stats.FrameMsMean-32) > 0.001 {
		t.Errorf("FrameMsMean = %v, want 32 after reset", stats.FrameMsMean)
	}
}
