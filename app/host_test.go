package app

import (
	"math"
	"testing"

	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

func TestAnchorByIndexClamps(t *testing.T) {
	anchors := pattern.Anchors()

	if got := anchorByIndex(-3); got.Name != anchors[0].Name {
		t.Errorf("negative index gave %q, want %q", got.Name, anchors[0].Name)
	}
	if got := anchorByIndex(99); got.Name != anchors[len(anchors)-1].Name {
		t.Errorf("overflow index gave %q, want %q", got.Name, anchors[len(anchors)-1].Name)
	}
	if got := anchorByIndex(2); got.Name != anchors[2].Name {
		t.Errorf("index 2 gave %q, want %q", got.Name, anchors[2].Name)
	}
}

func TestAdvanceAudioKeepsEnvelopeLiveWithoutSpeaker(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	h, err := NewHost(cfg, Options{Headless: true, Mute: true, StatsWindowSec: 5})
	if err != nil {
		t.Fatalf("creating host: %v", err)
	}
	defer h.Unload()

	if amp := h.engine.Amplitude(); amp != 0 {
		t.Errorf("initial amplitude = %v, want 0", amp)
	}

	// Two simulated seconds of frames; without pumping the envelope
	// would stay frozen at zero.
	var amp float64
	for i := 0; i < 120; i++ {
		amp = h.advanceAudio(1.0 / 60.0)
	}
	if amp < 0.1 {
		t.Errorf("amplitude after pumped frames = %v, want > 0.1", amp)
	}
}

func TestPanelStateFrequencyRoundTrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.Audio.DefaultFrequency = 432
	cfg.Audio.DefaultBeat = 7.83
	cfg.Audio.Volume = 0.8
	cfg.Audio.DefaultMode = "pure"

	p := newPanelState(cfg)

	back := math.Pow(10, float64(p.logFreq))
	if math.Abs(back-432) > 0.01 {
		t.Errorf("slider round trip gave %v, want 432", back)
	}

	p.syncFrequency(880)
	back = math.Pow(10, float64(p.logFreq))
	if math.Abs(back-880) > 0.02 {
		t.Errorf("syncFrequency round trip gave %v, want 880", back)
	}
}
