package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/resonant/config"
)

func testAudioConfig() *config.AudioConfig {
	return &config.AudioConfig{
		SampleRate:             44100,
		BufferMs:               100,
		DefaultFrequency:       432,
		DefaultBeat:            7.83,
		DefaultMode:            ModePure,
		Volume:                 0.5,
		AmplitudeWindowMs:      50,
		AmplitudeSpringFreq:    8.0,
		AmplitudeSpringDamping: 0.9,
	}
}

func TestToneSourcePeriod(t *testing.T) {
	sr := beep.SampleRate(44100)
	// 441 Hz divides the sample rate evenly: period of exactly 100 samples.
	tone := newToneSource(sr, 441, 0, 1.0, ModePure)

	buf := make([][2]float64, 44100)
	tone.Stream(buf)

	// Count upward zero crossings over the last half of the buffer,
	// after the slew has settled.
	crossings := 0
	for i := 22051; i < len(buf); i++ {
		if buf[i-1][0] <= 0 && buf[i][0] > 0 {
			crossings++
		}
	}
	// Half a second of 441 Hz has ~220 cycles.
	if crossings < 215 || crossings > 225 {
		t.Errorf("zero crossings = %d, want ~220", crossings)
	}
}

func TestToneSourceBinauralChannelsDiffer(t *testing.T) {
	sr := beep.SampleRate(44100)
	tone := newToneSource(sr, 200, 10, 1.0, ModeBinaural)

	buf := make([][2]float64, 8192)
	tone.Stream(buf)

	same := true
	for i := range buf {
		if math.Abs(buf[i][0]-buf[i][1]) > 1e-9 {
			same = false
			break
		}
	}
	if same {
		t.Error("binaural channels identical; beat offset lost")
	}
}

func TestToneSourceHarmonicBounded(t *testing.T) {
	sr := beep.SampleRate(44100)
	tone := newToneSource(sr, 150, 0, 1.0, ModeHarmonic)

	buf := make([][2]float64, 44100)
	tone.Stream(buf)

	for i := range buf {
		if math.Abs(buf[i][0]) > 1.0+1e-9 {
			t.Fatalf("harmonic sample %d = %v exceeds unit range", i, buf[i][0])
		}
	}
}

func TestPinkNoiseBounded(t *testing.T) {
	pn := newPinkNoise(42)
	for i := 0; i < 100000; i++ {
		s := pn.next()
		if s < -1 || s > 1 {
			t.Fatalf("pink noise sample %v outside [-1,1]", s)
		}
	}
}

func TestAmplitudeTapTracksSignal(t *testing.T) {
	sr := beep.SampleRate(44100)
	tone := newToneSource(sr, 441, 0, 1.0, ModePure)
	tap := newAmplitudeTap(tone, 2205, 8.0, 0.9, 44100)

	buf := make([][2]float64, 4410)
	for i := 0; i < 40; i++ {
		tap.Stream(buf)
	}

	amp := tap.Amplitude()
	if amp < 0.5 {
		t.Errorf("amplitude for full-scale tone = %v, want substantial", amp)
	}
	if amp > 1.0 {
		t.Errorf("amplitude = %v exceeds 1", amp)
	}
}

func TestAmplitudeTapSilence(t *testing.T) {
	sr := beep.SampleRate(44100)
	tone := newToneSource(sr, 441, 0, 0.0, ModePure) // zero gain
	tap := newAmplitudeTap(tone, 2205, 8.0, 0.9, 44100)

	buf := make([][2]float64, 4410)
	for i := 0; i < 40; i++ {
		tap.Stream(buf)
	}

	if amp := tap.Amplitude(); amp > 0.01 {
		t.Errorf("amplitude of silence = %v, want ~0", amp)
	}
}

func TestAmplitudeTapEnvelopeIndependentOfChunkSize(t *testing.T) {
	sr := beep.SampleRate(44100)
	// 86 chunks of 512 frames versus one pull of the same total.
	const total = 86 * 512

	chunked := newAmplitudeTap(newToneSource(sr, 441, 0, 1.0, ModePure), 2205, 8.0, 0.9, 44100)
	buf := make([][2]float64, 512)
	for streamed := 0; streamed < total; streamed += len(buf) {
		chunked.Stream(buf)
	}

	whole := newAmplitudeTap(newToneSource(sr, 441, 0, 1.0, ModePure), 2205, 8.0, 0.9, 44100)
	whole.Stream(make([][2]float64, total))

	if diff := math.Abs(chunked.Amplitude() - whole.Amplitude()); diff > 0.01 {
		t.Errorf("envelope depends on pull size: chunked=%v whole=%v",
			chunked.Amplitude(), whole.Amplitude())
	}
}

func TestEnginePumpMovesAmplitude(t *testing.T) {
	e := NewEngine(testAudioConfig())

	if amp := e.Amplitude(); amp != 0 {
		t.Errorf("initial amplitude = %v, want 0", amp)
	}

	// Two seconds of pumped audio should raise the envelope well above
	// zero even without a speaker.
	for i := 0; i < 120; i++ {
		e.Pump(1.0 / 60.0)
	}

	if amp := e.Amplitude(); amp < 0.1 {
		t.Errorf("pumped amplitude = %v, want > 0.1", amp)
	}
}

func TestEngineModeValidation(t *testing.T) {
	e := NewEngine(testAudioConfig())

	e.SetMode("kazoo")
	if got := e.Mode(); got != ModePure {
		t.Errorf("mode after invalid set = %q, want %q", got, ModePure)
	}

	e.SetMode(ModeBinaural)
	if got := e.Mode(); got != ModeBinaural {
		t.Errorf("mode = %q, want %q", got, ModeBinaural)
	}
}

func TestEngineHarmonicRatios(t *testing.T) {
	e := NewEngine(testAudioConfig())

	if got := e.HarmonicRatios(); len(got) != 1 || got[0] != 1 {
		t.Errorf("pure ratios = %v, want [1]", got)
	}

	e.SetMode(ModeHarmonic)
	got := e.HarmonicRatios()
	if len(got) != 5 || got[0] != 1 || got[4] != 5 {
		t.Errorf("harmonic ratios = %v, want [1 2 3 4 5]", got)
	}

	e.SetMode(ModeNoise)
	if got := e.HarmonicRatios(); got != nil {
		t.Errorf("noise ratios = %v, want nil", got)
	}
}

func TestEngineVolumeClamped(t *testing.T) {
	e := NewEngine(testAudioConfig())

	e.SetVolume(1.7)
	if got := e.Volume(); got != 1 {
		t.Errorf("volume = %v, want clamped to 1", got)
	}
	e.SetVolume(-2)
	if got := e.Volume(); got != 0 {
		t.Errorf("volume = %v, want clamped to 0", got)
	}
}
