package audio

import (
	"math"
	"math/rand"
	"sync"

	"github.com/gopxl/beep"
)

// Synthesis modes.
const (
	ModePure     = "pure"     // single sine at the fundamental
	ModeBinaural = "binaural" // left at f, right at f + beat
	ModeHarmonic = "harmonic" // partial stack with 1/k² rolloff
	ModeNoise    = "noise"    // pink noise texture
)

// harmonicRatios is the partial set of the harmonic stack mode.
var harmonicRatios = []float64{1, 2, 3, 4, 5}

// toneSource is the instrument's voice: an infinite streamer whose
// frequency, beat offset, mode and gain can change while playing.
// Frequency changes slew per-sample to keep the output click-free.
type toneSource struct {
	sr beep.SampleRate

	mu         sync.Mutex
	targetFreq float64
	targetGain float64
	beat       float64
	mode       string

	freq   float64 // slewed
	gain   float64 // slewed
	phaseL float64
	phaseR float64
	pink   pinkNoise
}

func newToneSource(sr beep.SampleRate, freq, beat, gain float64, mode string) *toneSource {
	return &toneSource{
		sr:         sr,
		targetFreq: freq,
		targetGain: gain,
		freq:       freq,
		gain:       gain,
		beat:       beat,
		mode:       mode,
		pink:       newPinkNoise(1),
	}
}

func (t *toneSource) SetFrequency(hz float64) {
	t.mu.Lock()
	t.targetFreq = hz
	t.mu.Unlock()
}

func (t *toneSource) SetBeat(hz float64) {
	t.mu.Lock()
	t.beat = hz
	t.mu.Unlock()
}

func (t *toneSource) SetMode(mode string) {
	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()
}

func (t *toneSource) SetGain(g float64) {
	t.mu.Lock()
	t.targetGain = g
	t.mu.Unlock()
}

// Stream fills the buffer with the active voice. Always reports ok:
// the instrument runs until the host shuts the speaker down.
func (t *toneSource) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	targetFreq := t.targetFreq
	targetGain := t.targetGain
	beat := t.beat
	mode := t.mode
	t.mu.Unlock()

	srf := float64(t.sr)
	// Slew constants: ~5 ms to cover a typical frequency jump.
	freqSlew := math.Pow(0.5, 1.0/(srf*0.005))
	gainSlew := freqSlew

	for i := range samples {
		t.freq = targetFreq + (t.freq-targetFreq)*freqSlew
		t.gain = targetGain + (t.gain-targetGain)*gainSlew

		var l, r float64
		switch mode {
		case ModeBinaural:
			t.phaseL += 2 * math.Pi * t.freq / srf
			t.phaseR += 2 * math.Pi * (t.freq + beat) / srf
			l = math.Sin(t.phaseL)
			r = math.Sin(t.phaseR)
		case ModeHarmonic:
			t.phaseL += 2 * math.Pi * t.freq / srf
			var sum, norm float64
			for _, k := range harmonicRatios {
				w := 1.0 / (k * k)
				sum += math.Sin(t.phaseL*k) * w
				norm += w
			}
			l = sum / norm
			r = l
		case ModeNoise:
			s := t.pink.next()
			l = s
			r = s
		default: // ModePure
			t.phaseL += 2 * math.Pi * t.freq / srf
			l = math.Sin(t.phaseL)
			r = l
		}

		samples[i][0] = l * t.gain
		samples[i][1] = r * t.gain

		// Keep phases bounded over long sessions.
		if t.phaseL > 2*math.Pi*1e6 {
			t.phaseL = math.Mod(t.phaseL, 2*math.Pi)
		}
		if t.phaseR > 2*math.Pi*1e6 {
			t.phaseR = math.Mod(t.phaseR, 2*math.Pi)
		}
	}
	return len(samples), true
}

func (t *toneSource) Err() error {
	return nil
}

// pinkNoise generates pink noise with the Voss-McCartney algorithm.
type pinkNoise struct {
	rng    *rand.Rand
	maxKey uint32
	key    uint32
	rows   [5]float64
}

func newPinkNoise(seed int64) pinkNoise {
	return pinkNoise{
		rng:    rand.New(rand.NewSource(seed)),
		maxKey: 0x1F,
	}
}

func (pn *pinkNoise) next() float64 {
	lastKey := pn.key
	pn.key++
	if pn.key > pn.maxKey {
		pn.key = 0
	}
	diff := lastKey ^ pn.key
	for i := 0; i < len(pn.rows); i++ {
		if diff&(1<<uint(i)) != 0 {
			pn.rows[i] = pn.rng.Float64()*2 - 1
		}
	}
	var sum float64
	for _, v := range pn.rows {
		sum += v
	}
	return sum * 0.2
}
