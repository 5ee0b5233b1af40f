package renderer

import (
	"math"
	"testing"

	"github.com/pthm-cable/resonant/pattern"
)

func TestFrameDtFirstFrame(t *testing.T) {
	dt, last := frameDt(5.0, 0, false)
	if dt != 0 {
		t.Errorf("first frame dt = %v, want 0", dt)
	}
	if last != 5.0 {
		t.Errorf("first frame last = %v, want 5.0", last)
	}
}

func TestFrameDtNormal(t *testing.T) {
	dt, last := frameDt(1.016, 1.0, true)
	if math.Abs(dt-0.016) > 1e-9 {
		t.Errorf("dt = %v, want 0.016", dt)
	}
	if last != 1.016 {
		t.Errorf("last = %v, want 1.016", last)
	}
}

func TestFrameDtClampsLongFrames(t *testing.T) {
	dt, _ := frameDt(3.0, 1.0, true)
	if dt != maxFrameDt {
		t.Errorf("dt = %v, want clamp at %v", dt, maxFrameDt)
	}
}

func TestFrameDtNeverNegative(t *testing.T) {
	dt, _ := frameDt(1.0, 2.0, true)
	if dt != 0 {
		t.Errorf("dt = %v, want 0 for a backwards clock", dt)
	}
}

func TestToColorAlphaClamped(t *testing.T) {
	c := pattern.RGB{R: 1, G: 0.5, B: 0}

	over := toColor(c, 2.0)
	if over.A != 255 {
		t.Errorf("alpha above 1 gave A=%d, want 255", over.A)
	}

	under := toColor(c, -1.0)
	if under.A != 0 {
		t.Errorf("alpha below 0 gave A=%d, want 0", under.A)
	}

	if over.R != 255 || over.G != 127 || over.B != 0 {
		t.Errorf("channel conversion wrong: %+v", over)
	}
}
