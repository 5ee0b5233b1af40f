package pattern

import (
	"math"
	"testing"
)

func TestChladniAntisymmetry(t *testing.T) {
	// value(x,y,n,m) == -value(x,y,m,n) everywhere.
	points := []struct{ x, y float64 }{
		{0, 0}, {0.5, 0.25}, {-0.7, 0.3}, {0.99, -0.99}, {0.123, 0.456},
	}
	modes := []struct{ n, m float64 }{
		{2, 3}, {3.5, 4.2}, {7.9, 2.1}, {5, 5},
	}

	for _, p := range points {
		for _, md := range modes {
			a := ChladniValue(p.x, p.y, md.n, md.m)
			b := ChladniValue(p.x, p.y, md.m, md.n)
			if math.Abs(a+b) > 1e-12 {
				t.Errorf("value(%v,%v,%v,%v)=%v, swapped=%v; want negation",
					p.x, p.y, md.n, md.m, a, b)
			}
		}
	}
}

func TestChladniEqualModesVanish(t *testing.T) {
	// n == m makes the superposition identically zero.
	for x := -1.0; x <= 1.0; x += 0.25 {
		for y := -1.0; y <= 1.0; y += 0.25 {
			if v := ChladniValue(x, y, 4, 4); math.Abs(v) > 1e-12 {
				t.Errorf("value(%v,%v,4,4) = %v, want 0", x, y, v)
			}
		}
	}
}

func TestIntensityBounds(t *testing.T) {
	s := DefaultShading()

	// Intensity stays in [0,1] across field values, radii and amplitudes,
	// including the extremes.
	for _, v := range []float64{-2, -0.5, 0, 0.01, 0.5, 2} {
		for _, r := range []float64{0, 0.3, 0.69, 0.75, 0.89, 0.9, 1.5} {
			for _, amp := range []float64{0, 0.5, 1} {
				got := s.Intensity(v, r, amp, 1.23)
				if got < 0 || got > 1 {
					t.Errorf("Intensity(%v,%v,%v) = %v outside [0,1]", v, r, amp, got)
				}
			}
		}
	}
}

func TestIntensityVignette(t *testing.T) {
	s := DefaultShading()

	if got := s.Intensity(0, 0.95, 0.5, 0); got != 0 {
		t.Errorf("intensity outside vignette = %v, want 0", got)
	}
	inner := s.Intensity(0, 0.1, 0.5, 0)
	edge := s.Intensity(0, 0.85, 0.5, 0)
	if edge >= inner {
		t.Errorf("vignette not fading: inner=%v edge=%v", inner, edge)
	}
}

func TestIntensityBrightOnNodalLine(t *testing.T) {
	s := DefaultShading()

	// Near a zero crossing the line term dominates; far from it the
	// intensity must drop well below.
	onLine := s.Intensity(0, 0.2, 0, 0)
	offLine := s.Intensity(1.5, 0.2, 0, 0)
	if onLine < 0.8 {
		t.Errorf("nodal intensity = %v, want >= 0.8", onLine)
	}
	if offLine > onLine/2 {
		t.Errorf("off-line intensity %v not clearly below nodal %v", offLine, onLine)
	}
}

func TestIntensityNeverFullyDisappears(t *testing.T) {
	s := DefaultShading()

	// Full amplitude must not wash the pattern out to zero at the nodes.
	if got := s.Intensity(0, 0.2, 1.0, 0); got < 0.3 {
		t.Errorf("nodal intensity at full amplitude = %v, want visible", got)
	}
}

func TestChladniColorWarmToCool(t *testing.T) {
	low := ChladniColor(2, 2)
	high := ChladniColor(8, 8)

	if low.R <= low.B {
		t.Errorf("low-mode color %+v not warm", low)
	}
	if high.B <= high.R {
		t.Errorf("high-mode color %+v not cool", high)
	}
}
