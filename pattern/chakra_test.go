package pattern

import (
	"math"
	"testing"
)

func TestAnchorsOrdered(t *testing.T) {
	anchors := Anchors()
	if len(anchors) != 7 {
		t.Fatalf("anchor count = %d, want 7", len(anchors))
	}

	for i := 1; i < len(anchors); i++ {
		if anchors[i].FreqHz <= anchors[i-1].FreqHz {
			t.Errorf("anchor %q frequency %v not above %q %v",
				anchors[i].Name, anchors[i].FreqHz, anchors[i-1].Name, anchors[i-1].FreqHz)
		}
		if anchors[i].State.FormStage <= anchors[i-1].State.FormStage {
			t.Errorf("FormStage not monotone at %q", anchors[i].Name)
		}
	}

	if anchors[0].State.FormStage != 0 {
		t.Errorf("lowest anchor FormStage = %v, want 0", anchors[0].State.FormStage)
	}
	if anchors[len(anchors)-1].State.FormStage != 6 {
		t.Errorf("highest anchor FormStage = %v, want 6", anchors[len(anchors)-1].State.FormStage)
	}
}

func TestInterpolateEndpointsExact(t *testing.T) {
	anchors := Anchors()
	a := anchors[2].State
	b := anchors[3].State

	if got := InterpolateChakra(a, b, 0); got != a {
		t.Errorf("t=0 interpolation = %+v, want lower anchor %+v", got, a)
	}
	if got := InterpolateChakra(a, b, 1); got != b {
		t.Errorf("t=1 interpolation = %+v, want upper anchor %+v", got, b)
	}
}

func TestInterpolateFractionalCounts(t *testing.T) {
	anchors := Anchors()
	a := anchors[0].State // PetalCount 4
	b := anchors[1].State // PetalCount 6

	// t=0.5 lands on the integer midpoint of the 4..6 gap, so sample the
	// eased curve off-center where the count sits between whole values.
	mid := InterpolateChakra(a, b, 0.4)
	if mid.PetalCount == math.Trunc(mid.PetalCount) {
		t.Errorf("mid-transition PetalCount = %v, want fractional", mid.PetalCount)
	}
	if mid.PetalCount <= a.PetalCount || mid.PetalCount >= b.PetalCount {
		t.Errorf("mid PetalCount %v not between %v and %v", mid.PetalCount, a.PetalCount, b.PetalCount)
	}
}

func TestInterpolateMonotonicCounts(t *testing.T) {
	anchors := Anchors()
	a := anchors[3].State // PetalCount 12
	b := anchors[4].State // PetalCount 16

	prev := a.PetalCount
	for i := 1; i <= 20; i++ {
		s := InterpolateChakra(a, b, float64(i)/20)
		if s.PetalCount < prev {
			t.Errorf("PetalCount decreased at t=%v: %v < %v", float64(i)/20, s.PetalCount, prev)
		}
		prev = s.PetalCount
	}
}

func TestStateAtClampsToEnds(t *testing.T) {
	anchors := Anchors()

	lo := StateAt(anchors, 20)
	if lo != anchors[0].State {
		t.Errorf("below-table state = %+v, want lowest anchor", lo)
	}
	hi := StateAt(anchors, 20000)
	if hi != anchors[len(anchors)-1].State {
		t.Errorf("above-table state = %+v, want highest anchor", hi)
	}
}

func TestStateAtLowestAnchorIsSeed(t *testing.T) {
	anchors := Anchors()
	s := StateAt(anchors, anchors[0].FreqHz)
	if s.FormStage != 0 {
		t.Errorf("FormStage at lowest anchor = %v, want 0", s.FormStage)
	}
}

func TestStateAtAnchorFrequenciesExact(t *testing.T) {
	anchors := Anchors()
	for _, a := range anchors {
		if got := StateAt(anchors, a.FreqHz); got != a.State {
			t.Errorf("StateAt(%v) != anchor %q state", a.FreqHz, a.Name)
		}
	}
}

func TestBracketName(t *testing.T) {
	anchors := Anchors()

	tests := []struct {
		freq float64
		want string
	}{
		{100, "root"},
		{396, "root"},
		{500, "sacral"},
		{650, "heart"},
		{963, "crown"},
		{5000, "crown"},
	}
	for _, tt := range tests {
		if got := BracketName(anchors, tt.freq); got != tt.want {
			t.Errorf("BracketName(%v) = %q, want %q", tt.freq, got, tt.want)
		}
	}
}

func TestAdvanceChakraConverges(t *testing.T) {
	anchors := Anchors()
	current := anchors[0].State
	target := anchors[6].State

	for i := 0; i < 900; i++ {
		current = AdvanceChakra(current, target, 3.0, 1.0/60.0)
	}

	if math.Abs(current.FormStage-target.FormStage) > 0.01 {
		t.Errorf("FormStage = %v, want ~%v", current.FormStage, target.FormStage)
	}
	if math.Abs(current.Primary.R-target.Primary.R) > 0.01 {
		t.Errorf("Primary.R = %v, want ~%v", current.Primary.R, target.Primary.R)
	}
}

func TestBirthEase(t *testing.T) {
	if got := BirthEase(1.0, 2.0, 0.75); got != 0 {
		t.Errorf("before birth = %v, want 0", got)
	}
	if got := BirthEase(3.0, 2.0, 0.75); got != 1 {
		t.Errorf("past window = %v, want 1", got)
	}
	mid := BirthEase(2.375, 2.0, 0.75)
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid ease = %v, want in (0,1)", mid)
	}
}

func TestSmoothstepShape(t *testing.T) {
	if Smoothstep(0) != 0 || Smoothstep(1) != 1 {
		t.Error("smoothstep endpoints wrong")
	}
	if math.Abs(Smoothstep(0.5)-0.5) > 1e-12 {
		t.Errorf("smoothstep(0.5) = %v, want 0.5", Smoothstep(0.5))
	}
	// Eased start: flatter than linear below the midpoint.
	if Smoothstep(0.25) >= 0.25 {
		t.Errorf("smoothstep(0.25) = %v, want < 0.25", Smoothstep(0.25))
	}
}
