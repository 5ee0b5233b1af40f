package pattern

// ChakraState is the full parameter vector of the sacred geometry
// composition. Every field, including the discrete-looking counts, is
// kept as a float through interpolation and only rounded at the moment
// of drawing. Rounding mid-pipeline causes visible stepping.
type ChakraState struct {
	PetalCount         float64
	CentralVertexCount float64
	RingCount          float64
	EnclosureStyle     float64 // 0 = circle, 1 = square with gates
	Primary            RGB
	Secondary          RGB
	RotationSpeed      float64 // radians/sec, layers derive their own rates from this
	Complexity         float64 // [0,1]
	FormStage          float64 // [0,6], the single driver of layer visibility
}

// Anchor is a hand-authored archetype state keyed to a frequency.
// The table is ordered by frequency and FormStage is monotone along it.
type Anchor struct {
	Name   string
	FreqHz float64
	State  ChakraState
}

// Anchors returns the archetype table, keyed to the solfeggio scale.
// FormStage runs 0..6 across the seven forms.
func Anchors() []Anchor {
	return []Anchor{
		{
			Name:   "root",
			FreqHz: 396,
			State: ChakraState{
				PetalCount: 4, CentralVertexCount: 4, RingCount: 1,
				EnclosureStyle: 0.9,
				Primary:        RGB{R: 0.86, G: 0.16, B: 0.16},
				Secondary:      RGB{R: 0.55, G: 0.10, B: 0.28},
				RotationSpeed:  0.10, Complexity: 0.10, FormStage: 0,
			},
		},
		{
			Name:   "sacral",
			FreqHz: 417,
			State: ChakraState{
				PetalCount: 6, CentralVertexCount: 5, RingCount: 2,
				EnclosureStyle: 0.7,
				Primary:        RGB{R: 0.95, G: 0.50, B: 0.14},
				Secondary:      RGB{R: 0.80, G: 0.28, B: 0.10},
				RotationSpeed:  0.14, Complexity: 0.22, FormStage: 1,
			},
		},
		{
			Name:   "solar",
			FreqHz: 528,
			State: ChakraState{
				PetalCount: 10, CentralVertexCount: 3, RingCount: 2,
				EnclosureStyle: 0.5,
				Primary:        RGB{R: 0.97, G: 0.85, B: 0.22},
				Secondary:      RGB{R: 0.85, G: 0.60, B: 0.12},
				RotationSpeed:  0.18, Complexity: 0.38, FormStage: 2,
			},
		},
		{
			Name:   "heart",
			FreqHz: 639,
			State: ChakraState{
				PetalCount: 12, CentralVertexCount: 6, RingCount: 3,
				EnclosureStyle: 0.3,
				Primary:        RGB{R: 0.22, G: 0.80, B: 0.40},
				Secondary:      RGB{R: 0.90, G: 0.40, B: 0.55},
				RotationSpeed:  0.22, Complexity: 0.55, FormStage: 3,
			},
		},
		{
			Name:   "throat",
			FreqHz: 741,
			State: ChakraState{
				PetalCount: 16, CentralVertexCount: 6, RingCount: 3,
				EnclosureStyle: 0.2,
				Primary:        RGB{R: 0.18, G: 0.55, B: 0.92},
				Secondary:      RGB{R: 0.12, G: 0.80, B: 0.85},
				RotationSpeed:  0.26, Complexity: 0.70, FormStage: 4,
			},
		},
		{
			Name:   "third-eye",
			FreqHz: 852,
			State: ChakraState{
				PetalCount: 20, CentralVertexCount: 5, RingCount: 4,
				EnclosureStyle: 0.1,
				Primary:        RGB{R: 0.35, G: 0.25, B: 0.85},
				Secondary:      RGB{R: 0.60, G: 0.30, B: 0.90},
				RotationSpeed:  0.30, Complexity: 0.85, FormStage: 5,
			},
		},
		{
			Name:   "crown",
			FreqHz: 963,
			State: ChakraState{
				PetalCount: 24, CentralVertexCount: 7, RingCount: 5,
				EnclosureStyle: 0.0,
				Primary:        RGB{R: 0.72, G: 0.40, B: 0.95},
				Secondary:      RGB{R: 0.95, G: 0.90, B: 1.00},
				RotationSpeed:  0.34, Complexity: 1.00, FormStage: 6,
			},
		},
	}
}

// InterpolateChakra blends two anchor states with a smoothstep-weighted
// t. At t=0 the result equals a exactly and at t=1 it equals b exactly.
// Counts stay fractional; callers round only when drawing.
func InterpolateChakra(a, b ChakraState, t float64) ChakraState {
	w := Smoothstep(t)
	return ChakraState{
		PetalCount:         lerp(a.PetalCount, b.PetalCount, w),
		CentralVertexCount: lerp(a.CentralVertexCount, b.CentralVertexCount, w),
		RingCount:          lerp(a.RingCount, b.RingCount, w),
		EnclosureStyle:     lerp(a.EnclosureStyle, b.EnclosureStyle, w),
		Primary:            LerpRGB(a.Primary, b.Primary, w),
		Secondary:          LerpRGB(a.Secondary, b.Secondary, w),
		RotationSpeed:      lerp(a.RotationSpeed, b.RotationSpeed, w),
		Complexity:         lerp(a.Complexity, b.Complexity, w),
		FormStage:          lerp(a.FormStage, b.FormStage, w),
	}
}

// StateAt locates the anchors bracketing freqHz and returns the
// interpolated live state. Frequencies outside the table clamp to the
// end anchors, so FormStage stays within [0,6].
func StateAt(anchors []Anchor, freqHz float64) ChakraState {
	if len(anchors) == 0 {
		return ChakraState{}
	}
	if freqHz <= anchors[0].FreqHz {
		return anchors[0].State
	}
	last := len(anchors) - 1
	if freqHz >= anchors[last].FreqHz {
		return anchors[last].State
	}
	for i := 0; i < last; i++ {
		lo, hi := anchors[i], anchors[i+1]
		if freqHz >= lo.FreqHz && freqHz <= hi.FreqHz {
			t := (freqHz - lo.FreqHz) / (hi.FreqHz - lo.FreqHz)
			return InterpolateChakra(lo.State, hi.State, t)
		}
	}
	return anchors[last].State
}

// BracketName returns the name of the anchor band containing freqHz.
func BracketName(anchors []Anchor, freqHz float64) string {
	if len(anchors) == 0 {
		return ""
	}
	name := anchors[0].Name
	for _, a := range anchors {
		if freqHz >= a.FreqHz {
			name = a.Name
		}
	}
	return name
}

// AdvanceChakra moves every field of current toward target with the
// same dt-based damped approach used for mode numbers. Pure function.
func AdvanceChakra(current, target ChakraState, rate, dt float64) ChakraState {
	return ChakraState{
		PetalCount:         approach(current.PetalCount, target.PetalCount, rate, dt),
		CentralVertexCount: approach(current.CentralVertexCount, target.CentralVertexCount, rate, dt),
		RingCount:          approach(current.RingCount, target.RingCount, rate, dt),
		EnclosureStyle:     approach(current.EnclosureStyle, target.EnclosureStyle, rate, dt),
		Primary: RGB{
			R: approach(current.Primary.R, target.Primary.R, rate, dt),
			G: approach(current.Primary.G, target.Primary.G, rate, dt),
			B: approach(current.Primary.B, target.Primary.B, rate, dt),
		},
		Secondary: RGB{
			R: approach(current.Secondary.R, target.Secondary.R, rate, dt),
			G: approach(current.Secondary.G, target.Secondary.G, rate, dt),
			B: approach(current.Secondary.B, target.Secondary.B, rate, dt),
		},
		RotationSpeed: approach(current.RotationSpeed, target.RotationSpeed, rate, dt),
		Complexity:    approach(current.Complexity, target.Complexity, rate, dt),
		FormStage:     approach(current.FormStage, target.FormStage, rate, dt),
	}
}

// BirthEase returns the [0,1] reveal factor of an element born at the
// given form-stage threshold: 0 before birth, easing smoothly to 1 over
// the window after it. Elements of one symmetric ring must share a
// single birth value so the ring appears as a whole.
func BirthEase(formStage, birth, window float64) float64 {
	if window <= 0 {
		if formStage >= birth {
			return 1
		}
		return 0
	}
	return Smoothstep((formStage - birth) / window)
}
