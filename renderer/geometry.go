package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/resonant/config"
	"github.com/pthm-cable/resonant/pattern"
)

// Birth thresholds of the progressive core layers along FormStage.
// Every circle of a symmetric ring shares its ring's single birth
// value; revealing a ring piecewise would break rotational symmetry.
const (
	birthSeed      = 0.0 // reveal finishes here, so the lowest anchor shows the full seed
	birthSixRing   = 0.8
	birthTwelve    = 2.0
	birthHexagram  = 3.0
	birthGraph     = 4.2
	birthSpiral    = 5.2
	birthGateStyle = 0.6 // enclosure style above which gate notches appear
)

// SacredGeometryRenderer draws a layered mandala whose entire structure
// is driven by one continuous FormStage scalar interpolated across the
// anchor archetypes. No layer ever pops: rings ease in over a birth
// window and the central shape crossfades between vertex counts.
type SacredGeometryRenderer struct {
	cfg     config.GeometryConfig
	anchors []pattern.Anchor

	current pattern.ChakraState
	target  pattern.ChakraState

	freq      float64
	amplitude float64

	// Per-layer rotation accumulators, advanced by dt so pausing the
	// clock freezes the composition.
	rotOuter float64
	rotInner float64
	rotCore  float64

	noise opensimplex.Noise

	lastT   float64
	started bool

	width, height int
}

// NewSacredGeometryRenderer builds the renderer at the starting
// frequency's archetype.
func NewSacredGeometryRenderer(cfg *config.Config, seed int64) (*SacredGeometryRenderer, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("sacred geometry renderer: no window surface available")
	}

	anchors := pattern.Anchors()
	start := pattern.StateAt(anchors, cfg.Audio.DefaultFrequency)

	return &SacredGeometryRenderer{
		cfg:     cfg.Geometry,
		anchors: anchors,
		current: start,
		target:  start,
		freq:    cfg.Audio.DefaultFrequency,
		noise:   opensimplex.New(seed),
		width:   cfg.Screen.Width,
		height:  cfg.Screen.Height,
	}, nil
}

// Name identifies the renderer in logs and telemetry.
func (r *SacredGeometryRenderer) Name() string { return "geometry" }

// UpdateFrequency retargets the archetype interpolation.
func (r *SacredGeometryRenderer) UpdateFrequency(hz float64) {
	r.freq = hz
	r.target = pattern.StateAt(r.anchors, hz)
}

// SetAmplitude feeds the live loudness estimate.
func (r *SacredGeometryRenderer) SetAmplitude(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	r.amplitude = a
}

// SetHarmonicRatios is accepted for interface symmetry. Harmonic
// content could bias motif choice later; structure follows FormStage.
func (r *SacredGeometryRenderer) SetHarmonicRatios(ratios []float64) {}

// FormStage returns the currently displayed form stage.
func (r *SacredGeometryRenderer) FormStage() float64 { return r.current.FormStage }

// Render advances the damped state and draws the full composition back
// to front. The global alpha floor keeps the mandala visible at zero
// amplitude; audio energy adds brightness on top.
func (r *SacredGeometryRenderer) Render(t float64) {
	var dt float64
	dt, r.lastT = frameDt(t, r.lastT, r.started)
	r.started = true

	next := pattern.AdvanceChakra(r.current, r.target, 3.0, dt)

	// Layers counter-rotate at rates derived from one speed scalar.
	r.rotOuter += next.RotationSpeed * dt
	r.rotInner -= next.RotationSpeed * 1.6 * dt
	r.rotCore += next.RotationSpeed * 0.6 * dt

	alpha := r.cfg.AlphaFloor + r.cfg.AlphaGain*r.amplitude
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2
	base := math.Min(cx, cy) * 0.82

	r.drawEnclosure(cx, cy, base, next, alpha)
	r.drawPetalRing(cx, cy, base*0.86, base*0.62, next.PetalCount, r.rotOuter, next.Primary, alpha*0.9)
	r.drawProgressiveCore(cx, cy, base*0.52, next, alpha, t)
	r.drawPetalRing(cx, cy, base*0.34, base*0.22, next.PetalCount/2+2, r.rotInner, next.Secondary, alpha*0.8)
	r.drawCentralShape(cx, cy, base*0.18, next, alpha)
	r.drawConcentricRings(cx, cy, base*0.95, next, alpha, t)
	r.drawBindu(cx, cy, base*0.06, next, alpha, t)

	r.current = next
}

// drawEnclosure renders the outer frame: a 64-gon whose vertices blend
// between a circle and an axis-aligned square as EnclosureStyle rises,
// with gate notches at the cardinals once the square character dominates.
func (r *SacredGeometryRenderer) drawEnclosure(cx, cy, radius float64, s pattern.ChakraState, alpha float64) {
	const segments = 64
	style := s.EnclosureStyle
	col := toColor(s.Secondary, alpha*0.85)

	var prev rl.Vector2
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / segments
		// A square's polar radius along this angle.
		c := math.Abs(math.Cos(angle))
		sn := math.Abs(math.Sin(angle))
		squareR := radius / math.Max(c, sn)

		rr := radius*(1-style) + squareR*style*0.92
		pt := rl.Vector2{
			X: float32(cx + math.Cos(angle)*rr),
			Y: float32(cy + math.Sin(angle)*rr),
		}
		if i > 0 {
			rl.DrawLineEx(prev, pt, 2, col)
		}
		prev = pt
	}

	if style > birthGateStyle {
		gateAlpha := alpha * (style - birthGateStyle) / (1 - birthGateStyle)
		gateCol := toColor(s.Primary, gateAlpha)
		gate := radius * 0.08
		for i := 0; i < 4; i++ {
			angle := math.Pi / 2 * float64(i)
			gx := cx + math.Cos(angle)*radius*0.96
			gy := cy + math.Sin(angle)*radius*0.96
			// Perpendicular tick pair marking the gate opening.
			px := -math.Sin(angle)
			py := math.Cos(angle)
			for _, side := range []float64{-1, 1} {
				a := rl.Vector2{X: float32(gx + px*gate*side), Y: float32(gy + py*gate*side)}
				b := rl.Vector2{X: float32(gx + px*gate*side*2), Y: float32(gy + py*gate*side*2)}
				rl.DrawLineEx(a, b, 3, gateCol)
			}
		}
	}
}

// drawPetalRing renders count bezier petals between the inner and outer
// radii. The count is fractional up to this point; the last petal fades
// in with the fractional part so the ring never pops between counts.
func (r *SacredGeometryRenderer) drawPetalRing(cx, cy, outer, inner, count, rotation float64, col pattern.RGB, alpha float64) {
	if count < 1 {
		return
	}
	whole := int(count)
	frac := count - float64(whole)

	total := whole
	if frac > 0 {
		total++
	}
	for i := 0; i < total; i++ {
		petalAlpha := alpha
		if i == whole { // the emerging petal
			petalAlpha *= pattern.Smoothstep(frac)
		}
		angle := rotation + 2*math.Pi*float64(i)/count
		r.drawPetal(cx, cy, inner, outer, angle, 2*math.Pi/count*0.75, toColor(col, petalAlpha))
	}
}

// drawPetal strokes one symmetric pair of quadratic curves from the
// base to the tip and back.
func (r *SacredGeometryRenderer) drawPetal(cx, cy, inner, outer, angle, width float64, col rl.Color) {
	const steps = 10

	baseX := cx + math.Cos(angle)*inner
	baseY := cy + math.Sin(angle)*inner
	tipX := cx + math.Cos(angle)*outer
	tipY := cy + math.Sin(angle)*outer

	for _, side := range []float64{-1, 1} {
		ctrlAngle := angle + width/2*side
		ctrlR := (inner + outer) / 2 * 1.15
		ctrlX := cx + math.Cos(ctrlAngle)*ctrlR
		ctrlY := cy + math.Sin(ctrlAngle)*ctrlR

		prev := rl.Vector2{X: float32(baseX), Y: float32(baseY)}
		for i := 1; i <= steps; i++ {
			t := float64(i) / steps
			// Quadratic bezier: base -> ctrl -> tip.
			mt := 1 - t
			x := mt*mt*baseX + 2*mt*t*ctrlX + t*t*tipX
			y := mt*mt*baseY + 2*mt*t*ctrlY + t*t*tipY
			pt := rl.Vector2{X: float32(x), Y: float32(y)}
			rl.DrawLineEx(prev, pt, 1.5, col)
			prev = pt
		}
	}
}

// coreEases holds the reveal factor of every progressive core layer at
// a given form stage.
type coreEases struct {
	seed     float64
	sixRing  float64
	twelve   float64
	hexagram float64
	graph    float64
	spiral   float64
}

// coreLayerEases evaluates all birth thresholds at once. The seed's
// birth window ends at the lowest anchor, so a stage of zero already
// shows the seed in full while every later layer is still unborn.
func coreLayerEases(stage, window float64) coreEases {
	return coreEases{
		seed:     pattern.BirthEase(stage, birthSeed-window, window),
		sixRing:  pattern.BirthEase(stage, birthSixRing, window),
		twelve:   pattern.BirthEase(stage, birthTwelve, window),
		hexagram: pattern.BirthEase(stage, birthHexagram, window),
		graph:    pattern.BirthEase(stage, birthGraph, window),
		spiral:   pattern.BirthEase(stage, birthSpiral, window),
	}
}

// drawProgressiveCore renders the circle-packing composition: each
// structural layer is keyed to a birth threshold along FormStage and
// eases in over the birth window.
func (r *SacredGeometryRenderer) drawProgressiveCore(cx, cy, radius float64, s pattern.ChakraState, alpha, t float64) {
	eases := coreLayerEases(s.FormStage, r.cfg.BirthWindow)
	unit := radius / 3 // radius of one packed circle

	pcol := func(ease, scale float64) rl.Color {
		return toColor(s.Primary, alpha*ease*scale)
	}
	scol := func(ease, scale float64) rl.Color {
		return toColor(s.Secondary, alpha*ease*scale)
	}

	// Seed circle.
	if ease := eases.seed; ease > 0 {
		r.strokeCircle(cx, cy, unit*ease, 2, pcol(ease, 1))
	}

	// Six-circle ring; one birth value for the whole ring.
	sixEase := eases.sixRing
	if sixEase > 0 {
		for i := 0; i < 6; i++ {
			angle := r.rotCore + 2*math.Pi*float64(i)/6
			x := cx + math.Cos(angle)*unit
			y := cy + math.Sin(angle)*unit
			r.strokeCircle(x, y, unit*sixEase, 1.5, pcol(sixEase, 0.9))
		}
	}

	// Twelve-circle ring.
	twelveEase := eases.twelve
	if twelveEase > 0 {
		for i := 0; i < 12; i++ {
			angle := -r.rotCore + 2*math.Pi*float64(i)/12
			x := cx + math.Cos(angle)*unit*2
			y := cy + math.Sin(angle)*unit*2
			r.strokeCircle(x, y, unit*twelveEase, 1, pcol(twelveEase, 0.7))
		}
	}

	// Hexagram: two counter-posed triangles inscribed in the ring.
	hexEase := eases.hexagram
	if hexEase > 0 {
		hr := radius * 0.9 * hexEase
		r.strokePolygon(cx, cy, hr, 3, r.rotCore, 2, scol(hexEase, 1))
		r.strokePolygon(cx, cy, hr, 3, r.rotCore+math.Pi, 2, scol(hexEase, 1))
	}

	// Connecting graph between the six ring centers.
	graphEase := eases.graph
	if graphEase > 0 {
		col := scol(graphEase, 0.55)
		pts := make([]rl.Vector2, 6)
		for i := range pts {
			angle := r.rotCore + 2*math.Pi*float64(i)/6
			pts[i] = rl.Vector2{
				X: float32(cx + math.Cos(angle)*unit*2*graphEase),
				Y: float32(cy + math.Sin(angle)*unit*2*graphEase),
			}
		}
		for i := 0; i < len(pts); i++ {
			for j := i + 1; j < len(pts); j++ {
				rl.DrawLineEx(pts[i], pts[j], 1, col)
			}
		}
	}

	// Spiral overlay, unwinding with its ease.
	spiralEase := eases.spiral
	if spiralEase > 0 {
		col := pcol(spiralEase, 0.8)
		turns := 2.5
		steps := int(64 * spiralEase)
		var prev rl.Vector2
		for i := 0; i <= steps; i++ {
			p := float64(i) / 64
			angle := r.rotCore + p*2*math.Pi*turns
			rr := radius * p
			pt := rl.Vector2{
				X: float32(cx + math.Cos(angle)*rr),
				Y: float32(cy + math.Sin(angle)*rr),
			}
			if i > 0 {
				rl.DrawLineEx(prev, pt, 1.5, col)
			}
			prev = pt
		}
	}
}

// drawCentralShape crossfades between the bracketing whole-vertex
// polygons, the continuous counterpart of a discrete vertex count.
func (r *SacredGeometryRenderer) drawCentralShape(cx, cy, radius float64, s pattern.ChakraState, alpha float64) {
	count := s.CentralVertexCount
	if count < 3 {
		count = 3
	}
	lo := int(count)
	frac := count - float64(lo)

	r.strokePolygon(cx, cy, radius, lo, r.rotInner, 2, toColor(s.Primary, alpha*(1-frac)))
	if frac > 0 {
		r.strokePolygon(cx, cy, radius, lo+1, r.rotInner, 2, toColor(s.Primary, alpha*frac))
	}
}

// drawConcentricRings renders RingCount thin rings with a faint simplex
// shimmer on their radii; the emerging ring fades in fractionally.
func (r *SacredGeometryRenderer) drawConcentricRings(cx, cy, maxRadius float64, s pattern.ChakraState, alpha, t float64) {
	count := s.RingCount
	if count < 1 {
		return
	}
	whole := int(count)
	frac := count - float64(whole)

	total := whole
	if frac > 0 {
		total++
	}
	for i := 0; i < total; i++ {
		ringAlpha := alpha * 0.35
		if i == whole {
			ringAlpha *= pattern.Smoothstep(frac)
		}
		shimmer := 1 + 0.01*r.noise.Eval2(t*0.3, float64(i)*3.7)
		rr := maxRadius * (0.55 + 0.45*float64(i+1)/count) * shimmer
		r.strokeCircle(cx, cy, rr, 1, toColor(s.Secondary, ringAlpha))
	}
}

// drawBindu renders the breathing glow core.
func (r *SacredGeometryRenderer) drawBindu(cx, cy, radius float64, s pattern.ChakraState, alpha, t float64) {
	breath := 1 + 0.15*math.Sin(2*math.Pi*r.cfg.BreathingHz*t)
	rr := radius * breath * (1 + 0.3*r.amplitude)

	// Soft halo built from stacked translucent discs.
	for i := 3; i >= 1; i-- {
		haloAlpha := alpha * 0.12 * float64(4-i)
		rl.DrawCircle(int32(cx), int32(cy), float32(rr*float64(i)), toColor(s.Primary, haloAlpha))
	}
	rl.DrawCircle(int32(cx), int32(cy), float32(rr*0.5), toColor(s.Secondary, alpha))
}

// strokeCircle draws a circle outline as a 48-segment polyline so the
// thickness and alpha behave like the other stroked layers.
func (r *SacredGeometryRenderer) strokeCircle(cx, cy, radius float64, thickness float32, col rl.Color) {
	const segments = 48
	var prev rl.Vector2
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / segments
		pt := rl.Vector2{
			X: float32(cx + math.Cos(angle)*radius),
			Y: float32(cy + math.Sin(angle)*radius),
		}
		if i > 0 {
			rl.DrawLineEx(prev, pt, thickness, col)
		}
		prev = pt
	}
}

// strokePolygon draws a closed regular polygon outline.
func (r *SacredGeometryRenderer) strokePolygon(cx, cy, radius float64, sides int, rotation float64, thickness float32, col rl.Color) {
	if sides < 3 {
		sides = 3
	}
	var prev rl.Vector2
	for i := 0; i <= sides; i++ {
		angle := rotation + 2*math.Pi*float64(i)/float64(sides) - math.Pi/2
		pt := rl.Vector2{
			X: float32(cx + math.Cos(angle)*radius),
			Y: float32(cy + math.Sin(angle)*radius),
		}
		if i > 0 {
			rl.DrawLineEx(prev, pt, thickness, col)
		}
		prev = pt
	}
}

// Resize updates the cached surface size.
func (r *SacredGeometryRenderer) Resize(w, h int) {
	r.width = w
	r.height = h
}

// Unload is a no-op: this renderer holds no GPU resources beyond the
// shared window. Kept for interface symmetry and idempotent by nature.
func (r *SacredGeometryRenderer) Unload() {}
